package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bracket-pool-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrUserNotFound is returned when a user lookup matches no document.
var ErrUserNotFound = errors.New("user not found")

// MongoUserRepository stores users in the "users" collection. User IDs are
// small sequential integers allocated through a counters document.
type MongoUserRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewMongoUserRepository creates a new MongoDB user repository.
func NewMongoUserRepository(db *MongoDB) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.GetCollection("users"),
		counters:   db.GetCollection("counters"),
	}
}

// GetUserByEmail retrieves a user by email address (case-insensitive).
func (r *MongoUserRepository) GetUserByEmail(email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	filter := bson.M{"email": bson.M{"$regex": "^" + strings.ToLower(strings.TrimSpace(email)) + "$", "$options": "i"}}
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (r *MongoUserRepository) GetUserByID(id int) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// GetUserByResetToken retrieves a user by password reset token.
func (r *MongoUserRepository) GetUserByResetToken(token string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"resetToken": token}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// CreateUser inserts a new user, allocating its sequential ID.
func (r *MongoUserRepository) CreateUser(user *models.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := r.nextUserID(ctx)
	if err != nil {
		return fmt.Errorf("failed to allocate user ID: %w", err)
	}
	user.ID = id
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err = r.collection.InsertOne(ctx, user)
	return err
}

// UpdateUser replaces an existing user document.
func (r *MongoUserRepository) UpdateUser(user *models.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user.UpdatedAt = time.Now()

	doc, err := updateDoc(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user update: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": doc})
	return err
}

// nextUserID atomically increments and returns the user ID counter.
func (r *MongoUserRepository) nextUserID(ctx context.Context) (int, error) {
	var counter struct {
		Seq int `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "users"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}
