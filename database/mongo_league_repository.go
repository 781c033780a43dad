package database

import (
	"context"
	"fmt"
	"time"

	"bracket-pool-go/logging"
	"bracket-pool-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoLeagueRepository stores leagues in the "leagues" collection.
type MongoLeagueRepository struct {
	collection *mongo.Collection
}

// NewMongoLeagueRepository creates a new MongoDB league repository.
func NewMongoLeagueRepository(db *MongoDB) *MongoLeagueRepository {
	collection := db.GetCollection("leagues")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "invite_code", Value: 1}}},
		{Keys: bson.D{{Key: "admin_id", Value: 1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logging.Warnf("Could not create league indexes: %v", err)
	}

	return &MongoLeagueRepository{collection: collection}
}

// Create inserts a new league and backfills its generated ID.
func (r *MongoLeagueRepository) Create(ctx context.Context, league *models.League) error {
	league.CreatedAt = time.Now()
	league.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, league)
	if err != nil {
		return fmt.Errorf("failed to create league: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		league.ID = oid
	}
	return nil
}

// FindByID retrieves a league by its ID, or nil when absent.
func (r *MongoLeagueRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.League, error) {
	var league models.League
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&league)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find league by ID: %w", err)
	}
	return &league, nil
}

// FindByInviteCode retrieves a league by invite code, or nil when absent.
func (r *MongoLeagueRepository) FindByInviteCode(ctx context.Context, code string) (*models.League, error) {
	var league models.League
	err := r.collection.FindOne(ctx, bson.M{"invite_code": code}).Decode(&league)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find league by invite code: %w", err)
	}
	return &league, nil
}

// FindByAdmin retrieves the leagues administered by a user.
func (r *MongoLeagueRepository) FindByAdmin(ctx context.Context, adminID int) ([]*models.League, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"admin_id": adminID})
	if err != nil {
		return nil, fmt.Errorf("failed to find leagues by admin: %w", err)
	}
	defer cursor.Close(ctx)

	var leagues []*models.League
	for cursor.Next(ctx) {
		var league models.League
		if err := cursor.Decode(&league); err != nil {
			return nil, fmt.Errorf("failed to decode league: %w", err)
		}
		leagues = append(leagues, &league)
	}
	return leagues, cursor.Err()
}

// Update replaces an existing league document.
func (r *MongoLeagueRepository) Update(ctx context.Context, league *models.League) error {
	league.UpdatedAt = time.Now()

	doc, err := updateDoc(league)
	if err != nil {
		return fmt.Errorf("failed to marshal league update: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": league.ID}, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("failed to update league: %w", err)
	}
	return nil
}
