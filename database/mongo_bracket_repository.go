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

// MongoBracketRepository stores brackets in the "brackets" collection: one
// official document per league plus one entry document per member.
type MongoBracketRepository struct {
	collection *mongo.Collection
}

// NewMongoBracketRepository creates a new MongoDB bracket repository.
func NewMongoBracketRepository(db *MongoDB) *MongoBracketRepository {
	collection := db.GetCollection("brackets")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "league_id", Value: 1},
			{Key: "user_id", Value: 1},
			{Key: "role", Value: 1},
		}},
		{Keys: bson.D{{Key: "league_id", Value: 1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logging.Warnf("Could not create bracket indexes: %v", err)
	}

	return &MongoBracketRepository{collection: collection}
}

// Create inserts a new bracket document and backfills its generated ID.
func (r *MongoBracketRepository) Create(ctx context.Context, entry *models.BracketEntry) error {
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to create bracket: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid
	}
	return nil
}

// FindOfficial retrieves a league's official results bracket, or nil.
func (r *MongoBracketRepository) FindOfficial(ctx context.Context, leagueID primitive.ObjectID) (*models.BracketEntry, error) {
	filter := bson.M{"league_id": leagueID, "role": models.BracketRoleOfficial}
	return r.findOne(ctx, filter)
}

// FindByLeagueAndUser retrieves a member's entry bracket, or nil.
func (r *MongoBracketRepository) FindByLeagueAndUser(ctx context.Context, leagueID primitive.ObjectID, userID int) (*models.BracketEntry, error) {
	filter := bson.M{"league_id": leagueID, "user_id": userID, "role": models.BracketRoleEntry}
	return r.findOne(ctx, filter)
}

// FindEntriesByLeague retrieves every member entry in a league.
func (r *MongoBracketRepository) FindEntriesByLeague(ctx context.Context, leagueID primitive.ObjectID) ([]*models.BracketEntry, error) {
	filter := bson.M{"league_id": leagueID, "role": models.BracketRoleEntry}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find brackets by league: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*models.BracketEntry
	for cursor.Next(ctx) {
		var entry models.BracketEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode bracket: %w", err)
		}
		entries = append(entries, &entry)
	}
	return entries, cursor.Err()
}

// Update replaces an existing bracket document.
func (r *MongoBracketRepository) Update(ctx context.Context, entry *models.BracketEntry) error {
	entry.UpdatedAt = time.Now()

	doc, err := updateDoc(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal bracket update: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": entry.ID}, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("failed to update bracket: %w", err)
	}
	return nil
}

func (r *MongoBracketRepository) findOne(ctx context.Context, filter bson.M) (*models.BracketEntry, error) {
	var entry models.BracketEntry
	err := r.collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find bracket: %w", err)
	}
	return &entry, nil
}
