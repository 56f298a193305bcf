package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"clubsync/database"
	"clubsync/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo creates a new instance of AvailabilityRepository using MongoDB.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("availability_rules")
	repo := &MongoAvailabilityRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAvailabilityRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "day_of_week", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// ListRules retrieves every availability rule.
func (r *MongoAvailabilityRepo) ListRules() ([]models.AvailabilityRule, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list availability rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []models.AvailabilityRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode availability rules: %w", err)
	}
	return rules, nil
}

// ListRulesForUser retrieves all rules owned by one user.
func (r *MongoAvailabilityRepo) ListRulesForUser(userID string) ([]models.AvailabilityRule, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list rules for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var rules []models.AvailabilityRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode rules for user %s: %w", userID, err)
	}
	return rules, nil
}

// Create inserts a new rule.
func (r *MongoAvailabilityRepo) Create(rule *models.AvailabilityRule) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, rule); err != nil {
		return fmt.Errorf("failed to create availability rule: %w", err)
	}
	return nil
}

// Delete removes a rule by its ID.
func (r *MongoAvailabilityRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete availability rule %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("availability rule %s not found", id)
	}
	return nil
}
