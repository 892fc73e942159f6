// internal/app/store/results/resultsstore.go
package resultsstore

import (
	"context"
	"time"

	"github.com/vijayakumarjith/startupsp/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the results singleton in the config
// collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new results config store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("config")}
}

// Get returns the results config. A missing document means results have
// never been published.
func (s *Store) Get(ctx context.Context) (models.ResultsConfig, error) {
	var cfg models.ResultsConfig
	err := s.c.FindOne(ctx, bson.M{"_id": models.ResultsConfigID}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return models.ResultsConfig{ID: models.ResultsConfigID}, nil
	}
	if err != nil {
		return models.ResultsConfig{}, err
	}
	return cfg, nil
}

// Publish flips the latch. There is intentionally no write that clears
// it; publication is one-way.
func (s *Store) Publish(ctx context.Context, at time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"published":    true,
			"published_at": at,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": models.ResultsConfigID}, update, opts)
	return err
}
