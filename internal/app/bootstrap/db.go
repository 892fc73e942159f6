// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and verifies it with a
// ping before the rest of startup proceeds.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connecting to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return DBDeps{}, fmt.Errorf("pinging MongoDB: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes the queries depend on. Index
// creation is idempotent, so this runs on every startup.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	_, err := db.Collection("teams").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "registration_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_registration_id"),
	})
	if err != nil {
		return fmt.Errorf("creating teams indexes: %w", err)
	}

	_, err = db.Collection("payments").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// Replay guard: the webhook may deliver the same event more
			// than once, but each (email, reference) pair is recorded once.
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "reference", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email_reference"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("email_status"),
		},
		{
			Keys:    bson.D{{Key: "recorded_at", Value: -1}},
			Options: options.Index().SetName("recorded_at_desc"),
		},
	})
	if err != nil {
		return fmt.Errorf("creating payments indexes: %w", err)
	}

	_, err = db.Collection("phase1_submissions").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "points", Value: -1}, {Key: "submitted_at", Value: 1}},
		Options: options.Index().SetName("points_submitted"),
	})
	if err != nil {
		return fmt.Errorf("creating phase1 indexes: %w", err)
	}

	logger.Info("schema indexes ensured")
	return nil
}
