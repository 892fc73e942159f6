// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"time"

	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the users collection (participant profiles
// keyed by identity provider UID).
type Store struct {
	c *mongo.Collection
}

// New creates a new users store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Get returns the profile for the given UID.
func (s *Store) Get(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.NotFound("profile not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert saves the profile, creating it on first sign-in.
func (s *Store) Upsert(ctx context.Context, u models.User) error {
	now := time.Now().UTC()

	filter := bson.M{"_id": u.ID}
	update := bson.M{
		"$set": bson.M{
			"name":       u.Name,
			"email":      u.Email,
			"college":    u.College,
			"phone":      u.Phone,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	return err
}
