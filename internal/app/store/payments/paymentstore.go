// internal/app/store/payments/paymentstore.go
package paymentstore

import (
	"context"
	"time"

	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/app/system/normalize"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the payments collection. The collection is
// an append-only log written by the payment provider webhook; nothing
// in the application mutates existing records.
type Store struct {
	c *mongo.Collection
}

// New creates a new payments store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("payments")}
}

// Append records one payment event. Emails are stored lowercased so
// lookups are case-insensitive. A record with the same email and
// reference as an existing one is a conflict; the unique index backs
// this up against concurrent webhook deliveries.
func (s *Store) Append(ctx context.Context, p models.Payment) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.RecordedAt.IsZero() {
		p.RecordedAt = time.Now().UTC()
	}
	p.Email = normalize.Email(p.Email)

	_, err := s.c.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict("payment event already recorded")
	}
	return err
}

// HasPaid reports whether any record for the email carries status
// "paid".
func (s *Store) HasPaid(ctx context.Context, email string) (bool, error) {
	filter := bson.M{
		"email":  normalize.Email(email),
		"status": models.PaymentPaid,
	}
	count, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByEmail returns the payment history for one email, newest first.
func (s *Store) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	filter := bson.M{"email": normalize.Email(email)}
	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var payments []models.Payment
	if err := cur.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// List returns the whole log, newest first. Used by the finance
// reconciliation view.
func (s *Store) List(ctx context.Context) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var payments []models.Payment
	if err := cur.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
