// internal/app/store/phase1/phase1store.go
package phase1store

import (
	"context"
	"time"

	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the phase1_submissions collection. The
// document _id is the team id; Create therefore enforces the one-time
// submission rule at the store level.
type Store struct {
	c *mongo.Collection
}

// New creates a new phase-1 submissions store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("phase1_submissions")}
}

// Get returns the submission for the given team id.
func (s *Store) Get(ctx context.Context, teamID string) (models.Phase1Submission, error) {
	var sub models.Phase1Submission
	err := s.c.FindOne(ctx, bson.M{"_id": teamID}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return models.Phase1Submission{}, apperr.NotFound("phase 1 submission not found")
	}
	if err != nil {
		return models.Phase1Submission{}, err
	}
	return sub, nil
}

// Create inserts the submission. A second insert for the same team hits
// the _id uniqueness and comes back as a conflict, which is how a
// repeated initial-form submission is rejected.
func (s *Store) Create(ctx context.Context, sub models.Phase1Submission) error {
	_, err := s.c.InsertOne(ctx, sub)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict("pitch already submitted; only the video link can be updated")
	}
	return err
}

// SetYouTubeLink updates the one participant-mutable field after the
// initial submission.
func (s *Store) SetYouTubeLink(ctx context.Context, teamID, link string, at time.Time) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": teamID}, bson.M{
		"$set": bson.M{
			"youtube_link": link,
			"updated_at":   at,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("phase 1 submission not found")
	}
	return nil
}

// SetScore merges the admin scoring overlay onto the document without
// disturbing the locked submission fields. Re-running with the same
// arguments converges to the same stored state.
func (s *Store) SetScore(ctx context.Context, teamID string, points int, review string, at time.Time) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": teamID}, bson.M{
		"$set": bson.M{
			"points":      points,
			"review":      review,
			"reviewed_at": at,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("phase 1 submission not found")
	}
	return nil
}

// List returns all submissions ordered by submission time.
func (s *Store) List(ctx context.Context) ([]models.Phase1Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var subs []models.Phase1Submission
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// ListScored returns the submissions that carry points, ordered by
// points descending with submission time as the tiebreaker so the input
// order to the ranking function is deterministic.
func (s *Store) ListScored(ctx context.Context) ([]models.Phase1Submission, error) {
	filter := bson.M{"points": bson.M{"$exists": true}}
	opts := options.Find().SetSort(bson.D{
		{Key: "points", Value: -1},
		{Key: "submitted_at", Value: 1},
	})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var subs []models.Phase1Submission
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// CountUnscored returns how many submissions still lack points. The
// publish precondition refuses while this is non-zero.
func (s *Store) CountUnscored(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"points": bson.M{"$exists": false}})
}
