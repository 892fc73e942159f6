// internal/app/store/phase2/phase2store.go
package phase2store

import (
	"context"
	"time"

	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the phase2_submissions collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new phase-2 submissions store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("phase2_submissions")}
}

// Fields holds the merge-updatable parts of a phase-2 entry. Empty
// strings mean "leave the stored value alone".
type Fields struct {
	ProposalURL     string
	ProposalPath    string
	YouTubeVideoURL string
}

// Merge upserts the entry for the team, setting only the provided
// fields so repeated submissions refine rather than replace the
// document.
func (s *Store) Merge(ctx context.Context, teamID string, f Fields, at time.Time) error {
	set := bson.M{
		"status":     "submitted",
		"updated_at": at,
	}
	if f.ProposalURL != "" {
		set["proposal_url"] = f.ProposalURL
	}
	if f.ProposalPath != "" {
		set["proposal_path"] = f.ProposalPath
	}
	if f.YouTubeVideoURL != "" {
		set["youtube_video_url"] = f.YouTubeVideoURL
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"submitted_at": at,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": teamID}, update, opts)
	return err
}

// Get returns the entry for the given team id.
func (s *Store) Get(ctx context.Context, teamID string) (models.Phase2Submission, error) {
	var sub models.Phase2Submission
	err := s.c.FindOne(ctx, bson.M{"_id": teamID}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return models.Phase2Submission{}, apperr.NotFound("phase 2 submission not found")
	}
	if err != nil {
		return models.Phase2Submission{}, err
	}
	return sub, nil
}
