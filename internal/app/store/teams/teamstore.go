// internal/app/store/teams/teamstore.go
package teamstore

import (
	"context"
	"time"

	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the teams collection. The document _id is
// the identity provider UID of the registering participant.
type Store struct {
	c *mongo.Collection
}

// New creates a new teams store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teams")}
}

// Get returns the team for the given id.
func (s *Store) Get(ctx context.Context, id string) (models.Team, error) {
	var team models.Team
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if err == mongo.ErrNoDocuments {
		return models.Team{}, apperr.NotFound("team not found")
	}
	if err != nil {
		return models.Team{}, err
	}
	return team, nil
}

// Save upserts the team's own fields (name, registration id, college,
// members). payment_status and phase2_selected are deliberately not in
// the $set: payment status is monotonic and only ever moves to "paid"
// via MarkPaid, and selection is an admin-only write.
func (s *Store) Save(ctx context.Context, team models.Team) error {
	now := time.Now().UTC()

	filter := bson.M{"_id": team.ID}
	update := bson.M{
		"$set": bson.M{
			"team_name":        team.TeamName,
			"registration_id":  team.RegistrationID,
			"college_name":     team.CollegeName,
			"members":          team.Members,
			"is_regional_team": team.IsRegionalTeam,
			"updated_at":       now,
		},
		"$setOnInsert": bson.M{
			"payment_status":  models.PaymentPending,
			"phase2_selected": false,
			"created_at":      now,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	return err
}

// MarkPaid sets the team's payment status to paid. There is no
// corresponding downgrade write anywhere in the store, which is what
// keeps "paid" monotonic.
func (s *Store) MarkPaid(ctx context.Context, id string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"payment_status": models.PaymentPaid,
			"updated_at":     time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("team not found")
	}
	return nil
}

// SetPhase2Selected flips the admin-owned selection flag.
func (s *Store) SetPhase2Selected(ctx context.Context, id string, selected bool) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"phase2_selected": selected,
			"updated_at":      time.Now().UTC(),
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("team not found")
	}
	return nil
}

// PaymentStatus returns the team's stored payment status with a found
// flag. A missing team is not an error here; the identity resolver
// treats it as "no signal" and falls through to the payment log.
func (s *Store) PaymentStatus(ctx context.Context, id string) (string, bool, error) {
	var doc struct {
		PaymentStatus string `bson:"payment_status"`
	}
	proj := options.FindOne().SetProjection(bson.M{"payment_status": 1})
	err := s.c.FindOne(ctx, bson.M{"_id": id}, proj).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc.PaymentStatus, true, nil
}

// List returns all teams ordered by team name.
func (s *Store) List(ctx context.Context) ([]models.Team, error) {
	opts := options.Find().SetSort(bson.D{{Key: "team_name", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var teams []models.Team
	if err := cur.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// ListPhase2Selected returns the teams flagged for phase 2.
func (s *Store) ListPhase2Selected(ctx context.Context) ([]models.Team, error) {
	cur, err := s.c.Find(ctx, bson.M{"phase2_selected": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var teams []models.Team
	if err := cur.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}
