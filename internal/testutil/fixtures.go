package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/vijayakumarjith/startupsp/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateTeam inserts a team with two members and returns it.
func (f *Fixtures) CreateTeam(ctx context.Context, id, teamName, regID string) models.Team {
	f.t.Helper()

	now := time.Now().UTC()
	team := models.Team{
		ID:             id,
		TeamName:       teamName,
		RegistrationID: regID,
		CollegeName:    "Test Institute of Technology",
		Members: []models.Member{
			{Name: "Lead Person", Email: "lead@test.com", Phone: "9000000001"},
			{Name: "Second Person", Email: "second@test.com", Phone: "9000000002"},
		},
		PaymentStatus: models.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("teams").InsertOne(ctx, team); err != nil {
		f.t.Fatalf("failed to create test team: %v", err)
	}
	return team
}

// CreatePhase1 inserts a phase-1 submission for the team id.
func (f *Fixtures) CreatePhase1(ctx context.Context, teamID, teamName string) models.Phase1Submission {
	f.t.Helper()

	now := time.Now().UTC()
	sub := models.Phase1Submission{
		ID:                 teamID,
		TeamName:           teamName,
		CollegeName:        "Test Institute of Technology",
		WhatsappNumber:     "9000000001",
		ProductDescription: "A product",
		Solution:           "A solution",
		FileURL:            "https://files.test/" + teamID + "_deck.pptx",
		SubmittedAt:        now,
		UpdatedAt:          now,
	}

	if _, err := f.db.Collection("phase1_submissions").InsertOne(ctx, sub); err != nil {
		f.t.Fatalf("failed to create test phase 1 submission: %v", err)
	}
	return sub
}

// CreatePayment appends a payment log record.
func (f *Fixtures) CreatePayment(ctx context.Context, email, status string) models.Payment {
	f.t.Helper()

	p := models.Payment{
		Email:      email,
		Status:     status,
		Reference:  "ref-" + email,
		RecordedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("payments").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test payment: %v", err)
	}
	return p
}
