package phase1store_test

import (
	"testing"
	"time"

	phase1store "github.com/vijayakumarjith/startupsp/internal/app/store/phase1"
	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
	"github.com/vijayakumarjith/startupsp/internal/testutil"
)

func newSubmission(teamID string) models.Phase1Submission {
	now := time.Now().UTC()
	return models.Phase1Submission{
		ID:                 teamID,
		TeamName:           "Rocket",
		CollegeName:        "Test Institute",
		WhatsappNumber:     "9000000001",
		ProductDescription: "A product",
		Solution:           "A solution",
		FileURL:            "https://files.test/" + teamID + "_deck.pptx",
		SubmittedAt:        now,
		UpdatedAt:          now,
	}
}

func TestStore_Create_Once(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := phase1store.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Create(ctx, newSubmission("team-1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Re-submitting the initial form, even with different content, is
	// rejected as a conflict.
	again := newSubmission("team-1")
	again.ProductDescription = "Different product"
	err := store.Create(ctx, again)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("second Create: got %v, want conflict", err)
	}

	saved, err := store.Get(ctx, "team-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if saved.ProductDescription != "A product" {
		t.Errorf("ProductDescription changed after rejected resubmit: %q", saved.ProductDescription)
	}
}

func TestStore_SetYouTubeLink(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := phase1store.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Create(ctx, newSubmission("team-2")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	at := time.Now().UTC()
	if err := store.SetYouTubeLink(ctx, "team-2", "https://youtu.be/abc", at); err != nil {
		t.Fatalf("SetYouTubeLink failed: %v", err)
	}

	saved, err := store.Get(ctx, "team-2")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if saved.YouTubeLink != "https://youtu.be/abc" {
		t.Errorf("YouTubeLink: got %q", saved.YouTubeLink)
	}
	if saved.ProductDescription != "A product" {
		t.Error("locked field disturbed by video link update")
	}

	err = store.SetYouTubeLink(ctx, "no-such-team", "https://youtu.be/abc", at)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("SetYouTubeLink on missing doc: got %v, want not-found", err)
	}
}

func TestStore_SetScore_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := phase1store.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Create(ctx, newSubmission("team-3")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	at := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 2; i++ {
		if err := store.SetScore(ctx, "team-3", 85, "solid pitch", at); err != nil {
			t.Fatalf("SetScore (run %d) failed: %v", i, err)
		}
	}

	saved, err := store.Get(ctx, "team-3")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if saved.Points == nil || *saved.Points != 85 {
		t.Errorf("Points: got %v, want 85", saved.Points)
	}
	if saved.Review != "solid pitch" {
		t.Errorf("Review: got %q", saved.Review)
	}
	if saved.Solution != "A solution" {
		t.Error("locked field disturbed by scoring")
	}
}

func TestStore_CountUnscored(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := phase1store.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Create(ctx, newSubmission("team-4")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Create(ctx, newSubmission("team-5")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.SetScore(ctx, "team-4", 70, "", time.Now().UTC()); err != nil {
		t.Fatalf("SetScore failed: %v", err)
	}

	n, err := store.CountUnscored(ctx)
	if err != nil {
		t.Fatalf("CountUnscored failed: %v", err)
	}
	if n != 1 {
		t.Errorf("CountUnscored: got %d, want 1", n)
	}

	scored, err := store.ListScored(ctx)
	if err != nil {
		t.Fatalf("ListScored failed: %v", err)
	}
	if len(scored) != 1 || scored[0].ID != "team-4" {
		t.Errorf("ListScored: got %+v", scored)
	}
}
