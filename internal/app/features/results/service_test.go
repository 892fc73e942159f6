package results

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
)

type fakeScores struct {
	subs    map[string]models.Phase1Submission
	reviews map[string]string
}

func newFakeScores(subs ...models.Phase1Submission) *fakeScores {
	f := &fakeScores{
		subs:    map[string]models.Phase1Submission{},
		reviews: map[string]string{},
	}
	for _, s := range subs {
		f.subs[s.ID] = s
	}
	return f
}

func (f *fakeScores) Get(_ context.Context, teamID string) (models.Phase1Submission, error) {
	s, ok := f.subs[teamID]
	if !ok {
		return models.Phase1Submission{}, apperr.NotFound("submission not found")
	}
	return s, nil
}

func (f *fakeScores) SetScore(_ context.Context, teamID string, points int, review string, _ time.Time) error {
	s, ok := f.subs[teamID]
	if !ok {
		return apperr.NotFound("submission not found")
	}
	s.Points = &points
	s.Review = review
	f.subs[teamID] = s
	f.reviews[teamID] = review
	return nil
}

func (f *fakeScores) List(_ context.Context) ([]models.Phase1Submission, error) {
	out := make([]models.Phase1Submission, 0, len(f.subs))
	for _, s := range f.subs {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeScores) ListScored(_ context.Context) ([]models.Phase1Submission, error) {
	out := make([]models.Phase1Submission, 0, len(f.subs))
	for _, s := range f.subs {
		if s.Scored() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScores) CountUnscored(_ context.Context) (int64, error) {
	var n int64
	for _, s := range f.subs {
		if !s.Scored() {
			n++
		}
	}
	return n, nil
}

type fakePublish struct {
	cfg models.ResultsConfig
}

func (f *fakePublish) Get(_ context.Context) (models.ResultsConfig, error) {
	return f.cfg, nil
}

func (f *fakePublish) Publish(_ context.Context, at time.Time) error {
	f.cfg.Published = true
	f.cfg.PublishedAt = &at
	return nil
}

type fakeTeamList struct {
	teams []models.Team
}

func (f *fakeTeamList) List(_ context.Context) ([]models.Team, error) {
	return f.teams, nil
}

func unscored(id, name string) models.Phase1Submission {
	return models.Phase1Submission{ID: id, TeamName: name}
}

func TestRecordScore(t *testing.T) {
	ctx := context.Background()
	scores := newFakeScores(unscored("team-1", "Rocket"))
	svc := NewService(scores, &fakePublish{}, &fakeTeamList{}, zap.NewNop())

	if err := svc.RecordScore(ctx, "team-1", 87, "solid pitch"); err != nil {
		t.Fatalf("RecordScore failed: %v", err)
	}
	if got := scores.subs["team-1"]; !got.Scored() || *got.Points != 87 {
		t.Errorf("score not stored: %+v", got)
	}
}

func TestRecordScore_RangeValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeScores(unscored("team-1", "Rocket")), &fakePublish{}, &fakeTeamList{}, zap.NewNop())

	for _, points := range []int{-1, 101, 1000} {
		if err := svc.RecordScore(ctx, "team-1", points, ""); !apperr.Is(err, apperr.KindValidation) {
			t.Errorf("points %d: got %v, want validation error", points, err)
		}
	}
	for _, points := range []int{0, 100} {
		if err := svc.RecordScore(ctx, "team-1", points, ""); err != nil {
			t.Errorf("points %d: got %v, want success", points, err)
		}
	}
}

func TestRecordScore_SanitizesReview(t *testing.T) {
	ctx := context.Background()
	scores := newFakeScores(unscored("team-1", "Rocket"))
	svc := NewService(scores, &fakePublish{}, &fakeTeamList{}, zap.NewNop())

	if err := svc.RecordScore(ctx, "team-1", 50, `good <script>alert(1)</script>work`); err != nil {
		t.Fatalf("RecordScore failed: %v", err)
	}
	if review := scores.reviews["team-1"]; review != "good work" {
		t.Errorf("review not sanitized: %q", review)
	}
}

func TestPublish_RefusesWithUnscored(t *testing.T) {
	ctx := context.Background()
	scores := newFakeScores(
		scored("a", "Alpha", 90, time.Now()),
		unscored("b", "Beta"),
	)
	pub := &fakePublish{}
	svc := NewService(scores, pub, &fakeTeamList{}, zap.NewNop())

	err := svc.Publish(ctx)
	if !apperr.Is(err, apperr.KindPrecondition) {
		t.Fatalf("got %v, want precondition error", err)
	}
	if pub.cfg.Published {
		t.Error("publication flag set despite refusal")
	}
}

func TestPublish_FullyScored(t *testing.T) {
	ctx := context.Background()
	scores := newFakeScores(scored("a", "Alpha", 90, time.Now()))
	pub := &fakePublish{}
	svc := NewService(scores, pub, &fakeTeamList{}, zap.NewNop())

	if err := svc.Publish(ctx); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if !pub.cfg.Published {
		t.Error("publication flag not set")
	}
}

func TestLeaderboard_ParticipantGate(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	scores := newFakeScores(scored("a", "Alpha", 90, base))
	pub := &fakePublish{}
	svc := NewService(scores, pub, &fakeTeamList{}, zap.NewNop())

	// Before publication: participants blocked, staff allowed.
	if _, err := svc.Leaderboard(ctx, "", false); !apperr.Is(err, apperr.KindPrecondition) {
		t.Errorf("participant before publish: got %v, want precondition error", err)
	}
	if _, err := svc.Leaderboard(ctx, "", true); err != nil {
		t.Errorf("staff before publish: got %v, want success", err)
	}

	if err := svc.Publish(ctx); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	entries, err := svc.Leaderboard(ctx, "", false)
	if err != nil {
		t.Fatalf("participant after publish: %v", err)
	}
	if len(entries) != 1 || entries[0].Rank != 1 {
		t.Errorf("entries: got %+v", entries)
	}
}

func TestLeaderboard_AttachesRegistrationIDs(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	scores := newFakeScores(scored("a", "Alpha", 90, base))
	teams := &fakeTeamList{teams: []models.Team{
		{ID: "a", TeamName: "Alpha", RegistrationID: "SS-001"},
	}}
	svc := NewService(scores, &fakePublish{}, teams, zap.NewNop())

	entries, err := svc.Leaderboard(ctx, "", true)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if entries[0].RegistrationID != "SS-001" {
		t.Errorf("RegistrationID: got %q", entries[0].RegistrationID)
	}
}

func TestProgress(t *testing.T) {
	ctx := context.Background()
	scores := newFakeScores(
		scored("a", "Alpha", 90, time.Now()),
		scored("b", "Beta", 70, time.Now()),
		unscored("c", "Gamma"),
	)
	svc := NewService(scores, &fakePublish{}, &fakeTeamList{}, zap.NewNop())

	p, err := svc.Progress(ctx)
	if err != nil {
		t.Fatalf("Progress failed: %v", err)
	}
	if p.Total != 3 || p.Scored != 2 || p.Unscored != 1 {
		t.Errorf("progress: got %+v", p)
	}
}
