// internal/app/features/results/service.go

// Package results implements phase-1 scoring, the competition-ranked
// leaderboard, and the one-way publication latch that controls when
// participants may see it.
package results

import (
	"context"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
)

// ScoreStore is the slice of the phase-1 store the service needs.
type ScoreStore interface {
	Get(ctx context.Context, teamID string) (models.Phase1Submission, error)
	SetScore(ctx context.Context, teamID string, points int, review string, at time.Time) error
	List(ctx context.Context) ([]models.Phase1Submission, error)
	ListScored(ctx context.Context) ([]models.Phase1Submission, error)
	CountUnscored(ctx context.Context) (int64, error)
}

// PublishStore persists the publication flag.
type PublishStore interface {
	Get(ctx context.Context) (models.ResultsConfig, error)
	Publish(ctx context.Context, at time.Time) error
}

// TeamSource supplies registration IDs for leaderboard rows.
type TeamSource interface {
	List(ctx context.Context) ([]models.Team, error)
}

// Service coordinates scoring and publication.
type Service struct {
	scores    ScoreStore
	published PublishStore
	teams     TeamSource
	sanitize  *bluemonday.Policy
	now       func() time.Time
	log       *zap.Logger
}

// NewService wires a results Service.
func NewService(scores ScoreStore, published PublishStore, teams TeamSource, logger *zap.Logger) *Service {
	return &Service{
		scores:    scores,
		published: published,
		teams:     teams,
		sanitize:  bluemonday.StrictPolicy(),
		now:       time.Now,
		log:       logger,
	}
}

// RecordScore stores a judge's points and review for one pitch. Points
// must be 0 to 100; the review text is stripped of any markup before
// it is stored. Re-scoring overwrites the previous values.
func (s *Service) RecordScore(ctx context.Context, teamID string, points int, review string) error {
	if points < 0 || points > 100 {
		return apperr.Validation("points must be between 0 and 100")
	}

	clean := s.sanitize.Sanitize(review)
	if err := s.scores.SetScore(ctx, teamID, points, clean, s.now().UTC()); err != nil {
		return err
	}

	s.log.Info("pitch scored",
		zap.String("team_id", teamID),
		zap.Int("points", points))
	return nil
}

// Publish flips the results to visible. It refuses while any
// submission is still unscored, and once published there is no way
// back.
func (s *Service) Publish(ctx context.Context) error {
	unscored, err := s.scores.CountUnscored(ctx)
	if err != nil {
		return err
	}
	if unscored > 0 {
		return apperr.Precondition("all submissions must be fully scored before publishing")
	}

	if err := s.published.Publish(ctx, s.now().UTC()); err != nil {
		return err
	}

	s.log.Info("results published")
	return nil
}

// Published reports the publication flag.
func (s *Service) Published(ctx context.Context) (models.ResultsConfig, error) {
	return s.published.Get(ctx)
}

// Leaderboard returns the ranked, optionally filtered standings.
// Participants only see it after publication; staff may always look.
func (s *Service) Leaderboard(ctx context.Context, query string, staff bool) ([]Entry, error) {
	if !staff {
		cfg, err := s.published.Get(ctx)
		if err != nil {
			return nil, err
		}
		if !cfg.Published {
			return nil, apperr.Precondition("results are not published yet")
		}
	}

	subs, err := s.scores.ListScored(ctx)
	if err != nil {
		return nil, err
	}
	entries := Rank(subs)

	// Attach registration IDs from the team roster.
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, err
	}
	regByID := make(map[string]string, len(teams))
	for _, t := range teams {
		regByID[t.ID] = t.RegistrationID
	}
	for i := range entries {
		entries[i].RegistrationID = regByID[entries[i].TeamID]
	}

	return Filter(entries, query), nil
}

// ScoringProgress summarizes how far the judges have gotten.
type ScoringProgress struct {
	Total    int   `json:"total"`
	Scored   int   `json:"scored"`
	Unscored int64 `json:"unscored"`
}

// Progress reports scoring completeness for the admin dashboard.
func (s *Service) Progress(ctx context.Context) (ScoringProgress, error) {
	subs, err := s.scores.List(ctx)
	if err != nil {
		return ScoringProgress{}, err
	}
	unscored, err := s.scores.CountUnscored(ctx)
	if err != nil {
		return ScoringProgress{}, err
	}
	return ScoringProgress{
		Total:    len(subs),
		Scored:   len(subs) - int(unscored),
		Unscored: unscored,
	}, nil
}

// Submission returns one pitch with its score for judge review.
func (s *Service) Submission(ctx context.Context, teamID string) (models.Phase1Submission, error) {
	return s.scores.Get(ctx, teamID)
}

// Submissions lists every pitch for the judging queue.
func (s *Service) Submissions(ctx context.Context) ([]models.Phase1Submission, error) {
	return s.scores.List(ctx)
}
