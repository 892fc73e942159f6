// internal/app/features/dashboard/handler.go

// Package dashboard serves the role-dispatched home state: participants
// get their resolved identity, team, and submission progress; admin and
// finance get the operational counts their consoles need.
package dashboard

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/app/system/auth"
	"github.com/vijayakumarjith/startupsp/internal/app/system/authz"
	"github.com/vijayakumarjith/startupsp/internal/app/system/httpjson"
	"github.com/vijayakumarjith/startupsp/internal/app/system/identity"
	"github.com/vijayakumarjith/startupsp/internal/app/system/timeouts"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
)

// TeamSource is the slice of the team store the dashboard needs.
type TeamSource interface {
	Get(ctx context.Context, teamID string) (models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
}

// SubmissionSource reports phase-1 pitches and scoring progress.
type SubmissionSource interface {
	Get(ctx context.Context, teamID string) (models.Phase1Submission, error)
	CountUnscored(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]models.Phase1Submission, error)
}

// ResultsSource reports the publication flag.
type ResultsSource interface {
	Get(ctx context.Context) (models.ResultsConfig, error)
}

// Handler serves GET /dashboard.
type Handler struct {
	Resolver *identity.Resolver
	Teams    TeamSource
	Phase1   SubmissionSource
	Results  ResultsSource
	Log      *zap.Logger
}

// NewHandler constructs a dashboard Handler.
func NewHandler(resolver *identity.Resolver, teams TeamSource, phase1 SubmissionSource, results ResultsSource, logger *zap.Logger) *Handler {
	return &Handler{
		Resolver: resolver,
		Teams:    teams,
		Phase1:   phase1,
		Results:  results,
		Log:      logger,
	}
}

// participantState is the participant dashboard payload.
type participantState struct {
	Role           string       `json:"role"`
	Profile        *models.User `json:"profile,omitempty"`
	PaymentStatus  string       `json:"payment_status"`
	Degraded       bool         `json:"degraded,omitempty"`
	Team           *models.Team `json:"team,omitempty"`
	Phase1Complete bool         `json:"phase1_complete"`
	Phase2Selected bool         `json:"phase2_selected"`
}

// staffState is the admin and finance dashboard payload.
type staffState struct {
	Role             string `json:"role"`
	TeamCount        int    `json:"team_count"`
	PaidCount        int    `json:"paid_count"`
	PendingCount     int    `json:"pending_count"`
	SubmissionCount  int    `json:"submission_count,omitempty"`
	UnscoredCount    int64  `json:"unscored_count,omitempty"`
	ResultsPublished bool   `json:"results_published,omitempty"`
}

// Serve handles GET /dashboard, dispatching on the session role.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Internal("missing session user", nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch user.Role {
	case authz.RoleAdmin, authz.RoleFinance:
		h.serveStaff(ctx, w, user.Role)
	default:
		h.serveParticipant(ctx, w, user)
	}
}

func (h *Handler) serveParticipant(ctx context.Context, w http.ResponseWriter, user *auth.SessionUser) {
	res := h.Resolver.Resolve(ctx, identity.Principal{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.Name,
	})

	state := participantState{
		Role:          res.Role,
		Profile:       res.Profile,
		PaymentStatus: res.PaymentStatus,
		Degraded:      res.Degraded,
	}

	if team, err := h.Teams.Get(ctx, user.ID); err == nil {
		state.Team = &team
		state.Phase2Selected = team.Phase2Selected
	} else if !apperr.Is(err, apperr.KindNotFound) {
		httpjson.Error(w, h.Log, err)
		return
	}

	if _, err := h.Phase1.Get(ctx, user.ID); err == nil {
		state.Phase1Complete = true
	} else if !apperr.Is(err, apperr.KindNotFound) {
		httpjson.Error(w, h.Log, err)
		return
	}

	httpjson.Respond(w, http.StatusOK, state)
}

func (h *Handler) serveStaff(ctx context.Context, w http.ResponseWriter, role string) {
	teams, err := h.Teams.List(ctx)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	state := staffState{Role: role, TeamCount: len(teams)}
	for _, t := range teams {
		if t.IsPaid() {
			state.PaidCount++
		} else {
			state.PendingCount++
		}
	}

	if role == authz.RoleAdmin {
		subs, err := h.Phase1.List(ctx)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		state.SubmissionCount = len(subs)

		unscored, err := h.Phase1.CountUnscored(ctx)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		state.UnscoredCount = unscored

		cfg, err := h.Results.Get(ctx)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		state.ResultsPublished = cfg.Published
	}

	httpjson.Respond(w, http.StatusOK, state)
}
