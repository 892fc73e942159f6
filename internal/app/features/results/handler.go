// internal/app/features/results/handler.go
package results

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vijayakumarjith/startupsp/internal/app/system/authz"
	"github.com/vijayakumarjith/startupsp/internal/app/system/httpjson"
	"github.com/vijayakumarjith/startupsp/internal/app/system/normalize"
	"github.com/vijayakumarjith/startupsp/internal/app/system/timeouts"
)

// Handler serves the scoring and leaderboard endpoints.
type Handler struct {
	Service *Service
	Log     *zap.Logger
}

// NewHandler constructs a results Handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{Service: svc, Log: logger}
}

// scoreRequest is the body of PUT /results/score/{teamID}.
type scoreRequest struct {
	Points int    `json:"points"`
	Review string `json:"review"`
}

// Score handles PUT /results/score/{teamID}. Admin only.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	var req scoreRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Service.RecordScore(ctx, teamID, req.Points, req.Review); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"status": "scored"})
}

// Publish handles POST /results/publish. Admin only.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Service.Publish(ctx); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"status": "published"})
}

// Status handles GET /results/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cfg, err := h.Service.Published(ctx)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, cfg)
}

// Leaderboard handles GET /results/leaderboard?q=. Staff see it
// always; participants only after publication.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	role, _, _, _ := authz.UserCtx(r)
	staff := role == authz.RoleAdmin || role == authz.RoleFinance

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	entries, err := h.Service.Leaderboard(ctx, normalize.QueryParam(r.URL.Query().Get("q")), staff)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, entries)
}

// Progress handles GET /results/progress. Admin only.
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	progress, err := h.Service.Progress(ctx)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, progress)
}

// Submissions handles GET /results/submissions. Admin only.
func (h *Handler) Submissions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	subs, err := h.Service.Submissions(ctx)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, subs)
}

// Submission handles GET /results/submissions/{teamID}. Admin only.
func (h *Handler) Submission(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sub, err := h.Service.Submission(ctx, teamID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, sub)
}
