// internal/app/features/teams/handler.go
package teams

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/app/system/auth"
	"github.com/vijayakumarjith/startupsp/internal/app/system/httpjson"
	"github.com/vijayakumarjith/startupsp/internal/app/system/timeouts"
)

// Handler serves the team endpoints.
type Handler struct {
	Service *Service
	Log     *zap.Logger
}

// NewHandler constructs a teams Handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{Service: svc, Log: logger}
}

// Register handles PUT /teams/me.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Internal("missing session user", nil))
		return
	}

	var in RegisterInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	team, err := h.Service.Register(ctx, user.ID, in)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, team)
}

// GetOwn handles GET /teams/me.
func (h *Handler) GetOwn(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Internal("missing session user", nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	team, err := h.Service.Get(ctx, user.ID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, team)
}

// List handles GET /teams. Staff only.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	roster, err := h.Service.List(ctx)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, roster)
}

// MarkPaid handles POST /teams/{teamID}/paid. Admin and finance.
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Service.MarkPaid(ctx, chi.URLParam(r, "teamID")); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"status": "paid"})
}

// selectionRequest is the body of PUT /teams/{teamID}/selection.
type selectionRequest struct {
	Selected bool `json:"selected"`
}

// SetSelection handles PUT /teams/{teamID}/selection. Admin only.
func (h *Handler) SetSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Service.SetSelection(ctx, chi.URLParam(r, "teamID"), req.Selected); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"status": "updated"})
}
