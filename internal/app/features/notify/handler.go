// internal/app/features/notify/handler.go
package notify

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vijayakumarjith/startupsp/internal/app/system/httpjson"
	"github.com/vijayakumarjith/startupsp/internal/app/system/timeouts"
)

// Handler serves the notification batch endpoints.
type Handler struct {
	Service *Service
	Log     *zap.Logger
}

// NewHandler constructs a notify Handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{Service: svc, Log: logger}
}

// batchError carries the aggregate counts alongside the error so a
// wholesale failure still reports how far the batch got.
type batchError struct {
	Error        string `json:"error"`
	SuccessCount int    `json:"success_count"`
	FailCount    int    `json:"fail_count"`
}

// reportResponse wraps a Report; the counts are returned even when the
// batch as a whole errored.
func (h *Handler) reportResponse(w http.ResponseWriter, report Report, err error) {
	if err != nil {
		h.Log.Warn("notification batch failed",
			zap.Int("success", report.SuccessCount),
			zap.Int("fail", report.FailCount),
			zap.Error(err))
		status, msg := httpjson.StatusOf(err)
		httpjson.Respond(w, status, batchError{
			Error:        msg,
			SuccessCount: report.SuccessCount,
			FailCount:    report.FailCount,
		})
		return
	}
	httpjson.Respond(w, http.StatusOK, report)
}

// InviteTeam handles POST /notify/workshop/{teamID}. Admin only.
func (h *Handler) InviteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	report, err := h.Service.InviteTeam(ctx, chi.URLParam(r, "teamID"))
	h.reportResponse(w, report, err)
}

// InviteAll handles POST /notify/workshop. Admin only.
func (h *Handler) InviteAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	report, err := h.Service.InviteAll(ctx)
	h.reportResponse(w, report, err)
}

// AnnounceTeam handles POST /notify/phase2/{teamID}. Admin only.
func (h *Handler) AnnounceTeam(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	report, err := h.Service.AnnounceSelection(ctx, chi.URLParam(r, "teamID"))
	h.reportResponse(w, report, err)
}

// AnnounceAll handles POST /notify/phase2. Admin only.
func (h *Handler) AnnounceAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	report, err := h.Service.AnnounceSelectionAll(ctx)
	h.reportResponse(w, report, err)
}
