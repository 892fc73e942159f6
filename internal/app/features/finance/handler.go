// internal/app/features/finance/handler.go
package finance

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vijayakumarjith/startupsp/internal/app/system/httpjson"
	"github.com/vijayakumarjith/startupsp/internal/app/system/timeouts"
)

// Handler serves the finance endpoints.
type Handler struct {
	Service *Service
	Log     *zap.Logger
}

// NewHandler constructs a finance Handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{Service: svc, Log: logger}
}

// Reconciliation handles GET /finance/reconciliation.
func (h *Handler) Reconciliation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rec, err := h.Service.Reconcile(ctx)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, rec)
}

// ExportCSV handles GET /finance/reconciliation.csv and streams the
// reconciliation rows as a CSV download. The export token in the query
// string is checked against the configured hash before any data is
// written.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.CheckExportToken(r.URL.Query().Get("token")); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rec, err := h.Service.Reconcile(ctx)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	filename := "reconciliation_" + time.Now().UTC().Format("20060102_150405") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{
		"registration_id", "team_name", "college", "lead_email",
		"team_status", "log_status", "reference", "amount", "recorded_at", "mismatch",
	})
	for _, row := range rec.Rows {
		recordedAt := ""
		if !row.RecordedAt.IsZero() {
			recordedAt = row.RecordedAt.UTC().Format(time.RFC3339)
		}
		mismatch := ""
		if row.Mismatch {
			mismatch = "yes"
		}
		_ = cw.Write([]string{
			row.RegistrationID, row.TeamName, row.CollegeName, row.LeadEmail,
			row.TeamStatus, row.LogStatus, row.Reference, row.Amount, recordedAt, mismatch,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.Log.Error("streaming reconciliation csv", zap.Error(err))
	}
}
