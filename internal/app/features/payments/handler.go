// internal/app/features/payments/handler.go
package payments

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/app/system/httpjson"
	"github.com/vijayakumarjith/startupsp/internal/app/system/timeouts"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
)

// maxWebhookBody caps webhook request bodies.
const maxWebhookBody = 64 << 10 // 64 KB

// Log appends verified events to the payment log.
type Log interface {
	Append(ctx context.Context, p models.Payment) error
}

// Handler serves the provider webhook.
type Handler struct {
	Provider Provider
	Payments Log
	LogZ     *zap.Logger
}

// NewHandler constructs a payments Handler.
func NewHandler(provider Provider, payments Log, logger *zap.Logger) *Handler {
	return &Handler{Provider: provider, Payments: payments, LogZ: logger}
}

// Webhook handles POST /payments/webhook. Unverifiable requests get
// 401; verified events are appended whatever their status, so the log
// keeps cancellations for reconciliation.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		httpjson.BadRequest(w, "unreadable body")
		return
	}

	headers := map[string]string{}
	for name := range r.Header {
		headers[strings.ToLower(name)] = r.Header.Get(name)
	}

	event, err := h.Provider.HandleWebhook(r.Context(), body, headers)
	if err != nil {
		h.LogZ.Warn("webhook rejected",
			zap.String("provider", h.Provider.Name()),
			zap.Error(err))
		httpjson.Respond(w, http.StatusUnauthorized, map[string]string{"error": "verification failed"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	record := models.Payment{
		Email:      event.Email,
		Status:     event.Status,
		Reference:  event.Reference,
		Amount:     event.Amount,
		Provider:   h.Provider.Name(),
		RecordedAt: time.Now().UTC(),
	}
	if err := h.Payments.Append(ctx, record); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			// Redelivery of an event we already hold. Acknowledge so the
			// provider stops retrying.
			h.LogZ.Info("duplicate payment event ignored",
				zap.String("reference", event.Reference))
			httpjson.Respond(w, http.StatusOK, map[string]string{"status": "duplicate"})
			return
		}
		h.LogZ.Error("payment log append failed",
			zap.String("reference", event.Reference),
			zap.Error(err))
		httpjson.Error(w, h.LogZ, err)
		return
	}

	h.LogZ.Info("payment event recorded",
		zap.String("provider", h.Provider.Name()),
		zap.String("status", event.Status),
		zap.String("reference", event.Reference))
	httpjson.Respond(w, http.StatusOK, map[string]string{"status": "recorded"})
}
