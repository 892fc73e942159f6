// internal/app/features/payments/routes.go
package payments

import (
	"github.com/go-chi/chi/v5"

	"github.com/vijayakumarjith/startupsp/internal/app/system/ratelimit"
)

// Routes returns a subrouter that serves the payment webhook. Mounted
// under /payments. The webhook authenticates by signature, not by
// session; the rate limit keeps signature probing in check.
func Routes(h *Handler, rl *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.Use(ratelimit.Middleware(rl))
	r.Post("/webhook", h.Webhook)
	return r
}
