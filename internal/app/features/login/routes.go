// internal/app/features/login/routes.go
package login

import (
	"github.com/go-chi/chi/v5"

	"github.com/vijayakumarjith/startupsp/internal/app/system/ratelimit"
)

// Routes returns a subrouter that serves the Google OAuth endpoints.
// Mounted under /auth/google.
func Routes(h *Handler, rl *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.Use(ratelimit.Middleware(rl))
	r.Get("/", h.ServeLogin)
	r.Get("/callback", h.ServeCallback)
	return r
}
