// internal/app/features/results/routes.go
package results

import (
	"github.com/go-chi/chi/v5"

	"github.com/vijayakumarjith/startupsp/internal/app/system/auth"
	"github.com/vijayakumarjith/startupsp/internal/app/system/authz"
)

// Routes returns a subrouter that serves the results endpoints.
// Mounted under /results.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)

		r.Get("/status", h.Status)
		r.Get("/leaderboard", h.Leaderboard)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Use(auth.RequireRole(authz.RoleAdmin))

		r.Get("/submissions", h.Submissions)
		r.Get("/submissions/{teamID}", h.Submission)
		r.Put("/score/{teamID}", h.Score)
		r.Get("/progress", h.Progress)
		r.Post("/publish", h.Publish)
	})

	return r
}
