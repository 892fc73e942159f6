// internal/app/features/submission/routes.go
package submission

import (
	"github.com/go-chi/chi/v5"

	"github.com/vijayakumarjith/startupsp/internal/app/system/auth"
	"github.com/vijayakumarjith/startupsp/internal/app/system/authz"
)

// Routes returns a subrouter that serves the submission endpoints.
// Mounted under /submissions.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/deadlines", h.Deadlines)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Use(auth.RequireRole(authz.RoleParticipant))

		r.Post("/phase1", h.SubmitPhase1)
		r.Get("/phase1", h.GetPhase1)
		r.Put("/phase1/video", h.UpdateVideoLink)

		r.Post("/phase2", h.SubmitPhase2)
		r.Get("/phase2", h.GetPhase2)
	})

	return r
}
