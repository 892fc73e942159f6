// internal/app/features/teams/routes.go
package teams

import (
	"github.com/go-chi/chi/v5"

	"github.com/vijayakumarjith/startupsp/internal/app/system/auth"
	"github.com/vijayakumarjith/startupsp/internal/app/system/authz"
)

// Routes returns a subrouter that serves the team endpoints. Mounted
// under /teams.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(authz.RoleParticipant))
		r.Put("/me", h.Register)
		r.Get("/me", h.GetOwn)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(authz.RoleAdmin, authz.RoleFinance))
		r.Get("/", h.List)
		r.Post("/{teamID}/paid", h.MarkPaid)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(authz.RoleAdmin))
		r.Put("/{teamID}/selection", h.SetSelection)
	})

	return r
}
