// internal/app/features/notify/routes.go
package notify

import (
	"github.com/go-chi/chi/v5"

	"github.com/vijayakumarjith/startupsp/internal/app/system/auth"
	"github.com/vijayakumarjith/startupsp/internal/app/system/authz"
)

// Routes returns a subrouter that serves the notification endpoints.
// Mounted under /notify.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireRole(authz.RoleAdmin))

	r.Post("/workshop", h.InviteAll)
	r.Post("/workshop/{teamID}", h.InviteTeam)
	r.Post("/phase2", h.AnnounceAll)
	r.Post("/phase2/{teamID}", h.AnnounceTeam)

	return r
}
