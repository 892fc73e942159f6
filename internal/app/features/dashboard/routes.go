// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/go-chi/chi/v5"

	"github.com/vijayakumarjith/startupsp/internal/app/system/auth"
)

// Routes returns a subrouter that serves the dashboard endpoint.
// Mounted under /dashboard.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/", h.Serve)
	return r
}
