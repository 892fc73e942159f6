// internal/app/features/finance/routes.go
package finance

import (
	"github.com/go-chi/chi/v5"

	"github.com/vijayakumarjith/startupsp/internal/app/system/auth"
	"github.com/vijayakumarjith/startupsp/internal/app/system/authz"
)

// Routes returns a subrouter that serves the finance endpoints. Mounted
// under /finance.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireRole(authz.RoleAdmin, authz.RoleFinance))

	r.Get("/reconciliation", h.Reconciliation)
	r.Get("/reconciliation.csv", h.ExportCSV)

	return r
}
