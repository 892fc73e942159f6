package testutil

import (
	"net/http"

	"github.com/vijayakumarjith/startupsp/internal/app/system/auth"
)

// AsAdmin returns the request with an admin session user in context.
func AsAdmin(r *http.Request) *http.Request {
	return auth.WithUser(r, &auth.SessionUser{
		ID:    "admin-uid",
		Name:  "Test Admin",
		Email: "admin@test.com",
		Role:  "admin",
	})
}

// AsFinance returns the request with a finance session user in context.
func AsFinance(r *http.Request) *http.Request {
	return auth.WithUser(r, &auth.SessionUser{
		ID:    "finance-uid",
		Name:  "Test Finance",
		Email: "finance@test.com",
		Role:  "finance",
	})
}

// AsParticipant returns the request with a participant session user
// whose UID (and so team id) is the given id.
func AsParticipant(r *http.Request, id string) *http.Request {
	return auth.WithUser(r, &auth.SessionUser{
		ID:    id,
		Name:  "Test Participant",
		Email: id + "@test.com",
		Role:  "participant",
	})
}
