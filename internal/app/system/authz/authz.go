// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/vijayakumarjith/startupsp/internal/app/system/auth"
)

// Role names used across the application. Participants are everyone who
// is not mapped to an administrative role by configuration.
const (
	RoleAdmin       = "admin"
	RoleFinance     = "finance"
	RoleParticipant = "participant"
)

// UserCtx returns the user's role (lowercased), name, id, and a found
// flag. ok=true means a valid, authenticated user.
func UserCtx(r *http.Request) (role string, name string, userID string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", "", false
	}
	return strings.ToLower(user.Role), user.Name, user.ID, true
}

// IsAdmin reports whether the current request's user is the platform admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == RoleAdmin
}

// IsFinance reports whether the current request's user is the finance admin.
func IsFinance(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == RoleFinance
}

// IsParticipant reports whether the current request's user is a participant.
func IsParticipant(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == RoleParticipant
}
