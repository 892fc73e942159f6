// internal/app/features/logout/handler.go

// Package logout clears the session.
package logout

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/vijayakumarjith/startupsp/internal/app/system/auth"
	"github.com/vijayakumarjith/startupsp/internal/app/system/httpjson"
)

// Handler serves POST /logout.
type Handler struct {
	Log *zap.Logger
}

// NewHandler constructs a logout Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// Serve clears the session cookie.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if user, ok := auth.CurrentUser(r); ok {
		h.Log.Info("user signed out", zap.String("uid", user.ID))
	}
	if err := auth.SignOut(w, r); err != nil {
		h.Log.Error("sign-out failed", zap.Error(err))
	}
	httpjson.Respond(w, http.StatusOK, map[string]string{"status": "signed_out"})
}
