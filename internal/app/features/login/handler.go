// internal/app/features/login/handler.go

// Package login implements Google OAuth sign-in. The callback resolves
// the Google account into a role, seeds the participant profile on
// first sign-in, and writes the session cookie.
package login

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/vijayakumarjith/startupsp/internal/app/system/auth"
	"github.com/vijayakumarjith/startupsp/internal/app/system/authz"
	"github.com/vijayakumarjith/startupsp/internal/app/system/identity"
	"github.com/vijayakumarjith/startupsp/internal/app/system/timeouts"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
)

// stateCookie carries the signed OAuth state between the redirect and
// the callback.
const stateCookie = "oauth_state"

// stateTTL bounds how long an OAuth round-trip may take.
const stateTTL = 10 * time.Minute

// ProfileWriter persists participant profiles.
type ProfileWriter interface {
	Upsert(ctx context.Context, u models.User) error
}

// Handler handles Google OAuth authentication.
type Handler struct {
	Resolver *identity.Resolver
	Profiles ProfileWriter
	Log      *zap.Logger

	ClientID     string
	ClientSecret string
	RedirectURL  string

	codec *securecookie.SecureCookie
}

// NewHandler creates a login Handler. The state codec signs the OAuth
// state cookie with the session key.
func NewHandler(resolver *identity.Resolver, profiles ProfileWriter, clientID, clientSecret, baseURL, sessionKey string, logger *zap.Logger) *Handler {
	return &Handler{
		Resolver:     resolver,
		Profiles:     profiles,
		Log:          logger,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
		codec:        securecookie.New([]byte(sessionKey), nil),
	}
}

// oauth2Config returns the Google OAuth2 configuration.
func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// ServeLogin handles GET /auth/google: it plants the signed state
// cookie and redirects to Google's consent screen.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	encoded, err := h.codec.Encode(stateCookie, state)
	if err != nil {
		h.Log.Error("failed to encode OAuth state cookie", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(stateTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	url := h.oauth2Config().AuthCodeURL(state)
	h.Log.Debug("initiating Google OAuth flow", zap.String("redirect_url", url))
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// ServeCallback handles GET /auth/google/callback: state check, code
// exchange, userinfo fetch, identity resolution, session write.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		http.Redirect(w, r, "/login?error=google_denied", http.StatusSeeOther)
		return
	}

	if !h.validState(r) {
		h.Log.Warn("invalid or expired OAuth state")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}
	clearStateCookie(w)

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		http.Redirect(w, r, "/login?error=invalid_code", http.StatusSeeOther)
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		http.Redirect(w, r, "/login?error=token_exchange", http.StatusSeeOther)
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		http.Redirect(w, r, "/login?error=user_info", http.StatusSeeOther)
		return
	}

	h.Log.Debug("Google user info fetched",
		zap.String("google_id", googleUser.ID),
		zap.String("email", googleUser.Email))

	ctxTimeout, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	res := h.Resolver.Resolve(ctxTimeout, identity.Principal{
		ID:          googleUser.ID,
		Email:       googleUser.Email,
		DisplayName: googleUser.Name,
	})

	// Seed the profile on a participant's first sign-in so later
	// lookups find it. A write failure only delays that; resolution
	// already synthesized a usable profile.
	if res.Role == authz.RoleParticipant && res.Profile != nil {
		if err := h.Profiles.Upsert(ctxTimeout, *res.Profile); err != nil {
			h.Log.Warn("profile upsert failed",
				zap.String("uid", googleUser.ID),
				zap.Error(err))
		}
	}

	sessionUser := &auth.SessionUser{
		ID:    googleUser.ID,
		Name:  googleUser.Name,
		Email: googleUser.Email,
		Role:  res.Role,
	}
	if err := auth.SignIn(w, r, sessionUser); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("uid", googleUser.ID))
		http.Redirect(w, r, "/login?error=session", http.StatusSeeOther)
		return
	}

	h.Log.Info("user signed in via Google OAuth",
		zap.String("uid", googleUser.ID),
		zap.String("role", res.Role),
		zap.Bool("degraded", res.Degraded))

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// validState compares the signed state cookie with the state Google
// echoed back.
func (h *Handler) validState(r *http.Request) bool {
	echoed := r.URL.Query().Get("state")
	if echoed == "" {
		return false
	}

	cookie, err := r.Cookie(stateCookie)
	if err != nil {
		return false
	}

	var stored string
	if err := h.codec.Decode(stateCookie, cookie.Value, &stored); err != nil {
		return false
	}
	return stored == echoed
}

func clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &info, nil
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
