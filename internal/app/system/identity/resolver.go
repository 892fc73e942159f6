// internal/app/system/identity/resolver.go

// Package identity resolves an authenticated principal into a role and,
// for participants, a profile and payment state.
//
// Resolution is read-only, never fails sign-in, and is safe to re-run
// concurrently: a store error during profile or payment lookup degrades
// to a minimal synthesized profile with a pending payment status, and
// the next refresh simply resolves again.
package identity

import (
	"context"

	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/app/system/authz"
	"github.com/vijayakumarjith/startupsp/internal/app/system/normalize"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
	"go.uber.org/zap"
)

// Principal is what the identity provider yields on sign-in.
type Principal struct {
	ID          string
	Email       string
	DisplayName string
}

// Resolution is the single outcome of resolving a principal. Profile
// and PaymentStatus are populated only for participants. Degraded is
// set when a data-source error forced the profile fallback.
type Resolution struct {
	Role          string
	Profile       *models.User
	PaymentStatus string
	Degraded      bool
}

// ProfileSource loads participant profiles.
type ProfileSource interface {
	Get(ctx context.Context, id string) (*models.User, error)
}

// TeamSource answers the first link of the payment precedence chain.
type TeamSource interface {
	PaymentStatus(ctx context.Context, id string) (status string, found bool, err error)
}

// PaymentSource answers the fallback link: has any log record for the
// email been marked paid.
type PaymentSource interface {
	HasPaid(ctx context.Context, email string) (bool, error)
}

// RoleMap maps lowercased credential emails to administrative roles.
// Everything not in the map is a participant.
type RoleMap map[string]string

// NewRoleMap builds the map from the configured admin roster. Blank
// entries are ignored so a deployment can run without a finance admin.
func NewRoleMap(adminEmail, financeEmail string) RoleMap {
	m := RoleMap{}
	if e := normalize.Email(adminEmail); e != "" {
		m[e] = authz.RoleAdmin
	}
	if e := normalize.Email(financeEmail); e != "" {
		m[e] = authz.RoleFinance
	}
	return m
}

// Resolver implements the resolution pipeline.
type Resolver struct {
	roles    RoleMap
	profiles ProfileSource
	teams    TeamSource
	payments PaymentSource
	log      *zap.Logger
}

// New creates a Resolver.
func New(roles RoleMap, profiles ProfileSource, teams TeamSource, payments PaymentSource, logger *zap.Logger) *Resolver {
	return &Resolver{
		roles:    roles,
		profiles: profiles,
		teams:    teams,
		payments: payments,
		log:      logger,
	}
}

// Resolve maps the principal to exactly one resolution. It never
// returns an error: lookups that fail degrade rather than abort
// authentication.
func (r *Resolver) Resolve(ctx context.Context, p Principal) Resolution {
	if role, ok := r.roles[normalize.Email(p.Email)]; ok {
		return Resolution{Role: role}
	}

	res := Resolution{
		Role:          authz.RoleParticipant,
		PaymentStatus: models.PaymentPending,
	}

	profile, degraded := r.loadProfile(ctx, p)
	res.Profile = profile
	res.Degraded = degraded

	status, paymentDegraded := r.resolvePayment(ctx, p, profile)
	res.PaymentStatus = status
	res.Degraded = res.Degraded || paymentDegraded

	return res
}

// loadProfile fetches the stored profile or synthesizes a minimal one.
// An absent profile is normal (first sign-in); a store error is logged
// and reported as degradation.
func (r *Resolver) loadProfile(ctx context.Context, p Principal) (*models.User, bool) {
	profile, err := r.profiles.Get(ctx, p.ID)
	if err == nil {
		return profile, false
	}

	degraded := !apperr.Is(err, apperr.KindNotFound)
	if degraded {
		r.log.Warn("profile lookup failed; using synthesized profile",
			zap.String("uid", p.ID),
			zap.Error(err))
	}

	name := p.DisplayName
	if name == "" {
		name = "User"
	}
	return &models.User{ID: p.ID, Name: name, Email: p.Email}, degraded
}

// resolvePayment walks the precedence chain: the team document wins,
// the payment log is only consulted when the team carries no paid
// signal. First "paid" short-circuits.
func (r *Resolver) resolvePayment(ctx context.Context, p Principal, profile *models.User) (string, bool) {
	status, found, err := r.teams.PaymentStatus(ctx, p.ID)
	if err != nil {
		r.log.Warn("team payment lookup failed; treating as pending",
			zap.String("uid", p.ID),
			zap.Error(err))
		return models.PaymentPending, true
	}
	if found && status == models.PaymentPaid {
		return models.PaymentPaid, false
	}

	email := p.Email
	if profile != nil && profile.Email != "" {
		email = profile.Email
	}

	paid, err := r.payments.HasPaid(ctx, email)
	if err != nil {
		r.log.Warn("payment log lookup failed; treating as pending",
			zap.String("email", email),
			zap.Error(err))
		return models.PaymentPending, true
	}
	if paid {
		return models.PaymentPaid, false
	}
	return models.PaymentPending, false
}
