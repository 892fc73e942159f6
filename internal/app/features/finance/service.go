// internal/app/features/finance/service.go

// Package finance serves the reconciliation view for the finance role:
// the team roster joined against the append-only payment log, plus a
// token-gated CSV export of the same data.
package finance

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/app/system/normalize"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
)

// TeamSource is the slice of the team store the service needs.
type TeamSource interface {
	List(ctx context.Context) ([]models.Team, error)
}

// PaymentLog reads the payment log.
type PaymentLog interface {
	List(ctx context.Context) ([]models.Payment, error)
}

// Service builds reconciliation views.
type Service struct {
	teams    TeamSource
	payments PaymentLog

	// exportTokenHash is the bcrypt hash of the CSV export token, or
	// empty when export is disabled.
	exportTokenHash string

	log *zap.Logger
}

// NewService wires a finance Service.
func NewService(teams TeamSource, payments PaymentLog, exportTokenHash string, logger *zap.Logger) *Service {
	return &Service{teams: teams, payments: payments, exportTokenHash: exportTokenHash, log: logger}
}

// Row is one team in the reconciliation view.
type Row struct {
	TeamID         string    `json:"team_id"`
	TeamName       string    `json:"team_name"`
	RegistrationID string    `json:"registration_id"`
	CollegeName    string    `json:"college_name"`
	LeadEmail      string    `json:"lead_email"`
	TeamStatus     string    `json:"team_status"`
	LogStatus      string    `json:"log_status"`
	Reference      string    `json:"reference,omitempty"`
	Amount         string    `json:"amount,omitempty"`
	RecordedAt     time.Time `json:"recorded_at,omitempty"`

	// Mismatch flags rows where the team document and the payment log
	// disagree about whether the fee was received.
	Mismatch bool `json:"mismatch"`
}

// Summary totals the reconciliation view.
type Summary struct {
	Teams      int `json:"teams"`
	Paid       int `json:"paid"`
	Pending    int `json:"pending"`
	Mismatches int `json:"mismatches"`
}

// Reconciliation is the finance dashboard payload.
type Reconciliation struct {
	Summary Summary `json:"summary"`
	Rows    []Row   `json:"rows"`
}

// Reconcile joins the roster with the payment log. The log is
// newest-first, so the first record seen for an email is the latest.
func (s *Service) Reconcile(ctx context.Context) (Reconciliation, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return Reconciliation{}, err
	}
	log, err := s.payments.List(ctx)
	if err != nil {
		return Reconciliation{}, err
	}

	latest := make(map[string]models.Payment, len(log))
	paidInLog := make(map[string]bool, len(log))
	for _, p := range log {
		email := normalize.Email(p.Email)
		if _, seen := latest[email]; !seen {
			latest[email] = p
		}
		if p.Status == models.PaymentPaid {
			paidInLog[email] = true
		}
	}

	rec := Reconciliation{Rows: make([]Row, 0, len(teams))}
	for _, team := range teams {
		leadMember, _ := team.Lead()
		lead := normalize.Email(leadMember.Email)
		row := Row{
			TeamID:         team.ID,
			TeamName:       team.TeamName,
			RegistrationID: team.RegistrationID,
			CollegeName:    team.CollegeName,
			LeadEmail:      lead,
			TeamStatus:     team.PaymentStatus,
		}
		if p, ok := latest[lead]; ok {
			row.LogStatus = p.Status
			row.Reference = p.Reference
			row.Amount = p.Amount
			row.RecordedAt = p.RecordedAt
		}
		row.Mismatch = team.IsPaid() != paidInLog[lead]

		rec.Summary.Teams++
		if team.IsPaid() {
			rec.Summary.Paid++
		} else {
			rec.Summary.Pending++
		}
		if row.Mismatch {
			rec.Summary.Mismatches++
		}
		rec.Rows = append(rec.Rows, row)
	}

	sort.Slice(rec.Rows, func(i, j int) bool {
		return rec.Rows[i].RegistrationID < rec.Rows[j].RegistrationID
	})
	return rec, nil
}

// CheckExportToken verifies the CSV export token against the configured
// bcrypt hash.
func (s *Service) CheckExportToken(token string) error {
	if s.exportTokenHash == "" {
		return apperr.Precondition("CSV export is not configured")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.exportTokenHash), []byte(token)); err != nil {
		return apperr.Validation("export token is not valid")
	}
	return nil
}
