// internal/app/features/teams/service.go

// Package teams handles team registration and the admin-side roster
// operations: marking payment received and flagging teams for phase 2.
package teams

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/app/system/normalize"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
)

// maxMembers caps the team roster.
const maxMembers = 6

// Store is the slice of the team store the service needs.
type Store interface {
	Get(ctx context.Context, id string) (models.Team, error)
	Save(ctx context.Context, team models.Team) error
	MarkPaid(ctx context.Context, id string) error
	SetPhase2Selected(ctx context.Context, id string, selected bool) error
	List(ctx context.Context) ([]models.Team, error)
}

// Service coordinates team writes.
type Service struct {
	store Store
	log   *zap.Logger
}

// NewService wires a teams Service.
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, log: logger}
}

// RegisterInput carries the participant-editable team fields. Member
// index 0 is the team lead.
type RegisterInput struct {
	TeamName       string          `json:"team_name"`
	CollegeName    string          `json:"college_name"`
	IsRegionalTeam bool            `json:"is_regional_team"`
	Members        []models.Member `json:"members"`
}

// Register creates or updates the caller's team. The registration ID
// is assigned once on first save and never changes; payment status and
// the selection flag are untouchable from here.
func (s *Service) Register(ctx context.Context, teamID string, in RegisterInput) (models.Team, error) {
	if err := validate(in); err != nil {
		return models.Team{}, err
	}

	team := models.Team{
		ID:             teamID,
		TeamName:       strings.TrimSpace(in.TeamName),
		CollegeName:    strings.TrimSpace(in.CollegeName),
		IsRegionalTeam: in.IsRegionalTeam,
		Members:        cleanMembers(in.Members),
	}

	existing, err := s.store.Get(ctx, teamID)
	switch {
	case err == nil:
		team.RegistrationID = existing.RegistrationID
	case apperr.Is(err, apperr.KindNotFound):
		team.RegistrationID = newRegistrationID()
	default:
		return models.Team{}, err
	}

	if err := s.store.Save(ctx, team); err != nil {
		return models.Team{}, err
	}

	s.log.Info("team registered",
		zap.String("team_id", teamID),
		zap.String("registration_id", team.RegistrationID),
		zap.Int("members", len(team.Members)))
	return s.store.Get(ctx, teamID)
}

// Get returns one team.
func (s *Service) Get(ctx context.Context, teamID string) (models.Team, error) {
	return s.store.Get(ctx, teamID)
}

// List returns the full roster for staff views.
func (s *Service) List(ctx context.Context) ([]models.Team, error) {
	return s.store.List(ctx)
}

// MarkPaid records that the team's fee was received. "paid" never
// reverts.
func (s *Service) MarkPaid(ctx context.Context, teamID string) error {
	if err := s.store.MarkPaid(ctx, teamID); err != nil {
		return err
	}
	s.log.Info("team marked paid", zap.String("team_id", teamID))
	return nil
}

// SetSelection flips the phase-2 selection flag.
func (s *Service) SetSelection(ctx context.Context, teamID string, selected bool) error {
	if err := s.store.SetPhase2Selected(ctx, teamID, selected); err != nil {
		return err
	}
	s.log.Info("phase-2 selection updated",
		zap.String("team_id", teamID),
		zap.Bool("selected", selected))
	return nil
}

func validate(in RegisterInput) error {
	if strings.TrimSpace(in.TeamName) == "" {
		return apperr.Validation("team name is required")
	}
	if len(in.Members) == 0 {
		return apperr.Validation("at least one member is required")
	}
	if len(in.Members) > maxMembers {
		return apperr.Validationf("at most %d members are allowed", maxMembers)
	}
	for i, m := range in.Members {
		if strings.TrimSpace(m.Name) == "" {
			return apperr.Validationf("member %d is missing a name", i+1)
		}
		email := normalize.Email(m.Email)
		if email == "" || !strings.Contains(email, "@") {
			return apperr.Validationf("member %d needs a valid email", i+1)
		}
		if strings.TrimSpace(m.Phone) == "" {
			return apperr.Validationf("member %d is missing a phone number", i+1)
		}
	}
	return nil
}

func cleanMembers(members []models.Member) []models.Member {
	out := make([]models.Member, len(members))
	for i, m := range members {
		out[i] = models.Member{
			Name:       normalize.Name(m.Name),
			Email:      normalize.Email(m.Email),
			Phone:      strings.TrimSpace(m.Phone),
			RollNumber: strings.TrimSpace(m.RollNumber),
			Department: strings.TrimSpace(m.Department),
			Year:       strings.TrimSpace(m.Year),
		}
	}
	return out
}

// newRegistrationID mints a short, human-readable registration id.
func newRegistrationID() string {
	return "SS-" + strings.ToUpper(uuid.New().String()[:8])
}
