// internal/app/features/notify/service.go

// Package notify fans notification email out to team members: workshop
// invitations carrying each member's QR entry ticket, and phase-2
// selection announcements for flagged teams.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/app/system/mailer"
	"github.com/vijayakumarjith/startupsp/internal/app/system/ticket"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
)

// maxParallelSends bounds concurrent SMTP connections per batch.
const maxParallelSends = 4

// Transport delivers one email. The SMTP mailer satisfies it.
type Transport interface {
	Send(e mailer.Email) error
}

// TeamStore is the slice of the team store the service needs.
type TeamStore interface {
	Get(ctx context.Context, teamID string) (models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	ListPhase2Selected(ctx context.Context) ([]models.Team, error)
}

// ScoreSource supplies the phase-1 score quoted in selection mail.
type ScoreSource interface {
	Get(ctx context.Context, teamID string) (models.Phase1Submission, error)
}

// EventInfo is the static event copy rendered into mail and tickets.
type EventInfo struct {
	Name         string
	WorkshopInfo string
}

// Report summarizes one fan-out batch. Per-member failures are counted
// here, not surfaced as the batch error.
type Report struct {
	SuccessCount int `json:"success_count"`
	FailCount    int `json:"fail_count"`
}

// Service runs the notification batches.
type Service struct {
	teams     TeamStore
	scores    ScoreSource
	transport Transport
	event     EventInfo
	log       *zap.Logger
}

// NewService wires a notify Service.
func NewService(teams TeamStore, scores ScoreSource, transport Transport, event EventInfo, logger *zap.Logger) *Service {
	return &Service{
		teams:     teams,
		scores:    scores,
		transport: transport,
		event:     event,
		log:       logger,
	}
}

// InviteTeam emails every member of one team their workshop invitation
// with a personal QR ticket attached. Members are isolated: one bounce
// does not stop the rest. Only when no member could be reached does
// the batch itself error.
func (s *Service) InviteTeam(ctx context.Context, teamID string) (Report, error) {
	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return Report{}, err
	}
	return s.sendBatch(team.Members, func(m models.Member) error {
		return s.sendInvite(team, m)
	})
}

// InviteAll runs the workshop invitation for every paid team and sums
// the per-team reports.
func (s *Service) InviteAll(ctx context.Context) (Report, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return Report{}, err
	}

	var total Report
	for _, team := range teams {
		if !team.IsPaid() {
			continue
		}
		report, err := s.sendBatch(team.Members, func(m models.Member) error {
			return s.sendInvite(team, m)
		})
		total.SuccessCount += report.SuccessCount
		total.FailCount += report.FailCount
		if err != nil {
			s.log.Warn("workshop invite batch unreachable",
				zap.String("team_id", team.ID),
				zap.Error(err))
		}
	}
	if total.SuccessCount == 0 && total.FailCount > 0 {
		return total, apperr.Transient("no invitation could be delivered", nil)
	}
	return total, nil
}

// AnnounceSelection emails the phase-2 congratulation to one flagged
// team. Unflagged teams are refused.
func (s *Service) AnnounceSelection(ctx context.Context, teamID string) (Report, error) {
	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return Report{}, err
	}
	if !team.Phase2Selected {
		return Report{}, apperr.Precondition("team is not selected for phase 2")
	}

	score := 0
	if sub, err := s.scores.Get(ctx, team.ID); err == nil && sub.Scored() {
		score = *sub.Points
	}
	return s.sendBatch(team.Members, func(m models.Member) error {
		return s.sendSelection(team, m, score)
	})
}

// AnnounceSelectionAll notifies every flagged team.
func (s *Service) AnnounceSelectionAll(ctx context.Context) (Report, error) {
	teams, err := s.teams.ListPhase2Selected(ctx)
	if err != nil {
		return Report{}, err
	}

	var total Report
	for _, team := range teams {
		score := 0
		if sub, err := s.scores.Get(ctx, team.ID); err == nil && sub.Scored() {
			score = *sub.Points
		}
		report, err := s.sendBatch(team.Members, func(m models.Member) error {
			return s.sendSelection(team, m, score)
		})
		total.SuccessCount += report.SuccessCount
		total.FailCount += report.FailCount
		if err != nil {
			s.log.Warn("selection mail batch unreachable",
				zap.String("team_id", team.ID),
				zap.Error(err))
		}
	}
	if total.SuccessCount == 0 && total.FailCount > 0 {
		return total, apperr.Transient("no selection mail could be delivered", nil)
	}
	return total, nil
}

// sendBatch runs send for each member with bounded parallelism and
// counts outcomes. It returns a transport error only when every single
// send failed.
func (s *Service) sendBatch(members []models.Member, send func(models.Member) error) (Report, error) {
	if len(members) == 0 {
		return Report{}, nil
	}

	var (
		wg  sync.WaitGroup
		sem = make(chan struct{}, maxParallelSends)
		mu  sync.Mutex
		rep Report
	)

	for _, member := range members {
		wg.Add(1)
		sem <- struct{}{}
		go func(m models.Member) {
			defer wg.Done()
			defer func() { <-sem }()

			err := send(m)
			mu.Lock()
			if err != nil {
				rep.FailCount++
			} else {
				rep.SuccessCount++
			}
			mu.Unlock()
			if err != nil {
				s.log.Warn("notification send failed",
					zap.String("member", m.Email),
					zap.Error(err))
			}
		}(member)
	}
	wg.Wait()

	if rep.SuccessCount == 0 && rep.FailCount > 0 {
		return rep, apperr.Transient("no recipient could be reached", nil)
	}
	return rep, nil
}

func (s *Service) sendInvite(team models.Team, member models.Member) error {
	att, err := ticket.Build(team, member, ticket.Details{
		EventName:    s.event.Name,
		WorkshopInfo: s.event.WorkshopInfo,
	})
	if err != nil {
		return err
	}

	email := mailer.BuildWorkshopInvite(mailer.WorkshopInviteData{
		EventName:    s.event.Name,
		MemberName:   member.Name,
		TeamName:     team.TeamName,
		WorkshopInfo: s.event.WorkshopInfo,
	})
	email.To = member.Email
	email.Attachments = []mailer.Attachment{att}
	return s.transport.Send(email)
}

func (s *Service) sendSelection(team models.Team, member models.Member, score int) error {
	email := mailer.BuildPhase2Selection(mailer.Phase2SelectionData{
		EventName:      s.event.Name,
		MemberName:     member.Name,
		TeamName:       team.TeamName,
		RegistrationID: team.RegistrationID,
		Score:          score,
	})
	email.To = member.Email
	return s.transport.Send(email)
}
