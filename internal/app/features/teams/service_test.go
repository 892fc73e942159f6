package teams

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
)

type fakeStore struct {
	teams map[string]models.Team
}

func newFakeStore() *fakeStore {
	return &fakeStore{teams: map[string]models.Team{}}
}

func (f *fakeStore) Get(_ context.Context, id string) (models.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return models.Team{}, apperr.NotFound("team not found")
	}
	return t, nil
}

func (f *fakeStore) Save(_ context.Context, team models.Team) error {
	if existing, ok := f.teams[team.ID]; ok {
		team.PaymentStatus = existing.PaymentStatus
		team.Phase2Selected = existing.Phase2Selected
	} else {
		team.PaymentStatus = models.PaymentPending
	}
	f.teams[team.ID] = team
	return nil
}

func (f *fakeStore) MarkPaid(_ context.Context, id string) error {
	t, ok := f.teams[id]
	if !ok {
		return apperr.NotFound("team not found")
	}
	t.PaymentStatus = models.PaymentPaid
	f.teams[id] = t
	return nil
}

func (f *fakeStore) SetPhase2Selected(_ context.Context, id string, selected bool) error {
	t, ok := f.teams[id]
	if !ok {
		return apperr.NotFound("team not found")
	}
	t.Phase2Selected = selected
	f.teams[id] = t
	return nil
}

func (f *fakeStore) List(_ context.Context) ([]models.Team, error) {
	out := make([]models.Team, 0, len(f.teams))
	for _, t := range f.teams {
		out = append(out, t)
	}
	return out, nil
}

func validInput() RegisterInput {
	return RegisterInput{
		TeamName:    "Rocket",
		CollegeName: "State Engineering College",
		Members: []models.Member{
			{Name: "Asha", Email: "Asha@Test.com", Phone: "9000000001"},
			{Name: "Ben", Email: "ben@test.com", Phone: "9000000002"},
		},
	}
}

func TestRegister_AssignsRegistrationIDOnce(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store, zap.NewNop())

	team, err := svc.Register(ctx, "uid-1", validInput())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !strings.HasPrefix(team.RegistrationID, "SS-") {
		t.Errorf("RegistrationID: got %q", team.RegistrationID)
	}
	first := team.RegistrationID

	in := validInput()
	in.TeamName = "Rocket Renamed"
	team, err = svc.Register(ctx, "uid-1", in)
	if err != nil {
		t.Fatalf("second Register failed: %v", err)
	}
	if team.RegistrationID != first {
		t.Errorf("RegistrationID changed on re-register: %q -> %q", first, team.RegistrationID)
	}
	if team.TeamName != "Rocket Renamed" {
		t.Errorf("TeamName: got %q", team.TeamName)
	}
}

func TestRegister_NormalizesMemberEmails(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store, zap.NewNop())

	team, err := svc.Register(ctx, "uid-1", validInput())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if team.Members[0].Email != "asha@test.com" {
		t.Errorf("lead email not lowercased: %q", team.Members[0].Email)
	}
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore(), zap.NewNop())

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"blank team name", func(in *RegisterInput) { in.TeamName = " " }},
		{"no members", func(in *RegisterInput) { in.Members = nil }},
		{"too many members", func(in *RegisterInput) {
			for i := 0; i < maxMembers; i++ {
				in.Members = append(in.Members, models.Member{Name: "X", Email: "x@test.com", Phone: "9"})
			}
		}},
		{"member without email", func(in *RegisterInput) { in.Members[0].Email = "" }},
		{"member with bad email", func(in *RegisterInput) { in.Members[0].Email = "not-an-email" }},
		{"member without phone", func(in *RegisterInput) { in.Members[1].Phone = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			if _, err := svc.Register(ctx, "uid-1", in); !apperr.Is(err, apperr.KindValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestRegister_CannotTouchAdminFields(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store, zap.NewNop())

	if _, err := svc.Register(ctx, "uid-1", validInput()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := svc.MarkPaid(ctx, "uid-1"); err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}
	if err := svc.SetSelection(ctx, "uid-1", true); err != nil {
		t.Fatalf("SetSelection failed: %v", err)
	}

	// Re-registering must not clear payment or selection.
	team, err := svc.Register(ctx, "uid-1", validInput())
	if err != nil {
		t.Fatalf("re-register failed: %v", err)
	}
	if !team.IsPaid() || !team.Phase2Selected {
		t.Errorf("admin-owned fields reset by re-register: %+v", team)
	}
}

func TestMarkPaid_UnknownTeam(t *testing.T) {
	svc := NewService(newFakeStore(), zap.NewNop())
	if err := svc.MarkPaid(context.Background(), "ghost"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("got %v, want not-found error", err)
	}
}
