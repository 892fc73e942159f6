package submission

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"

	phase2 "github.com/vijayakumarjith/startupsp/internal/app/store/phase2"
	"github.com/vijayakumarjith/startupsp/internal/app/system/apperr"
	"github.com/vijayakumarjith/startupsp/internal/domain/models"
)

type fakePhase1 struct {
	created  []models.Phase1Submission
	existing map[string]models.Phase1Submission
	links    map[string]string
}

func newFakePhase1() *fakePhase1 {
	return &fakePhase1{
		existing: map[string]models.Phase1Submission{},
		links:    map[string]string{},
	}
}

func (f *fakePhase1) Create(_ context.Context, sub models.Phase1Submission) error {
	if _, ok := f.existing[sub.ID]; ok {
		return apperr.Conflict("pitch already submitted; only the video link can be updated")
	}
	f.existing[sub.ID] = sub
	f.created = append(f.created, sub)
	return nil
}

func (f *fakePhase1) Get(_ context.Context, teamID string) (models.Phase1Submission, error) {
	sub, ok := f.existing[teamID]
	if !ok {
		return models.Phase1Submission{}, apperr.NotFound("submission not found")
	}
	return sub, nil
}

func (f *fakePhase1) SetYouTubeLink(_ context.Context, teamID, link string, _ time.Time) error {
	if _, ok := f.existing[teamID]; !ok {
		return apperr.NotFound("submission not found")
	}
	f.links[teamID] = link
	return nil
}

type fakePhase2 struct {
	merged map[string]phase2.Fields
}

func newFakePhase2() *fakePhase2 {
	return &fakePhase2{merged: map[string]phase2.Fields{}}
}

func (f *fakePhase2) Merge(_ context.Context, teamID string, fields phase2.Fields, _ time.Time) error {
	f.merged[teamID] = fields
	return nil
}

func (f *fakePhase2) Get(_ context.Context, teamID string) (models.Phase2Submission, error) {
	fields, ok := f.merged[teamID]
	if !ok {
		return models.Phase2Submission{}, apperr.NotFound("submission not found")
	}
	return models.Phase2Submission{
		ID:              teamID,
		ProposalURL:     fields.ProposalURL,
		ProposalPath:    fields.ProposalPath,
		YouTubeVideoURL: fields.YouTubeVideoURL,
		Status:          "submitted",
	}, nil
}

type fakeTeams struct {
	teams map[string]models.Team
}

func (f *fakeTeams) Get(_ context.Context, teamID string) (models.Team, error) {
	t, ok := f.teams[teamID]
	if !ok {
		return models.Team{}, apperr.NotFound("team not found")
	}
	return t, nil
}

type fakeFiles struct {
	paths []string
	fail  bool
}

func (f *fakeFiles) Put(_ context.Context, path string, _ io.Reader, _ *storage.PutOptions) error {
	if f.fail {
		return errors.New("disk full")
	}
	f.paths = append(f.paths, path)
	return nil
}

func testService(p1 *fakePhase1, p2 *fakePhase2, teams *fakeTeams, files *fakeFiles, now time.Time) *Service {
	svc := NewService(p1, p2, teams, files, "/files/submissions", Deadlines{
		Phase1: now.Add(24 * time.Hour),
		Phase2: now.Add(72 * time.Hour),
	}, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func validInput() Phase1Input {
	return Phase1Input{
		TeamName:           "Rocket",
		CollegeName:        "State Engineering College",
		WhatsappNumber:     "9000000000",
		ProductDescription: "A widget",
		Solution:           "It solves widgets",
	}
}

func validDeck() *Upload {
	return &Upload{
		Filename:    "pitch.pptx",
		ContentType: "application/vnd.openxmlformats-officedocument.presentationml.presentation",
		Size:        1024,
		Reader:      strings.NewReader("deck-bytes"),
	}
}

func TestSubmitPhase1(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	p1 := newFakePhase1()
	files := &fakeFiles{}
	svc := testService(p1, newFakePhase2(), &fakeTeams{}, files, now)

	sub, err := svc.SubmitPhase1(ctx, "team-1", validInput(), validDeck())
	if err != nil {
		t.Fatalf("SubmitPhase1 failed: %v", err)
	}

	if sub.ID != "team-1" {
		t.Errorf("ID: got %q", sub.ID)
	}
	if len(files.paths) != 1 || files.paths[0] != "phase1/team-1_pitch.pptx" {
		t.Errorf("upload path: got %v", files.paths)
	}
	if sub.FilePath != "phase1/team-1_pitch.pptx" {
		t.Errorf("FilePath: got %q", sub.FilePath)
	}
	if sub.FileURL != "/files/submissions/phase1/team-1_pitch.pptx" {
		t.Errorf("FileURL: got %q", sub.FileURL)
	}
}

func TestSubmitPhase1_SecondAttemptConflicts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	svc := testService(newFakePhase1(), newFakePhase2(), &fakeTeams{}, &fakeFiles{}, now)

	if _, err := svc.SubmitPhase1(ctx, "team-1", validInput(), validDeck()); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	_, err := svc.SubmitPhase1(ctx, "team-1", validInput(), validDeck())
	if !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("second submit: got %v, want conflict", err)
	}
}

func TestSubmitPhase1_MissingFields(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	svc := testService(newFakePhase1(), newFakePhase2(), &fakeTeams{}, &fakeFiles{}, now)

	mutations := []struct {
		name   string
		mutate func(*Phase1Input)
	}{
		{"team name", func(in *Phase1Input) { in.TeamName = " " }},
		{"college", func(in *Phase1Input) { in.CollegeName = "" }},
		{"whatsapp", func(in *Phase1Input) { in.WhatsappNumber = "" }},
		{"description", func(in *Phase1Input) { in.ProductDescription = "" }},
		{"solution", func(in *Phase1Input) { in.Solution = "" }},
	}
	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			in := validInput()
			m.mutate(&in)
			_, err := svc.SubmitPhase1(ctx, "team-1", in, validDeck())
			if !apperr.Is(err, apperr.KindValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}

	if _, err := svc.SubmitPhase1(ctx, "team-1", validInput(), nil); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("missing deck: got %v, want validation error", err)
	}
}

func TestSubmitPhase1_RejectsWrongFileType(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	svc := testService(newFakePhase1(), newFakePhase2(), &fakeTeams{}, &fakeFiles{}, now)

	deck := &Upload{
		Filename:    "pitch.exe",
		ContentType: "application/octet-stream",
		Size:        1024,
		Reader:      strings.NewReader("nope"),
	}
	_, err := svc.SubmitPhase1(ctx, "team-1", validInput(), deck)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestSubmitPhase1_UploadFailureWritesNoMetadata(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	p1 := newFakePhase1()
	svc := testService(p1, newFakePhase2(), &fakeTeams{}, &fakeFiles{fail: true}, now)

	_, err := svc.SubmitPhase1(ctx, "team-1", validInput(), validDeck())
	if !apperr.Is(err, apperr.KindTransient) {
		t.Errorf("got %v, want transient error", err)
	}
	if len(p1.created) != 0 {
		t.Error("submission metadata written despite upload failure")
	}
}

func TestSubmitPhase1_AfterDeadline(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	svc := testService(newFakePhase1(), newFakePhase2(), &fakeTeams{}, &fakeFiles{}, now)
	svc.now = func() time.Time { return now.Add(48 * time.Hour) }

	_, err := svc.SubmitPhase1(ctx, "team-1", validInput(), validDeck())
	if !apperr.Is(err, apperr.KindPrecondition) {
		t.Errorf("got %v, want precondition error", err)
	}
}

func TestUpdateVideoLink(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	p1 := newFakePhase1()
	svc := testService(p1, newFakePhase2(), &fakeTeams{}, &fakeFiles{}, now)

	if _, err := svc.SubmitPhase1(ctx, "team-1", validInput(), validDeck()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := svc.UpdateVideoLink(ctx, "team-1", "https://youtu.be/abc123"); err != nil {
		t.Fatalf("UpdateVideoLink failed: %v", err)
	}
	if p1.links["team-1"] != "https://youtu.be/abc123" {
		t.Errorf("link not stored: %v", p1.links)
	}
}

func TestUpdateVideoLink_Empty(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	svc := testService(newFakePhase1(), newFakePhase2(), &fakeTeams{}, &fakeFiles{}, now)

	err := svc.UpdateVideoLink(ctx, "team-1", "  ")
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
	if !strings.Contains(err.Error(), "provide video link") {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestUpdateVideoLink_AfterDeadline(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	svc := testService(newFakePhase1(), newFakePhase2(), &fakeTeams{}, &fakeFiles{}, now)
	svc.now = func() time.Time { return now.Add(48 * time.Hour) }

	err := svc.UpdateVideoLink(ctx, "team-1", "https://youtu.be/abc123")
	if !apperr.Is(err, apperr.KindPrecondition) {
		t.Errorf("got %v, want precondition error", err)
	}
}

func TestSubmitPhase2(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	p2 := newFakePhase2()
	teams := &fakeTeams{teams: map[string]models.Team{
		"team-1": {ID: "team-1", Phase2Selected: true},
	}}
	files := &fakeFiles{}
	svc := testService(newFakePhase1(), p2, teams, files, now)

	proposal := &Upload{
		Filename:    "proposal.pdf",
		ContentType: "application/pdf",
		Size:        2048,
		Reader:      strings.NewReader("pdf-bytes"),
	}
	sub, err := svc.SubmitPhase2(ctx, "team-1", Phase2Input{YouTubeVideoURL: "https://youtu.be/xyz"}, proposal)
	if err != nil {
		t.Fatalf("SubmitPhase2 failed: %v", err)
	}

	if sub.ProposalPath != "phase2/team-1_proposal.pdf" {
		t.Errorf("ProposalPath: got %q", sub.ProposalPath)
	}
	if sub.YouTubeVideoURL != "https://youtu.be/xyz" {
		t.Errorf("YouTubeVideoURL: got %q", sub.YouTubeVideoURL)
	}
}

func TestSubmitPhase2_NotSelected(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	teams := &fakeTeams{teams: map[string]models.Team{
		"team-1": {ID: "team-1", Phase2Selected: false},
	}}
	svc := testService(newFakePhase1(), newFakePhase2(), teams, &fakeFiles{}, now)

	_, err := svc.SubmitPhase2(ctx, "team-1", Phase2Input{YouTubeVideoURL: "https://youtu.be/xyz"}, nil)
	if !apperr.Is(err, apperr.KindPrecondition) {
		t.Errorf("got %v, want precondition error", err)
	}
}

func TestSubmitPhase2_AfterDeadline(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	teams := &fakeTeams{teams: map[string]models.Team{
		"team-1": {ID: "team-1", Phase2Selected: true},
	}}
	svc := testService(newFakePhase1(), newFakePhase2(), teams, &fakeFiles{}, now)
	svc.now = func() time.Time { return now.Add(100 * time.Hour) }

	_, err := svc.SubmitPhase2(ctx, "team-1", Phase2Input{YouTubeVideoURL: "https://youtu.be/xyz"}, nil)
	if !apperr.Is(err, apperr.KindPrecondition) {
		t.Errorf("got %v, want precondition error", err)
	}
}

func TestDeadlineInstantIsClosed(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	teams := &fakeTeams{teams: map[string]models.Team{
		"team-1": {ID: "team-1", Phase2Selected: true},
	}}
	svc := testService(newFakePhase1(), newFakePhase2(), teams, &fakeFiles{}, now)

	// testService sets phase 1 at now+24h and phase 2 at now+72h; pin
	// the clock to each exact instant.
	svc.now = func() time.Time { return now.Add(24 * time.Hour) }
	if _, err := svc.SubmitPhase1(ctx, "team-1", validInput(), validDeck()); !apperr.Is(err, apperr.KindPrecondition) {
		t.Errorf("SubmitPhase1 at the deadline instant: got %v, want precondition error", err)
	}
	if err := svc.UpdateVideoLink(ctx, "team-1", "https://youtu.be/abc123"); !apperr.Is(err, apperr.KindPrecondition) {
		t.Errorf("UpdateVideoLink at the deadline instant: got %v, want precondition error", err)
	}

	svc.now = func() time.Time { return now.Add(72 * time.Hour) }
	if _, err := svc.SubmitPhase2(ctx, "team-1", Phase2Input{YouTubeVideoURL: "https://youtu.be/xyz"}, nil); !apperr.Is(err, apperr.KindPrecondition) {
		t.Errorf("SubmitPhase2 at the deadline instant: got %v, want precondition error", err)
	}
}

func TestSubmitPhase2_MergePreservesOmittedFields(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	p2 := newFakePhase2()
	teams := &fakeTeams{teams: map[string]models.Team{
		"team-1": {ID: "team-1", Phase2Selected: true},
	}}
	svc := testService(newFakePhase1(), p2, teams, &fakeFiles{}, now)

	_, err := svc.SubmitPhase2(ctx, "team-1", Phase2Input{YouTubeVideoURL: "https://youtu.be/first"}, nil)
	if err != nil {
		t.Fatalf("SubmitPhase2 failed: %v", err)
	}

	// A later proposal-only submission must not carry an empty video URL
	// into the merge.
	proposal := &Upload{
		Filename:    "proposal.pdf",
		ContentType: "application/pdf",
		Size:        2048,
		Reader:      strings.NewReader("pdf-bytes"),
	}
	_, err = svc.SubmitPhase2(ctx, "team-1", Phase2Input{}, proposal)
	if err != nil {
		t.Fatalf("second SubmitPhase2 failed: %v", err)
	}
	if got := p2.merged["team-1"]; got.YouTubeVideoURL != "" {
		t.Errorf("merge fields carried video URL %q; empty fields must be omitted", got.YouTubeVideoURL)
	}
}

func TestSubmitPhase2_NothingProvided(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	teams := &fakeTeams{teams: map[string]models.Team{
		"team-1": {ID: "team-1", Phase2Selected: true},
	}}
	svc := testService(newFakePhase1(), newFakePhase2(), teams, &fakeFiles{}, now)

	_, err := svc.SubmitPhase2(ctx, "team-1", Phase2Input{}, nil)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestDeadlineStatus(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	svc := testService(newFakePhase1(), newFakePhase2(), &fakeTeams{}, &fakeFiles{}, now)

	p1, p2 := svc.DeadlineStatus()
	if !p1.Open || !p2.Open {
		t.Errorf("both windows should be open: %+v %+v", p1, p2)
	}

	svc.now = func() time.Time { return now.Add(200 * time.Hour) }
	p1, p2 = svc.DeadlineStatus()
	if p1.Open || p2.Open {
		t.Error("both windows should be closed")
	}
	if p1.Remaining != "Submission Closed" {
		t.Errorf("Remaining: got %q", p1.Remaining)
	}
}

type fakeWindow string

func (f fakeWindow) Current() string { return string(f) }

func TestDeadlineStatus_UsesLiveWindows(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	svc := testService(newFakePhase1(), newFakePhase2(), &fakeTeams{}, &fakeFiles{}, now)
	svc.UseWindows(fakeWindow("23h 59m 59s"), fakeWindow("2d 23h 59m 59s"))

	p1, p2 := svc.DeadlineStatus()
	if p1.Remaining != "23h 59m 59s" {
		t.Errorf("phase 1 Remaining: got %q, want the ticker value", p1.Remaining)
	}
	if p2.Remaining != "2d 23h 59m 59s" {
		t.Errorf("phase 2 Remaining: got %q, want the ticker value", p2.Remaining)
	}
	if !p1.Open || !p2.Open {
		t.Errorf("Open must still follow the clock: %+v %+v", p1, p2)
	}
}
