package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vijayakumarjith/startupsp/internal/domain/models"
)

func inviteRequest(teamID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/workshop/"+teamID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("teamID", teamID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestInviteTeamHandler_AllFailStillReportsCounts(t *testing.T) {
	teams := &fakeTeams{teams: map[string]models.Team{"team-1": threeMemberTeam(false)}}
	transport := &fakeTransport{failTo: map[string]bool{
		"asha@test.com":   true,
		"ben@test.com":    true,
		"chitra@test.com": true,
	}}
	h := NewHandler(testService(teams, nil, transport), zap.NewNop())

	rec := httptest.NewRecorder()
	h.InviteTeam(rec, inviteRequest("team-1"))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want 502", rec.Code)
	}

	var body batchError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Error == "" {
		t.Error("error message missing from batch failure body")
	}
	if body.SuccessCount != 0 || body.FailCount != 3 {
		t.Errorf("counts: got {%d %d}, want {0 3}", body.SuccessCount, body.FailCount)
	}
}

func TestInviteTeamHandler_PartialFailure(t *testing.T) {
	teams := &fakeTeams{teams: map[string]models.Team{"team-1": threeMemberTeam(false)}}
	transport := &fakeTransport{failTo: map[string]bool{"ben@test.com": true}}
	h := NewHandler(testService(teams, nil, transport), zap.NewNop())

	rec := httptest.NewRecorder()
	h.InviteTeam(rec, inviteRequest("team-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var report Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if report.SuccessCount != 2 || report.FailCount != 1 {
		t.Errorf("report: got %+v, want {2 1}", report)
	}
}
