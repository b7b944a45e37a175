package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/roster-engine/internal/domain/player"
	"github.com/riskibarqy/roster-engine/internal/domain/roster"
	"github.com/riskibarqy/roster-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/roster-engine/internal/platform/logging"
	"github.com/riskibarqy/roster-engine/internal/usecase"
)

const testJobToken = "test-job-token"

type stubFeed struct {
	updates []player.PriceUpdate
}

func (f stubFeed) FetchPrices(context.Context) ([]player.PriceUpdate, error) {
	return f.updates, nil
}

func newTestRouter(deadline roster.DeadlinePolicy) http.Handler {
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	rosterRepo := memory.NewRosterRepository(memory.SeedRosters())

	rosterService := usecase.NewRosterService(teamRepo, playerRepo, rosterRepo, roster.DefaultRules(), deadline)
	playerService := usecase.NewPlayerService(playerRepo)
	teamService := usecase.NewTeamService(teamRepo, rosterRepo)
	priceSyncService := usecase.NewPriceSyncService(
		stubFeed{updates: []player.PriceUpdate{{PlayerID: "pl-fwd-01", Price: 120}}},
		playerRepo,
		logging.NewNop(),
		2,
	)

	handler := NewHandler(rosterService, playerService, teamService, priceSyncService, logging.NewNop())
	return NewRouter(handler, logging.NewNop(), []string{"*"}, testJobToken)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string, header map[string]string) (*httptest.ResponseRecorder, googleResponseEnvelope) {
	t.Helper()

	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reqBody)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response envelope: %v body=%s", err, rec.Body.String())
	}

	return rec, envelope
}

func errorReason(t *testing.T, envelope googleResponseEnvelope) string {
	t.Helper()
	if envelope.Error == nil || len(envelope.Error.Errors) == 0 {
		t.Fatalf("expected error envelope, got %+v", envelope)
	}
	return envelope.Error.Errors[0].Reason
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(roster.DeadlinePolicy{})

	rec, envelope := doRequest(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if envelope.Error != nil {
		t.Fatalf("unexpected error: %+v", envelope.Error)
	}
}

func TestGetRosterEndpoint(t *testing.T) {
	router := newTestRouter(roster.DeadlinePolicy{})

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/teams/team-demo/roster", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	data, _ := envelope.Data.(map[string]any)
	if got := data["squad_value"].(float64); got != 995 {
		t.Fatalf("unexpected squad value: %v", got)
	}
	if got := data["budget_remaining"].(float64); got != 5 {
		t.Fatalf("unexpected budget remaining: %v", got)
	}
}

func TestReplacePlayerEndpoint_ExactFit(t *testing.T) {
	router := newTestRouter(roster.DeadlinePolicy{})

	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/teams/team-demo/roster/replace",
		`{"entry_id": "slot-04", "new_player_id": "pl-def-07"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	data, _ := envelope.Data.(map[string]any)
	if got := data["budget_remaining"].(float64); got != 0 {
		t.Fatalf("expected zero budget remaining, got %v", got)
	}
}

func TestReplacePlayerEndpoint_BudgetExceeded(t *testing.T) {
	router := newTestRouter(roster.DeadlinePolicy{})

	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/teams/team-demo/roster/replace",
		`{"entry_id": "slot-04", "new_player_id": "pl-def-06"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	if got := errorReason(t, envelope); got != "budgetExceeded" {
		t.Fatalf("unexpected reason: %s", got)
	}
}

func TestReplacePlayerEndpoint_DeadlinePassed(t *testing.T) {
	router := newTestRouter(roster.DeadlinePolicy{Deadline: time.Now().Add(-time.Hour)})

	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/teams/team-demo/roster/replace",
		`{"entry_id": "slot-04", "new_player_id": "pl-def-07"}`, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	if got := errorReason(t, envelope); got != "deadlinePassed" {
		t.Fatalf("unexpected reason: %s", got)
	}
}

func TestReplacePlayerEndpoint_UnknownFieldRejected(t *testing.T) {
	router := newTestRouter(roster.DeadlinePolicy{})

	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/teams/team-demo/roster/replace",
		`{"entry_id": "slot-04", "new_player_id": "pl-def-07", "bogus": true}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	if got := errorReason(t, envelope); got != "invalidInput" {
		t.Fatalf("unexpected reason: %s", got)
	}
}

func TestSetViceCaptainEndpoint_RoleConflict(t *testing.T) {
	router := newTestRouter(roster.DeadlinePolicy{})

	rec, envelope := doRequest(t, router, http.MethodPut, "/v1/teams/team-demo/roster/vice-captain",
		`{"entry_id": "slot-06"}`, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	if got := errorReason(t, envelope); got != "captainRoleConflict" {
		t.Fatalf("unexpected reason: %s", got)
	}
}

func TestSetCaptainEndpoint_MovesRole(t *testing.T) {
	router := newTestRouter(roster.DeadlinePolicy{})

	rec, envelope := doRequest(t, router, http.MethodPut, "/v1/teams/team-demo/roster/captain",
		`{"entry_id": "slot-07"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	data, _ := envelope.Data.(map[string]any)
	entries, _ := data["entries"].([]any)
	captains := 0
	for _, raw := range entries {
		entry, _ := raw.(map[string]any)
		if entry["is_captain"] == true {
			captains++
			if entry["id"] != "slot-07" {
				t.Fatalf("captaincy on wrong entry: %v", entry["id"])
			}
		}
	}
	if captains != 1 {
		t.Fatalf("expected exactly one captain, got %d", captains)
	}
}

func TestPriceSyncJobEndpoint_RequiresToken(t *testing.T) {
	router := newTestRouter(roster.DeadlinePolicy{})

	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/price-sync", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if got := errorReason(t, envelope); got != "unauthorized" {
		t.Fatalf("unexpected reason: %s", got)
	}
}

func TestPriceSyncJobEndpoint_RunsWithToken(t *testing.T) {
	router := newTestRouter(roster.DeadlinePolicy{})

	rec, envelope := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/price-sync", "",
		map[string]string{"X-Internal-Job-Token": testJobToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	data, _ := envelope.Data.(map[string]any)
	if got := data["applied"].(float64); got != 1 {
		t.Fatalf("unexpected applied count: %v", got)
	}
}

func TestListPlayersEndpoint(t *testing.T) {
	router := newTestRouter(roster.DeadlinePolicy{})

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/players", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	items, _ := envelope.Data.([]any)
	if len(items) != len(memory.SeedPlayers()) {
		t.Fatalf("unexpected player count: %d", len(items))
	}
}

func TestGetTeamSummaryEndpoint(t *testing.T) {
	router := newTestRouter(roster.DeadlinePolicy{})

	rec, envelope := doRequest(t, router, http.MethodGet, "/v1/teams/team-demo", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	data, _ := envelope.Data.(map[string]any)
	if data["captain_player_id"] != "pl-mid-01" {
		t.Fatalf("unexpected captain: %v", data["captain_player_id"])
	}
}
