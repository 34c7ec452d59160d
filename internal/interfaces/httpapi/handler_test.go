package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/VeselinMar/TournamentManager/internal/domain/user"
	"github.com/VeselinMar/TournamentManager/internal/infrastructure/repository/memory"
	idgen "github.com/VeselinMar/TournamentManager/internal/platform/id"
	"github.com/VeselinMar/TournamentManager/internal/platform/logging"
	"github.com/VeselinMar/TournamentManager/internal/platform/resilience"
	"github.com/VeselinMar/TournamentManager/internal/usecase"
	"github.com/stretchr/testify/require"
)

type stubVerifier map[string]user.Principal

func (s stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	p, ok := s[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return p, nil
}

type envelope struct {
	APIVersion string `json:"apiVersion"`
	Data       any    `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
	} `json:"error"`
}

type apiClient struct {
	t       *testing.T
	handler http.Handler
}

func newTestAPI(t *testing.T) *apiClient {
	t.Helper()

	store := memory.NewStore()
	tournaments := memory.NewTournamentRepository(store)
	teams := memory.NewTeamRepository(store)
	players := memory.NewPlayerRepository(store)
	fields := memory.NewFieldRepository(store)
	matches := memory.NewMatchRepository(store)
	events := memory.NewEventRepository(store)
	ledgerRepo := memory.NewLedgerRepository(store)
	rosterRepo := memory.NewRosterRepository(store)

	ids := idgen.NewUUIDGenerator()
	locks := &resilience.KeyedMutex{}
	logger := logging.NewNop()

	standingsService := usecase.NewStandingsService(tournaments, teams, players, matches, events, usecase.StandingsOptions{}, logger)
	services := Services{
		Tournaments: usecase.NewTournamentService(tournaments, standingsService, ids, 2, logger),
		Standings:   standingsService,
		Roster:      usecase.NewRosterService(tournaments, teams, players, fields, matches, rosterRepo, standingsService, locks, ids, logger),
		Matches:     usecase.NewMatchService(tournaments, teams, players, fields, matches, events, standingsService, locks, ids, logger),
		Ledger:      usecase.NewLedgerService(tournaments, teams, players, matches, events, ledgerRepo, standingsService, nil, locks, ids, logger),
		Schedule:    usecase.NewScheduleService(tournaments, teams, fields, matches, standingsService, nil, locks, ids, logger),
	}

	verifier := stubVerifier{
		"owner-token":    {UserID: "owner-1", Email: "owner@example.com"},
		"stranger-token": {UserID: "stranger-1"},
	}
	router := NewRouter(NewHandler(services, nil, nil, logger), verifier, logger, true, []string{"*"})

	return &apiClient{t: t, handler: router}
}

func (c *apiClient) do(method, path, token string, body any) (int, envelope) {
	c.t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = sonic.Marshal(body)
		require.NoError(c.t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	var out envelope
	if rec.Code != http.StatusNoContent {
		require.NoError(c.t, sonic.Unmarshal(rec.Body.Bytes(), &out), "body=%s", rec.Body.String())
	}
	return rec.Code, out
}

func (c *apiClient) mustCreate(path, token string, body any) map[string]any {
	c.t.Helper()

	code, out := c.do(http.MethodPost, path, token, body)
	require.Equal(c.t, http.StatusCreated, code, "POST %s error=%+v", path, out.Error)
	data, ok := out.Data.(map[string]any)
	require.True(c.t, ok, "POST %s data=%T", path, out.Data)
	return data
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(t)

	code, out := api.do(http.MethodGet, "/healthz", "", nil)
	if code != http.StatusOK {
		t.Fatalf("unexpected status got=%d want=%d", code, http.StatusOK)
	}
	if out.APIVersion != "2.0" {
		t.Fatalf("unexpected apiVersion got=%q", out.APIVersion)
	}
}

func TestCreateTournament_RequiresBearerToken(t *testing.T) {
	api := newTestAPI(t)

	code, out := api.do(http.MethodPost, "/v1/tournaments", "", map[string]any{"name": "Spring Cup"})
	require.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, out.Error)
	require.Equal(t, "UNAUTHENTICATED", out.Error.Status)

	code, _ = api.do(http.MethodPost, "/v1/tournaments", "bogus", map[string]any{"name": "Spring Cup"})
	require.Equal(t, http.StatusUnauthorized, code)
}

func TestCreateTournament_ValidatesPayload(t *testing.T) {
	api := newTestAPI(t)

	code, out := api.do(http.MethodPost, "/v1/tournaments", "owner-token", map[string]any{"title": "x"})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "INVALID_ARGUMENT", out.Error.Status)
}

func TestTournamentLifecycle(t *testing.T) {
	api := newTestAPI(t)

	created := api.mustCreate("/v1/tournaments", "owner-token", map[string]any{"name": "Spring Cup"})
	require.Equal(t, "spring-cup", created["slug"])

	second := api.mustCreate("/v1/tournaments", "owner-token", map[string]any{"name": "Spring  Cup!"})
	require.Equal(t, "spring-cup-2", second["slug"])

	base := "/v1/tournaments/spring-cup"
	lions := api.mustCreate(base+"/teams", "owner-token", map[string]any{"name": "Lions"})
	tigers := api.mustCreate(base+"/teams", "owner-token", map[string]any{"name": "Tigers"})

	code, out := api.do(http.MethodPost, base+"/teams", "owner-token", map[string]any{"name": "lions"})
	require.Equal(t, http.StatusConflict, code)
	require.Equal(t, "ALREADY_EXISTS", out.Error.Status)

	code, out = api.do(http.MethodPost, base+"/teams", "stranger-token", map[string]any{"name": "Bears"})
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, "PERMISSION_DENIED", out.Error.Status)

	ana := api.mustCreate(fmt.Sprintf("%s/teams/%s/players", base, lions["id"]), "owner-token", map[string]any{"name": "Ana Petrova"})
	api.mustCreate(fmt.Sprintf("%s/teams/%s/players", base, tigers["id"]), "owner-token", map[string]any{"name": "Bo"})
	api.mustCreate(base+"/fields", "owner-token", map[string]any{"name": "Field A"})

	schedule := api.mustCreate(base+"/schedule", "owner-token", map[string]any{
		"startTime":            "2026-05-01T09:00:00Z",
		"gameDurationMinutes":  20,
		"pauseDurationMinutes": 5,
	})
	scheduled, ok := schedule["matches"].([]any)
	require.True(t, ok)
	require.Len(t, scheduled, 1)
	matchID := scheduled[0].(map[string]any)["id"].(string)

	// Ana plays for the home side only if the round robin put Lions at home.
	code, out = api.do(http.MethodGet, base+"/matches/"+matchID, "", nil)
	require.Equal(t, http.StatusOK, code)
	view := out.Data.(map[string]any)
	side := "away"
	if view["homeTeam"].(map[string]any)["id"] == lions["id"] {
		side = "home"
	}

	result := api.mustCreate(fmt.Sprintf("%s/matches/%s/events", base, matchID), "owner-token", map[string]any{
		"type":     "goal",
		"teamSide": side,
		"playerId": ana["id"],
		"minute":   23,
	})
	event := result["event"].(map[string]any)
	require.Equal(t, "goal", event["type"])
	require.Contains(t, event["summary"], "Ana Petrova")

	code, out = api.do(http.MethodPost, fmt.Sprintf("%s/matches/%s/events", base, matchID), "owner-token", map[string]any{
		"type":               "substitution",
		"teamSide":           side,
		"playerId":           ana["id"],
		"substitutePlayerId": ana["id"],
		"minute":             40,
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "INVALID_ARGUMENT", out.Error.Status)

	code, out = api.do(http.MethodPost, fmt.Sprintf("%s/matches/%s/finish", base, matchID), "owner-token", nil)
	require.Equal(t, http.StatusOK, code, "finish error=%+v", out.Error)
	require.Equal(t, true, out.Data.(map[string]any)["isFinished"])

	code, out = api.do(http.MethodGet, base+"/standings?top=3", "", nil)
	require.Equal(t, http.StatusOK, code)
	table := out.Data.(map[string]any)
	rows := table["teams"].([]any)
	require.Len(t, rows, 2)
	leader := rows[0].(map[string]any)
	require.Equal(t, "Lions", leader["teamName"])
	require.EqualValues(t, 3, leader["tournamentPoints"])
	require.EqualValues(t, 1, leader["matchPoints"])
	scorers := table["topScorers"].([]any)
	require.Len(t, scorers, 1)
	require.Equal(t, "Ana Petrova", scorers[0].(map[string]any)["name"])

	code, out = api.do(http.MethodGet, "/v1/me/tournaments", "owner-token", nil)
	require.Equal(t, http.StatusOK, code)
	mine := out.Data.([]any)
	require.Len(t, mine, 2)
	require.Equal(t, true, mine[0].(map[string]any)["isActive"])

	code, out = api.do(http.MethodDelete, fmt.Sprintf("%s/events/%s", base, event["id"]), "owner-token", nil)
	require.Equal(t, http.StatusOK, code, "delete error=%+v", out.Error)
	require.EqualValues(t, 0, out.Data.(map[string]any)["homeScore"])

	code, out = api.do(http.MethodGet, base+"/standings", "", nil)
	require.Equal(t, http.StatusOK, code)
	for _, row := range out.Data.(map[string]any)["teams"].([]any) {
		require.EqualValues(t, 1, row.(map[string]any)["tournamentPoints"], "draw after the only goal is withdrawn")
	}
}

func TestGetStandings_RejectsBadTop(t *testing.T) {
	api := newTestAPI(t)
	api.mustCreate("/v1/tournaments", "owner-token", map[string]any{"name": "Cup"})

	code, out := api.do(http.MethodGet, "/v1/tournaments/cup/standings?top=-1", "", nil)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "INVALID_ARGUMENT", out.Error.Status)
}

func TestUnknownTournament_NotFound(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{
		"/v1/tournaments/nope",
		"/v1/tournaments/nope/teams",
		"/v1/tournaments/nope/matches",
		"/v1/tournaments/nope/standings",
	} {
		code, out := api.do(http.MethodGet, path, "", nil)
		if code != http.StatusNotFound {
			t.Fatalf("GET %s status got=%d want=%d", path, code, http.StatusNotFound)
		}
		if out.Error == nil || out.Error.Status != "NOT_FOUND" {
			t.Fatalf("GET %s unexpected error body: %+v", path, out.Error)
		}
	}
}

func TestLive_DisabledFeed(t *testing.T) {
	api := newTestAPI(t)
	api.mustCreate("/v1/tournaments", "owner-token", map[string]any{"name": "Cup"})

	code, _ := api.do(http.MethodGet, "/v1/tournaments/cup/live", "", nil)
	require.Equal(t, http.StatusNotFound, code)
}

func TestImportRoster_ReportsSkippedLines(t *testing.T) {
	api := newTestAPI(t)
	api.mustCreate("/v1/tournaments", "owner-token", map[string]any{"name": "Cup"})

	code, out := api.do(http.MethodPost, "/v1/tournaments/cup/roster", "owner-token", map[string]any{
		"text": "-orphan\nLions\n-Ana\n-Bea\n\nTigers\n-Cid\nnot a line",
	})
	require.Equal(t, http.StatusOK, code, "error=%+v", out.Error)
	data := out.Data.(map[string]any)
	require.EqualValues(t, 2, data["createdTeams"])
	require.EqualValues(t, 3, data["createdPlayers"])
	require.Len(t, data["skipped"].([]any), 2)
}
