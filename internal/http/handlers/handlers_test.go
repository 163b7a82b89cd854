package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appleague "github.com/preston-bernstein/league-sim-service/internal/app/league"
	"github.com/preston-bernstein/league-sim-service/internal/autopilot"
	"github.com/preston-bernstein/league-sim-service/internal/calendar"
	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/league-sim-service/internal/errs"
	"github.com/preston-bernstein/league-sim-service/internal/testutil"
)

func newHandler(t *testing.T, preload bool) (*Handler, *appleague.Service) {
	t.Helper()
	svc, _ := testutil.NewLeagueService(t, preload)
	return NewHandler(svc, nil, nil), svc
}

func serve(fn http.HandlerFunc, method, path string) *httptest.ResponseRecorder {
	return testutil.Serve(fn, method, path, nil)
}

func TestHealth(t *testing.T) {
	h, _ := newHandler(t, false)

	rr := serve(h.Health, http.MethodGet, "/health")
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}

	testutil.AssertStatus(t, serve(h.Health, http.MethodPost, "/health"), http.StatusMethodNotAllowed)
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h, _ := newHandler(t, false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req.WithContext(ctx))

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestReady(t *testing.T) {
	empty, _ := newHandler(t, false)
	testutil.AssertStatus(t, serve(empty.Ready, http.MethodGet, "/ready"), http.StatusServiceUnavailable)

	h, _ := newHandler(t, true)
	fixed := time.Date(2025, 9, 4, 12, 0, 0, 0, time.UTC)
	h.now = testutil.NowAt(fixed)
	rr := serve(h.Ready, http.MethodGet, "/ready")
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["checkedAt"] != "2025-09-04T12:00:00Z" {
		t.Fatalf("unexpected checkedAt %q", resp["checkedAt"])
	}

	h.statusFn = func() autopilot.Status {
		return autopilot.Status{ConsecutiveFailures: 3, LastError: "save failed"}
	}
	rr = serve(h.Ready, http.MethodGet, "/ready")
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var body errorBody
	testutil.DecodeJSON(t, rr, &body)
	if body.Error != "save failed" {
		t.Fatalf("expected autopilot error surfaced, got %q", body.Error)
	}
}

func TestLeagueSummaryAndFullSnapshot(t *testing.T) {
	h, _ := newHandler(t, true)

	rr := serve(h.League, http.MethodGet, "/league")
	testutil.AssertStatus(t, rr, http.StatusOK)
	var summary Summary
	testutil.DecodeJSON(t, rr, &summary)
	if summary.Teams != 32 || summary.UserTeamID != "det" || summary.GamesRemaining != 272 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.Calendar.Phase != calendar.PhasePreseason {
		t.Fatalf("expected preseason, got %s", summary.Calendar.Phase)
	}

	rr = serve(h.League, http.MethodGet, "/league?full=true")
	testutil.AssertStatus(t, rr, http.StatusOK)
	var full league.State
	testutil.DecodeJSON(t, rr, &full)
	if len(full.Schedule.Games) != 272 {
		t.Fatalf("expected full schedule, got %d games", len(full.Schedule.Games))
	}
}

func TestLeagueWithoutSnapshotIsConflict(t *testing.T) {
	h, _ := newHandler(t, false)

	rr := serve(h.League, http.MethodGet, "/league")
	testutil.AssertStatus(t, rr, http.StatusConflict)
	var body errorBody
	testutil.DecodeJSON(t, rr, &body)
	if body.Code != errs.CodeMissingDependency {
		t.Fatalf("expected missing dependency code, got %q", body.Code)
	}
}

func TestCalendarAndStandings(t *testing.T) {
	h, _ := newHandler(t, true)

	rr := serve(h.Calendar, http.MethodGet, "/calendar")
	testutil.AssertStatus(t, rr, http.StatusOK)
	var cal struct {
		Label string `json:"label"`
	}
	testutil.DecodeJSON(t, rr, &cal)
	if cal.Label == "" {
		t.Fatalf("expected calendar label")
	}

	rr = serve(h.Standings, http.MethodGet, "/standings")
	testutil.AssertStatus(t, rr, http.StatusOK)
	var table struct {
		Conferences map[string]map[string][]struct {
			TeamID string `json:"teamId"`
			Rank   int    `json:"rank"`
		} `json:"conferences"`
	}
	testutil.DecodeJSON(t, rr, &table)
	if len(table.Conferences[teams.ConferenceAFC]) != 4 {
		t.Fatalf("expected four AFC divisions, got %d", len(table.Conferences[teams.ConferenceAFC]))
	}
}

func TestPlayoffsBeforeSeasonIsConflict(t *testing.T) {
	h, _ := newHandler(t, true)

	rr := serve(h.Playoffs, http.MethodGet, "/playoffs")
	testutil.AssertStatus(t, rr, http.StatusConflict)
}

func TestTeamByID(t *testing.T) {
	h, _ := newHandler(t, true)

	rr := serve(h.TeamByID, http.MethodGet, "/teams/DET")
	testutil.AssertStatus(t, rr, http.StatusOK)
	var team teams.Team
	testutil.DecodeJSON(t, rr, &team)
	if team.ID != "det" || len(team.Roster) == 0 {
		t.Fatalf("unexpected team %+v", team.ID)
	}

	testutil.AssertStatus(t, serve(h.TeamByID, http.MethodGet, "/teams/xyz"), http.StatusNotFound)
	testutil.AssertStatus(t, serve(h.TeamByID, http.MethodGet, "/teams/"), http.StatusBadRequest)

	rr = serve(h.Teams, http.MethodGet, "/teams")
	testutil.AssertStatus(t, rr, http.StatusOK)
	var all []teams.Team
	testutil.DecodeJSON(t, rr, &all)
	if len(all) != 32 {
		t.Fatalf("expected 32 teams, got %d", len(all))
	}
}

func TestSimulateWeekDuringPreseasonIsBadRequest(t *testing.T) {
	h, _ := newHandler(t, true)

	rr := serve(h.SimulateWeek, http.MethodPost, "/season/week")
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	var body errorBody
	testutil.DecodeJSON(t, rr, &body)
	if body.Code != errs.CodeInvalidTransition {
		t.Fatalf("expected invalid transition, got %q", body.Code)
	}
	testutil.AssertStatus(t, serve(h.SimulateWeek, http.MethodGet, "/season/week"), http.StatusMethodNotAllowed)
}

func TestPreseasonThenWeek(t *testing.T) {
	h, _ := newHandler(t, true)

	for i := 0; i < calendar.PreseasonWeeks; i++ {
		testutil.AssertStatus(t, serve(h.AdvancePreseason, http.MethodPost, "/season/preseason"), http.StatusOK)
	}

	rr := serve(h.SimulateWeek, http.MethodPost, "/season/week")
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp weekResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Report.Week != 1 || len(resp.Report.Games) == 0 {
		t.Fatalf("unexpected report %+v", resp.Report)
	}
	if resp.Summary.Calendar.Week != 2 {
		t.Fatalf("expected week 2 after simulating, got %d", resp.Summary.Calendar.Week)
	}
}

func TestSimulateToPhase(t *testing.T) {
	h, _ := newHandler(t, true)

	testutil.AssertStatus(t, serve(h.SimulateToPhase, http.MethodPost, "/season/advance"), http.StatusBadRequest)
	testutil.AssertStatus(t, testutil.ServeJSON(http.HandlerFunc(h.SimulateToPhase), http.MethodPost, "/season/advance", "{"), http.StatusBadRequest)

	rr := testutil.ServeJSON(http.HandlerFunc(h.SimulateToPhase), http.MethodPost, "/season/advance", `{"phase":"REGULAR_SEASON"}`)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var summary Summary
	testutil.DecodeJSON(t, rr, &summary)
	if summary.Calendar.Phase != calendar.PhaseRegularSeason || summary.Calendar.Week != 1 {
		t.Fatalf("expected regular season week 1, got %s", summary.Label)
	}

	rr = serve(h.SimulateToPhase, http.MethodPost, "/season/advance?phase=bogus")
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestOffseasonFlow(t *testing.T) {
	h, svc := newHandler(t, true)
	if _, err := svc.SimulateToPhase(context.Background(), calendar.PhaseOffseason); err != nil {
		t.Fatalf("simulate season: %v", err)
	}

	rr := serve(h.Offseason, http.MethodGet, "/offseason")
	testutil.AssertStatus(t, rr, http.StatusOK)

	action := http.HandlerFunc(h.OffseasonAction)
	rr = testutil.ServeJSON(action, http.MethodPost, "/offseason/actions",
		`{"type":"APPLY_DRAFT_SELECTIONS","phase":"DRAFT","selections":[]}`)
	testutil.AssertStatus(t, rr, http.StatusConflict)
	var body errorBody
	testutil.DecodeJSON(t, rr, &body)
	if body.Code != errs.CodeWrongPhase || body.Metadata["currentPhase"] != "SEASON_END" {
		t.Fatalf("unexpected wrong-phase body %+v", body)
	}

	testutil.AssertStatus(t, serve(h.AdvanceOffseason, http.MethodPost, "/offseason/advance"), http.StatusBadRequest)

	rr = testutil.ServeJSON(action, http.MethodPost, "/offseason/actions",
		`{"type":"COMPLETE_TASK","phase":"SEASON_END","taskId":"review-season"}`)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = serve(h.AdvanceOffseason, http.MethodPost, "/offseason/advance")
	testutil.AssertStatus(t, rr, http.StatusOK)
	var summary Summary
	testutil.DecodeJSON(t, rr, &summary)
	if summary.OffseasonPhase != "COACHING_DECISIONS" {
		t.Fatalf("expected coaching decisions, got %q", summary.OffseasonPhase)
	}

	rr = serve(h.StartOffseason, http.MethodPost, "/offseason/start")
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.DecodeJSON(t, rr, &summary)
	if summary.OffseasonPhase != "COACHING_DECISIONS" {
		t.Fatalf("expected start to leave an open offseason alone, got %q", summary.OffseasonPhase)
	}
}

func TestStartOffseasonBeforeSeasonEnds(t *testing.T) {
	h, _ := newHandler(t, true)
	rr := serve(h.StartOffseason, http.MethodPost, "/offseason/start")
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	var body errorBody
	testutil.DecodeJSON(t, rr, &body)
	if body.Code != errs.CodeInvalidTransition {
		t.Fatalf("expected invalid transition, got %+v", body)
	}
}

func TestOffseasonActionRejectsBadPayloads(t *testing.T) {
	h, _ := newHandler(t, true)
	action := http.HandlerFunc(h.OffseasonAction)

	testutil.AssertStatus(t, testutil.ServeJSON(action, http.MethodPost, "/offseason/actions", `not json`), http.StatusBadRequest)
	testutil.AssertStatus(t, testutil.ServeJSON(action, http.MethodPost, "/offseason/actions", `{"type":"TRADE","phase":"DRAFT"}`), http.StatusBadRequest)
	testutil.AssertStatus(t, testutil.ServeJSON(action, http.MethodPost, "/offseason/actions", `{"type":"AUTO_COMPLETE","phase":"DRAFT"}`), http.StatusBadRequest)
	testutil.AssertStatus(t, serve(h.Offseason, http.MethodGet, "/offseason"), http.StatusConflict)
}

func TestSaves(t *testing.T) {
	h, svc := newHandler(t, true)
	if _, err := svc.AdvancePreseason(context.Background()); err != nil {
		t.Fatalf("advance: %v", err)
	}

	rr := serve(h.Saves, http.MethodGet, "/saves")
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp struct {
		Active string `json:"active"`
		Slots  []struct {
			Slot string `json:"slot"`
		} `json:"slots"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Active != appleague.DefaultSlot || len(resp.Slots) != 1 {
		t.Fatalf("unexpected saves %+v", resp)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errs.WrongPhase("DRAFT", "UDFA"), http.StatusConflict},
		{errs.New(errs.CodeMissingDependency, "x"), http.StatusConflict},
		{errs.New(errs.CodeCapViolation, "x"), http.StatusUnprocessableEntity},
		{errs.New(errs.CodeInvalidTransition, "x"), http.StatusBadRequest},
		{errs.New(errs.CodeInvalidAction, "x"), http.StatusBadRequest},
		{errs.New(errs.CodeDataIntegrity, "x"), http.StatusInternalServerError},
		{appleague.ErrTeamNotFound, http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusFor(tc.err); got != tc.want {
			t.Fatalf("StatusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
