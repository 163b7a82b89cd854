package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/league-sim-service/internal/fixture"
	"github.com/preston-bernstein/league-sim-service/internal/testutil"
)

func newAdmin(t *testing.T, token string) *AdminHandler {
	t.Helper()
	svc, _ := testutil.NewLeagueService(t, false)
	return NewAdminHandler(svc, fixture.Options{Seed: 9, Year: 2025}, token, nil)
}

func adminRequest(path, body, token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAdminResetRequiresAuth(t *testing.T) {
	h := newAdmin(t, "secret")

	rr := testutil.ServeRequest(http.HandlerFunc(h.ResetLeague), adminRequest("/admin/league/reset", "", ""))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)

	rr = testutil.ServeRequest(http.HandlerFunc(h.ResetLeague), adminRequest("/admin/league/reset", "", "wrong"))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestAdminDisabledWithoutToken(t *testing.T) {
	h := newAdmin(t, "")

	rr := testutil.ServeRequest(http.HandlerFunc(h.ResetLeague), adminRequest("/admin/league/reset", "", "anything"))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestAdminResetCreatesLeague(t *testing.T) {
	h := newAdmin(t, "secret")

	rr := testutil.ServeRequest(http.HandlerFunc(h.ResetLeague),
		adminRequest("/admin/league/reset", `{"year":2030,"userTeamId":"KC"}`, "secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var summary Summary
	testutil.DecodeJSON(t, rr, &summary)
	if summary.Calendar.Year != 2030 || summary.UserTeamID != "kc" {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestAdminResetRejectsUnknownTeam(t *testing.T) {
	h := newAdmin(t, "secret")

	rr := testutil.ServeRequest(http.HandlerFunc(h.ResetLeague),
		adminRequest("/admin/league/reset", `{"userTeamId":"nope"}`, "secret"))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestAdminLoadSlot(t *testing.T) {
	h := newAdmin(t, "secret")

	rr := testutil.ServeRequest(http.HandlerFunc(h.LoadSlot), adminRequest("/admin/league/load", `{}`, "secret"))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	rr = testutil.ServeRequest(http.HandlerFunc(h.LoadSlot), adminRequest("/admin/league/load", `{"slot":"missing"}`, "secret"))
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	testutil.ServeRequest(http.HandlerFunc(h.ResetLeague), adminRequest("/admin/league/reset", `{}`, "secret"))
	rr = testutil.ServeRequest(http.HandlerFunc(h.LoadSlot), adminRequest("/admin/league/load", `{"slot":"main"}`, "secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestAdminRequiresPost(t *testing.T) {
	h := newAdmin(t, "secret")
	req := httptest.NewRequest(http.MethodGet, "/admin/league/reset", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.ResetLeague), req)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}
