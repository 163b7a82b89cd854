package handlers

import (
	"log/slog"
	nethttp "net/http"
	"strings"
	"time"

	appleague "github.com/preston-bernstein/league-sim-service/internal/app/league"
	"github.com/preston-bernstein/league-sim-service/internal/autopilot"
	"github.com/preston-bernstein/league-sim-service/internal/calendar"
	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
	"github.com/preston-bernstein/league-sim-service/internal/http/requestutil"
	"github.com/preston-bernstein/league-sim-service/internal/logging"
	"github.com/preston-bernstein/league-sim-service/internal/season"
)

type nowFunc func() time.Time

// Handler wires HTTP routes to the league service.
type Handler struct {
	svc      *appleague.Service
	logger   *slog.Logger
	now      nowFunc
	statusFn func() autopilot.Status
}

// NewHandler constructs a Handler with defaults. statusFn may be nil when
// the autopilot is disabled.
func NewHandler(svc *appleague.Service, logger *slog.Logger, statusFn func() autopilot.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		now:      time.Now,
		statusFn: statusFn,
	}
}

// Summary is the compact view of a league snapshot returned by transitions.
type Summary struct {
	Label          string            `json:"label"`
	Calendar       calendar.Calendar `json:"calendar"`
	UserTeamID     string            `json:"userTeamId,omitempty"`
	Teams          int               `json:"teams"`
	GamesRemaining int               `json:"gamesRemaining"`
	OffseasonPhase string            `json:"offseasonPhase,omitempty"`
	ChampionID     string            `json:"championId,omitempty"`
	Seasons        int               `json:"completedSeasons"`
}

// Summarize builds the compact view of state.
func Summarize(state league.State) Summary {
	s := Summary{
		Label:          state.Calendar.Label(),
		Calendar:       state.Calendar,
		UserTeamID:     state.UserTeamID,
		Teams:          len(state.Teams),
		GamesRemaining: state.Schedule.Remaining(),
		Seasons:        len(state.History),
	}
	if state.Offseason != nil {
		s.OffseasonPhase = string(state.Offseason.CurrentPhase)
	}
	if state.Playoffs != nil {
		s.ChampionID = state.Playoffs.ChampionID
	}
	return s
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness: a league is held and the autopilot, if any, is healthy.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if _, err := h.svc.Current(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "no league loaded", h.logger)
		return
	}
	if h.statusFn != nil {
		if status := h.statusFn(); !status.IsReady() {
			msg := status.LastError
			if msg == "" {
				msg = "not ready"
			}
			writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
			return
		}
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{
		"status":    "ready",
		"checkedAt": h.now().UTC().Format(time.RFC3339),
	}, h.logger)
}

// League returns the summary, or the whole snapshot with ?full=true.
func (h *Handler) League(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	state, err := h.svc.Current()
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	if strings.EqualFold(r.URL.Query().Get("full"), "true") {
		writeJSON(w, nethttp.StatusOK, state, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, Summarize(state), h.logger)
}

// Calendar returns the current calendar and its label.
func (h *Handler) Calendar(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	state, err := h.svc.Current()
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"calendar": state.Calendar,
		"label":    state.Calendar.Label(),
	}, h.logger)
}

// Standings returns conference and division tables.
func (h *Handler) Standings(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	table, err := h.svc.Standings()
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, table, h.logger)
}

// Playoffs returns the current bracket.
func (h *Handler) Playoffs(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	bracket, err := h.svc.Bracket()
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, bracket, h.logger)
}

// Teams lists every team.
func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	all, err := h.svc.Teams()
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, all, h.logger)
}

// TeamByID returns one team with its roster.
func (h *Handler) TeamByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	id, ok := requestutil.PathID(r.URL.Path, "/teams/")
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team id", h.logger)
		return
	}
	team, err := h.svc.Team(strings.ToLower(id))
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, team, h.logger)
}

// Saves lists the save slots.
func (h *Handler) Saves(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	slots, err := h.svc.Slots(r.Context())
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"active": h.svc.Slot(),
		"slots":  slots,
	}, h.logger)
}

type weekResponse struct {
	Summary Summary       `json:"league"`
	Report  season.Report `json:"report"`
}

// SimulateWeek plays the current regular-season or playoff week.
func (h *Handler) SimulateWeek(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	state, report, err := h.svc.SimulateWeek(r.Context())
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	logging.Info(logger, "week simulated via api",
		logging.FieldWeek, report.Week,
		logging.FieldPhase, string(report.Phase),
		logging.FieldCount, len(report.Games)+len(report.Matchups),
	)
	writeJSON(w, nethttp.StatusOK, weekResponse{Summary: Summarize(state), Report: report}, logger)
}

// AdvancePreseason moves one preseason week forward.
func (h *Handler) AdvancePreseason(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	state, err := h.svc.AdvancePreseason(r.Context())
	if err != nil {
		writeDomainError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, nethttp.StatusOK, Summarize(state), h.logger)
}

type advanceRequest struct {
	Phase calendar.Phase `json:"phase"`
}

// SimulateToPhase steps the league until the requested calendar phase.
func (h *Handler) SimulateToPhase(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	var req advanceRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	if req.Phase == "" {
		req.Phase = calendar.Phase(strings.ToUpper(r.URL.Query().Get("phase")))
	}
	if req.Phase == "" {
		writeError(w, r, nethttp.StatusBadRequest, "phase is required", h.logger)
		return
	}
	state, err := h.svc.SimulateToPhase(r.Context(), req.Phase)
	if err != nil {
		writeDomainError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, nethttp.StatusOK, Summarize(state), h.logger)
}
