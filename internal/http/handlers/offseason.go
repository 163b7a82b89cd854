package handlers

import (
	nethttp "net/http"

	domainoffseason "github.com/preston-bernstein/league-sim-service/internal/domain/offseason"
	"github.com/preston-bernstein/league-sim-service/internal/logging"
)

// Offseason returns the offseason state and progress.
func (h *Handler) Offseason(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	view, err := h.svc.Offseason()
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, view, h.logger)
}

// OffseasonAction dispatches one tagged action, e.g.
// {"type":"COMPLETE_TASK","phase":"SEASON_END","taskId":"review-season"}.
func (h *Handler) OffseasonAction(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), logger)
		return
	}
	action, err := domainoffseason.DecodeAction(body)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), logger)
		return
	}
	state, err := h.svc.Dispatch(r.Context(), action)
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	logging.Info(logger, "offseason action applied",
		logging.FieldAction, string(action.Type()),
		logging.FieldSubphase, string(action.TargetPhase()),
	)
	view := Summarize(state)
	resp := map[string]any{"league": view}
	if state.Offseason != nil {
		resp["tasks"] = state.Offseason.Tasks[state.Offseason.CurrentPhase]
		if n := len(state.Offseason.ChangeLog); n > 0 {
			resp["lastChange"] = state.Offseason.ChangeLog[n-1]
		}
	}
	writeJSON(w, nethttp.StatusOK, resp, logger)
}

// AdvanceOffseason moves to the next offseason phase.
func (h *Handler) AdvanceOffseason(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	state, err := h.svc.AdvanceOffseason(r.Context())
	if err != nil {
		writeDomainError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, nethttp.StatusOK, Summarize(state), h.logger)
}

// StartOffseason opens the offseason once the Super Bowl is final.
func (h *Handler) StartOffseason(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	state, err := h.svc.EnterOffseason(r.Context())
	if err != nil {
		writeDomainError(w, r, err, loggerFromContext(r, h.logger))
		return
	}
	writeJSON(w, nethttp.StatusOK, Summarize(state), h.logger)
}
