package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	appleague "github.com/preston-bernstein/league-sim-service/internal/app/league"
	"github.com/preston-bernstein/league-sim-service/internal/fixture"
	"github.com/preston-bernstein/league-sim-service/internal/http/requestutil"
	"github.com/preston-bernstein/league-sim-service/internal/logging"
)

// AdminHandler exposes admin-only endpoints guarded by a Bearer token.
type AdminHandler struct {
	svc      *appleague.Service
	defaults fixture.Options
	token    string
	logger   *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. defaults fills fields a reset
// request leaves empty.
func NewAdminHandler(svc *appleague.Service, defaults fixture.Options, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		svc:      svc,
		defaults: defaults,
		token:    token,
		logger:   logger,
	}
}

type resetRequest struct {
	Seed       *uint64 `json:"seed"`
	Year       int     `json:"year"`
	UserTeamID string  `json:"userTeamId"`
}

// ResetLeague replaces the league in the active slot with a new one.
func (h *AdminHandler) ResetLeague(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	var req resetRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}
	opts := h.defaults
	if req.Seed != nil {
		opts.Seed = *req.Seed
	}
	if req.Year != 0 {
		opts.Year = req.Year
	}
	if req.UserTeamID != "" {
		opts.UserTeamID = strings.ToLower(req.UserTeamID)
	}

	state, err := h.svc.NewLeague(r.Context(), opts)
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	logging.Info(logger, "admin league reset",
		logging.FieldYear, state.Calendar.Year,
		logging.FieldTeamID, state.UserTeamID,
		logging.FieldSlot, h.svc.Slot(),
	)
	writeJSON(w, http.StatusOK, Summarize(state), logger)
}

type loadRequest struct {
	Slot string `json:"slot"`
}

// LoadSlot makes another save slot active.
func (h *AdminHandler) LoadSlot(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	var req loadRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}
	if strings.TrimSpace(req.Slot) == "" {
		writeError(w, r, http.StatusBadRequest, "slot is required", logger)
		return
	}
	state, err := h.svc.Load(r.Context(), req.Slot)
	if err != nil {
		writeDomainError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, Summarize(state), logger)
}

func (h *AdminHandler) guard(w http.ResponseWriter, r *http.Request) bool {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return false
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return false
	}
	return true
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	token, ok := requestutil.BearerToken(r)
	return ok && subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) == 1
}
