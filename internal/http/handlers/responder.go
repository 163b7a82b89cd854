package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	appleague "github.com/preston-bernstein/league-sim-service/internal/app/league"
	"github.com/preston-bernstein/league-sim-service/internal/errs"
	"github.com/preston-bernstein/league-sim-service/internal/http/middleware"
	"github.com/preston-bernstein/league-sim-service/internal/http/requestutil"
	"github.com/preston-bernstein/league-sim-service/internal/logging"
	"github.com/preston-bernstein/league-sim-service/internal/saves"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type errorBody struct {
	Error     string            `json:"error"`
	Code      errs.Code         `json:"code,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, errorBody{Error: message, RequestID: requestID(r)}, logger)
}

// writeDomainError maps err to a status and includes its code and metadata.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := StatusFor(err)
	body := errorBody{Error: err.Error(), RequestID: requestID(r)}
	var de *errs.Error
	if errors.As(err, &de) {
		body.Code = de.Code
		body.Metadata = de.Metadata
	}
	if status >= http.StatusInternalServerError {
		logging.Error(logger, "request failed", err, logging.FieldStatusCode, status)
		if body.Code == "" {
			body.Error = "internal error"
		}
	}
	writeJSON(w, status, body, logger)
}

// StatusFor maps engine and service errors to HTTP statuses.
func StatusFor(err error) int {
	switch errs.CodeOf(err) {
	case errs.CodeWrongPhase, errs.CodeMissingDependency:
		return http.StatusConflict
	case errs.CodeCapViolation:
		return http.StatusUnprocessableEntity
	case errs.CodeInvalidTransition, errs.CodeInvalidAction:
		return http.StatusBadRequest
	case errs.CodeDataIntegrity:
		return http.StatusInternalServerError
	}
	switch {
	case errors.Is(err, appleague.ErrTeamNotFound), errors.Is(err, saves.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func requestID(r *http.Request) string {
	if r == nil {
		return ""
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	return r.Header.Get(requestutil.RequestIDHeader)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string, logger *slog.Logger) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
	return false
}

// readBody returns the request body, or nil for an empty one.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

// decodeBody unmarshals a JSON body into dest; an empty body leaves dest untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, dest any) error {
	data, err := readBody(w, r)
	if err != nil || len(data) == 0 {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
