package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/league-sim-service/internal/http/requestutil"
	"github.com/preston-bernstein/league-sim-service/internal/logging"
	"github.com/preston-bernstein/league-sim-service/internal/metrics"
)

// LoggingMiddleware wraps the handler with request logging, request ID support, and metrics.
func LoggingMiddleware(baseLogger *slog.Logger, recorder *metrics.Recorder, next http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := requestutil.SanitizeRequestID(r.Header.Get(requestutil.RequestIDHeader))
		w.Header().Set(requestutil.RequestIDHeader, reqID)

		logger := baseLogger.With(
			slog.String(logging.FieldRequestID, reqID),
			slog.String(logging.FieldMethod, r.Method),
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("query", r.URL.RawQuery),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)

		ctx := logging.WithLogger(r.Context(), logger)
		ctx = withRequestID(ctx, reqID)
		r = r.WithContext(ctx)
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("handler panic", slog.Any("panic", rec))
				if !ww.wroteHeader {
					ww.Header().Set("Content-Type", "application/json")
					ww.WriteHeader(http.StatusInternalServerError)
					_, _ = fmt.Fprintf(ww, `{"error":"internal error","requestId":%q}`+"\n", reqID)
				}
			}
			duration := time.Since(start)
			if recorder != nil {
				recorder.RecordHTTPRequest(r.Method, NormalizePath(r.URL.Path), ww.status, duration)
			}
			logger.Log(r.Context(), completionLevel(r.URL.Path, ww.status), "request complete",
				slog.Int(logging.FieldStatusCode, ww.status),
				slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

type responseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

// RequestIDFromContext extracts the request ID stored by the logging middleware.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if val, ok := ctx.Value(requestIDKey{}).(string); ok {
		return val
	}
	return ""
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

type requestIDKey struct{}

// probePaths are polled by orchestrators and logged at debug.
var probePaths = map[string]bool{"/health": true, "/ready": true}

// completionLevel picks the log level for a finished request: errors for
// 5xx, warnings for 4xx and debug for successful probes.
func completionLevel(path string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case probePaths[path]:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// NormalizePath collapses id-bearing paths so metrics stay low-cardinality.
func NormalizePath(path string) string {
	path, _, _ = strings.Cut(path, "?")
	if id, ok := strings.CutPrefix(path, "/teams/"); ok && id != "" {
		return "/teams/:id"
	}
	return path
}
