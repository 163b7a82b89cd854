package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/league-sim-service/internal/logging"
	"github.com/preston-bernstein/league-sim-service/internal/metrics"
	"github.com/preston-bernstein/league-sim-service/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestID(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if got := RequestIDFromContext(r.Context()); got != "abc123" {
			t.Fatalf("expected incoming request id in context, got %q", got)
		}
		w.WriteHeader(http.StatusTeapot)
	})

	handler := LoggingMiddleware(logger, rec, next)
	req := httptest.NewRequest(http.MethodGet, "/standings", nil)
	req.Header.Set("X-Request-ID", "abc123")
	rr := testutil.ServeRequest(handler, req)

	if !nextCalled {
		t.Fatalf("expected next handler to be called")
	}
	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if got := rr.Header().Get("X-Request-ID"); got != "abc123" {
		t.Fatalf("expected request id echoed, got %q", got)
	}
	if !strings.Contains(buf.String(), "status_code=418") {
		t.Fatalf("expected completion log with status, got %s", buf.String())
	}
}

func TestLoggingMiddlewareGeneratesRequestIDWhenMissing(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got == "" {
			t.Fatalf("expected generated request id")
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, nil, next)
	rr := testutil.Serve(handler, http.MethodGet, "/league?full=true", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rr.Header().Get("X-Request-ID"); got == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
}

func TestLoggingMiddlewareRecoversPanics(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rr := testutil.Serve(LoggingMiddleware(logger, nil, next), http.MethodPost, "/season/week", nil)

	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	if !strings.Contains(buf.String(), "handler panic") {
		t.Fatalf("expected panic to be logged")
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON panic body, got %q", ct)
	}
	if id := rr.Header().Get("X-Request-ID"); id == "" || !strings.Contains(rr.Body.String(), id) {
		t.Fatalf("expected request id in panic body, got %s", rr.Body.String())
	}
}

func TestCompletionLevel(t *testing.T) {
	cases := []struct {
		path   string
		status int
		want   slog.Level
	}{
		{"/ready", http.StatusOK, slog.LevelDebug},
		{"/ready", http.StatusServiceUnavailable, slog.LevelError},
		{"/season/week", http.StatusOK, slog.LevelInfo},
		{"/offseason/actions", http.StatusConflict, slog.LevelWarn},
		{"/season/advance", http.StatusInternalServerError, slog.LevelError},
	}
	for _, tc := range cases {
		if got := completionLevel(tc.path, tc.status); got != tc.want {
			t.Fatalf("completionLevel(%s, %d) = %s, want %s", tc.path, tc.status, got, tc.want)
		}
	}
}

func TestProbeRequestsLogAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{Output: &buf, Level: "info"})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	testutil.Serve(LoggingMiddleware(logger, nil, next), http.MethodGet, "/health", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected healthy probe to stay below info, got %s", buf.String())
	}
	testutil.Serve(LoggingMiddleware(logger, nil, next), http.MethodGet, "/calendar", nil)
	if !strings.Contains(buf.String(), "request complete") {
		t.Fatalf("expected calendar request logged, got %s", buf.String())
	}
}

func TestLoggingMiddlewareStoresRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context(), nil).Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/calendar", nil)
	req.Header.Set("X-Request-ID", "req-1")
	testutil.ServeRequest(LoggingMiddleware(base, nil, next), req)

	if !strings.Contains(buf.String(), "msg=\"inside handler\" request_id=req-1") {
		t.Fatalf("expected handler log to carry request id, got %s", buf.String())
	}
}

func TestResponseWriterDefaultsStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}
	if w.status != 0 {
		t.Fatalf("expected zero status before write, got %d", w.status)
	}
	w.WriteHeader(http.StatusAccepted)
	if w.status != http.StatusAccepted || !w.wroteHeader {
		t.Fatalf("expected status set to 202, got %d", w.status)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "/teams/det", want: "/teams/:id"},
		{in: "/teams", want: "/teams"},
		{in: "/teams/", want: "/teams/"},
		{in: "/teams/kc?full=true", want: "/teams/:id"},
		{in: "/saves", want: "/saves"},
		{in: "/health", want: "/health"},
		{in: "/offseason/actions", want: "/offseason/actions"},
	}

	for _, tt := range tests {
		if got := NormalizePath(tt.in); got != tt.want {
			t.Fatalf("NormalizePath(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRequestIDHelpers(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty id, got %s", got)
	}

	ctx = withRequestID(ctx, "abc123")
	if got := RequestIDFromContext(ctx); got != "abc123" {
		t.Fatalf("expected id from context, got %s", got)
	}
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty id for nil context, got %s", got)
	}
}

func BenchmarkLoggingMiddleware(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rec := metrics.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Microsecond)
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, rec, next)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/standings", nil)
		handler.ServeHTTP(rr, req)
	}
}
