package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/preston-bernstein/league-sim-service/internal/config"
	"github.com/preston-bernstein/league-sim-service/internal/metrics"
	"github.com/preston-bernstein/league-sim-service/internal/testutil"
)

// metricsSetupSuccess forces a handler to test the buildMetrics success path.
func metricsSetupSuccess(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
	rec := metrics.NewRecorder()
	return rec, http.NewServeMux(), func(context.Context) error { return nil }, nil
}

func TestBuildMetricsSuccessPathSetsServerAndShutdown(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = metricsSetupSuccess

	rec, srv, stop := buildMetrics(config.Config{
		Metrics: config.MetricsConfig{
			Enabled: true,
			Port:    "9999",
		},
	}, nil, nil)

	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("expected metrics addr :9999, got %s", srv.Addr())
	}
}

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := testConfig(t)
	cfg.Metrics.Enabled = true

	srv := newTestServer(t, cfg)
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server after setup failure")
	}
}

func TestNewServerWithMetricsDisabledSkipsServer(t *testing.T) {
	srv := newTestServer(t, testConfig(t))
	if srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestNewServerWithMetricsUsesInjectedRecorder(t *testing.T) {
	rec, _ := testutil.NewRecorderWithShutdown()
	cfg := testConfig(t)
	cfg.Metrics.Enabled = true

	srv, err := newServerWithMetrics(context.Background(), cfg, nil, rec)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer srv.saves.Close()
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if srv.metricsStop != nil {
		t.Fatalf("expected no shutdown hook for an injected recorder")
	}

	snap := rec.Snapshot()
	if snap.Saves != 1 {
		t.Fatalf("expected bootstrap save recorded, got %d", snap.Saves)
	}
}
