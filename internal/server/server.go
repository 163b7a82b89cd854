package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	appleague "github.com/preston-bernstein/league-sim-service/internal/app/league"
	"github.com/preston-bernstein/league-sim-service/internal/autopilot"
	"github.com/preston-bernstein/league-sim-service/internal/config"
	"github.com/preston-bernstein/league-sim-service/internal/fixture"
	httpserver "github.com/preston-bernstein/league-sim-service/internal/http"
	"github.com/preston-bernstein/league-sim-service/internal/http/handlers"
	"github.com/preston-bernstein/league-sim-service/internal/http/middleware"
	"github.com/preston-bernstein/league-sim-service/internal/logging"
	"github.com/preston-bernstein/league-sim-service/internal/metrics"
	"github.com/preston-bernstein/league-sim-service/internal/saves"
	"github.com/preston-bernstein/league-sim-service/internal/store"
)

var (
	metricsSetup = metrics.Setup
	openSaves    = saves.Open
)

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	saves         saves.Store
	league        *appleague.Service
	httpServer    httpServer
	metricsServer httpServer
	autopilot     Autopilot
	metricsStop   func(context.Context) error
}

// New constructs a server: it opens the save store, loads the configured
// slot (generating a league when the slot is empty) and wires HTTP,
// metrics and the optional autopilot.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	saveStore, err := openSaves(ctx, cfg.Saves.Backend, cfg.Saves.Path, cfg.Saves.Retention)
	if err != nil {
		return nil, fmt.Errorf("open saves: %w", err)
	}

	svc := buildService(cfg, saveStore, recorder, logger)
	if err := bootstrap(ctx, cfg, svc, logger); err != nil {
		_ = saveStore.Close()
		return nil, err
	}

	var pilot Autopilot
	if cfg.Autopilot.Enabled {
		pilot = autopilot.New(svc, logger, recorder, cfg.Autopilot.Interval,
			autopilot.PauseInOffseason(cfg.Autopilot.PauseOffseason))
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		saves:         saveStore,
		league:        svc,
		httpServer:    buildHTTPServer(cfg, svc, logger, recorder, pilot),
		metricsServer: metricsSrv,
		autopilot:     pilot,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *appleague.Service, httpSrv httpServer, pilot Autopilot) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		league:     svc,
		httpServer: httpSrv,
		autopilot:  pilot,
	}
}

func buildService(cfg config.Config, saveStore saves.Store, recorder *metrics.Recorder, logger *slog.Logger) *appleague.Service {
	backend := cfg.Saves.Backend
	if backend == "" {
		backend = saves.BackendSQLite
	}
	return appleague.NewService(store.NewMemoryStore(), saveStore,
		appleague.WithSlot(cfg.Saves.Slot),
		appleague.WithBackend(backend),
		appleague.WithMetrics(recorder),
		appleague.WithLogger(logger),
	)
}

// bootstrap loads the configured slot, or generates and saves a new league
// when the slot has never been written.
func bootstrap(ctx context.Context, cfg config.Config, svc *appleague.Service, logger *slog.Logger) error {
	slot := svc.Slot()
	_, err := svc.Load(ctx, slot)
	if err == nil {
		return nil
	}
	if !errors.Is(err, saves.ErrNotFound) {
		return fmt.Errorf("load slot %s: %w", slot, err)
	}

	opts := leagueOptions(cfg)
	logging.Info(logger, "slot empty, generating league",
		logging.FieldSlot, slot,
		logging.FieldSeed, opts.Seed,
		logging.FieldYear, opts.Year,
	)
	if _, err := svc.NewLeague(ctx, opts); err != nil {
		return fmt.Errorf("create league: %w", err)
	}
	return nil
}

func leagueOptions(cfg config.Config) fixture.Options {
	return fixture.Options{
		Seed:       cfg.League.Seed,
		Year:       cfg.League.Year,
		UserTeamID: cfg.League.UserTeamID,
	}
}

func buildHTTPServer(cfg config.Config, svc *appleague.Service, logger *slog.Logger, recorder *metrics.Recorder, pilot Autopilot) httpServer {
	var statusFn func() autopilot.Status
	if pilot != nil {
		statusFn = pilot.Status
	}

	handler := handlers.NewHandler(svc, logger, statusFn)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(svc, leagueOptions(cfg), cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           wrapped,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the autopilot and the HTTP and metrics listeners, then waits
// for ctx to be cancelled or a listener to fail before shutting down.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return serve("http", s.httpServer, s.logger) })
	if s.metricsServer != nil {
		g.Go(func() error { return serve("metrics", s.metricsServer, s.logger) })
	}
	if s.autopilot != nil {
		s.autopilot.Start(gctx)
	}

	g.Go(func() error {
		<-gctx.Done()
		logging.Info(s.logger, "shutdown signal received")
		s.gracefulShutdown()
		return nil
	})

	return g.Wait()
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.autopilot != nil {
		if err := s.autopilot.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop autopilot", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.saves != nil {
		if err := s.saves.Close(); err != nil {
			logging.Warn(s.logger, "save store close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

// serve blocks on srv; a clean shutdown is not an error.
func serve(name string, srv httpServer, logger *slog.Logger) error {
	logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Warn(logger, name+" server failed", "error", err)
		return fmt.Errorf("%s server: %w", name, err)
	}
	return nil
}

// League exposes the league service.
func (s *Server) League() *appleague.Service {
	return s.league
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
