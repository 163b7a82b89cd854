// Package autopilot advances the league on an interval without user input.
package autopilot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/league-sim-service/internal/calendar"
	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
	"github.com/preston-bernstein/league-sim-service/internal/logging"
	"github.com/preston-bernstein/league-sim-service/internal/metrics"
)

const defaultInterval = 30 * time.Second

// Stepper performs the next natural league transition.
type Stepper interface {
	Current() (league.State, error)
	Step(ctx context.Context) (league.State, error)
}

// Autopilot steps the league on every tick.
type Autopilot struct {
	stepper          Stepper
	logger           *slog.Logger
	metrics          *metrics.Recorder
	interval         time.Duration
	pauseInOffseason bool

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the autopilot loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastLabel           string
}

// IsReady reports whether the loop is not failing repeatedly.
func (s Status) IsReady() bool {
	return s.ConsecutiveFailures < 3
}

// Option customizes an Autopilot.
type Option func(*Autopilot)

// PauseInOffseason leaves offseason phases to manual actions.
func PauseInOffseason(pause bool) Option {
	return func(a *Autopilot) { a.pauseInOffseason = pause }
}

// New constructs an Autopilot with sane defaults.
func New(stepper Stepper, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration, opts ...Option) *Autopilot {
	if interval <= 0 {
		interval = defaultInterval
	}
	a := &Autopilot{
		stepper:  stepper,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start begins stepping until the context is cancelled or Stop is called.
func (a *Autopilot) Start(ctx context.Context) {
	a.startMu.Lock()
	if a.started {
		a.startMu.Unlock()
		return
	}
	a.started = true
	a.startMu.Unlock()

	a.ticker = time.NewTicker(a.interval)

	go func() {
		logging.Info(a.logger, "autopilot started", slog.Int64(logging.FieldDurationMS, a.interval.Milliseconds()))
		for {
			select {
			case <-ctx.Done():
				a.stopTicker()
				logging.Info(a.logger, "autopilot stopped")
				return
			case <-a.done:
				a.stopTicker()
				logging.Info(a.logger, "autopilot stopped")
				return
			case <-a.ticker.C:
				a.stepOnce(ctx)
			}
		}
	}()
}

// Stop halts the loop.
func (a *Autopilot) Stop(ctx context.Context) error {
	_ = ctx
	a.stopOnce.Do(func() {
		close(a.done)
		a.stopTicker()
	})
	return nil
}

func (a *Autopilot) stepOnce(ctx context.Context) {
	current, err := a.stepper.Current()
	if err != nil {
		logging.Debug(a.logger, "autopilot idle, no league loaded")
		return
	}
	if a.pauseInOffseason && current.Calendar.Phase == calendar.PhaseOffseason {
		logging.Debug(a.logger, "autopilot paused for offseason",
			logging.FieldSubphase, current.Calendar.Label())
		return
	}

	start := time.Now()
	a.recordAttempt(start)
	next, err := a.stepper.Step(ctx)
	a.metrics.RecordAutopilotCycle(time.Since(start), err)
	if err != nil {
		cal := current.Calendar
		logging.Error(a.logger, "autopilot step failed", err,
			logging.CalendarFields(cal.Year, cal.Week, string(cal.Phase))...)
		a.recordFailure(err, start)
		return
	}

	label := next.Calendar.Label()
	a.recordSuccess(start, label)
	logging.Info(a.logger, "autopilot advanced league",
		logging.FieldYear, next.Calendar.Year,
		logging.FieldPhase, label,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (a *Autopilot) stopTicker() {
	if a.ticker != nil {
		a.ticker.Stop()
	}
}

func (a *Autopilot) recordAttempt(at time.Time) {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	a.status.LastAttempt = at
}

func (a *Autopilot) recordSuccess(at time.Time, label string) {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	a.status.ConsecutiveFailures = 0
	a.status.LastError = ""
	a.status.LastSuccess = at
	a.status.LastLabel = label
}

func (a *Autopilot) recordFailure(err error, at time.Time) {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	a.status.ConsecutiveFailures++
	if err != nil {
		a.status.LastError = err.Error()
	}
	a.status.LastAttempt = at
}

// Status returns a snapshot of the loop's recent health.
func (a *Autopilot) Status() Status {
	a.statusMu.RLock()
	defer a.statusMu.RUnlock()
	return a.status
}
