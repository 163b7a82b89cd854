package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/preston-bernstein/league-sim-service/internal/errs"
)

type leagueStats struct {
	weeks            int
	noOpWeeks        int
	games            int
	phaseTransitions map[string]int
	dispatches       map[string]int
	rejections       map[string]int
	saves            int
	saveErrors       int
	lastSaveLatency  time.Duration
	autopilotCycles  int
	autopilotErrors  int
}

// Recorder captures in-memory counters about league progression and mirrors
// them to OpenTelemetry instruments when telemetry is enabled.
type Recorder struct {
	mu    sync.Mutex
	stats leagueStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: leagueStats{
			phaseTransitions: make(map[string]int),
			dispatches:       make(map[string]int),
			rejections:       make(map[string]int),
		},
		otel: otel,
	}
}

// RecordWeek tracks one simulated week and the games it completed.
func (r *Recorder) RecordWeek(phase string, games int, noOp bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.weeks++
	r.stats.games += games
	if noOp {
		r.stats.noOpWeeks++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordWeek(phase, games, noOp)
	}
}

// RecordPhaseTransition counts entries into a calendar or offseason phase.
func (r *Recorder) RecordPhaseTransition(phase string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.phaseTransitions[phase]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordPhaseTransition(phase)
	}
}

// RecordDispatch counts an offseason action by outcome. Recoverable domain
// errors count as rejections; anything else is an error.
func (r *Recorder) RecordDispatch(action string, err error) {
	if r == nil {
		return
	}
	outcome := dispatchOutcome(err)
	r.mu.Lock()
	r.stats.dispatches[action]++
	if outcome != OutcomeOK {
		r.stats.rejections[action]++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordDispatch(action, outcome)
	}
}

// RecordSave tracks a snapshot write to a save backend.
func (r *Recorder) RecordSave(backend string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.saves++
	r.stats.lastSaveLatency = duration
	if err != nil {
		r.stats.saveErrors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSave(backend, duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordAutopilotCycle tracks autopilot cycles and errors.
func (r *Recorder) RecordAutopilotCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.autopilotCycles++
	if err != nil {
		r.stats.autopilotErrors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordAutopilot(duration, err)
	}
}

// Snapshot is a copy of the recorder's counters.
type Snapshot struct {
	Weeks            int
	NoOpWeeks        int
	Games            int
	PhaseTransitions map[string]int
	Dispatches       map[string]int
	Rejections       map[string]int
	Saves            int
	SaveErrors       int
	LastSaveLatency  time.Duration
	AutopilotCycles  int
	AutopilotErrors  int
}

func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		Weeks:            r.stats.weeks,
		NoOpWeeks:        r.stats.noOpWeeks,
		Games:            r.stats.games,
		PhaseTransitions: copyCounts(r.stats.phaseTransitions),
		Dispatches:       copyCounts(r.stats.dispatches),
		Rejections:       copyCounts(r.stats.rejections),
		Saves:            r.stats.saves,
		SaveErrors:       r.stats.saveErrors,
		LastSaveLatency:  r.stats.lastSaveLatency,
		AutopilotCycles:  r.stats.autopilotCycles,
		AutopilotErrors:  r.stats.autopilotErrors,
	}
}

func copyCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func dispatchOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errs.IsRecoverable(err), errors.Is(err, errs.ErrInvalidTransition):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
