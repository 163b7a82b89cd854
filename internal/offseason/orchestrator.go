// Package offseason runs the twelve-phase offseason state machine between a
// Super Bowl and the next preseason.
package offseason

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/league-sim-service/internal/calendar"
	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
	domainoffseason "github.com/preston-bernstein/league-sim-service/internal/domain/offseason"
	"github.com/preston-bernstein/league-sim-service/internal/domain/players"
	"github.com/preston-bernstein/league-sim-service/internal/errs"
	"github.com/preston-bernstein/league-sim-service/internal/logging"
	"github.com/preston-bernstein/league-sim-service/internal/standings"
)

// DraftClassFunc produces the prospects eligible for the given year's draft.
type DraftClassFunc func(seed uint64, year int) []players.Prospect

// Orchestrator holds collaborators only; league state flows through each call.
type Orchestrator struct {
	engine     standings.Engine
	cap        CapCalculator
	draftClass DraftClassFunc
	logger     *slog.Logger
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithStandingsEngine swaps the comparator used for draft order.
func WithStandingsEngine(engine standings.Engine) Option {
	return func(o *Orchestrator) { o.engine = engine }
}

// WithCapCalculator sets the salary-cap collaborator.
func WithCapCalculator(cap CapCalculator) Option {
	return func(o *Orchestrator) { o.cap = cap }
}

// WithDraftClass sets the generator for the next year's prospects.
func WithDraftClass(fn DraftClassFunc) Option {
	return func(o *Orchestrator) { o.draftClass = fn }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// New constructs an Orchestrator. Without a cap calculator every move is
// allowed and the cap delta is the salary change.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		engine: standings.NewEngine(nil),
		cap:    uncapped{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Initialize opens a new cycle on a snapshot whose season is fully resolved:
// every regular-season game final and a champion crowned. The returned
// snapshot is in Offseason sub-phase 1 with draft order and awards computed.
func (o *Orchestrator) Initialize(state league.State) (league.State, error) {
	cal := state.Calendar
	if cal.Phase != calendar.PhasePlayoffs || cal.Week != calendar.LastPlayoffWeek {
		return state, errs.New(errs.CodeInvalidTransition, "offseason can only start after week %d, calendar is at %s", calendar.LastPlayoffWeek, cal.Label())
	}
	if remaining := state.Schedule.Remaining(); remaining > 0 {
		return state, errs.New(errs.CodeInvalidTransition, "%d regular-season games are unplayed", remaining)
	}
	if state.Playoffs == nil || !state.Playoffs.IsComplete() {
		return state, errs.New(errs.CodeInvalidTransition, "playoffs have no champion yet")
	}

	next := state.Clone()
	next.Calendar = calendar.Advance(cal)
	next.Offseason = &domainoffseason.State{
		Year:         cal.Year,
		CurrentPhase: domainoffseason.PhaseSeasonEnd,
		Tasks:        make(map[domainoffseason.Phase][]domainoffseason.Task),
		Visited:      []domainoffseason.Phase{domainoffseason.PhaseSeasonEnd},
	}
	next.Offseason.Data.DraftOrder = draftOrder(o.engine, next.Teams, *next.Playoffs)

	if err := o.enter(&next); err != nil {
		return state, err
	}
	logging.Info(o.logger, "offseason started",
		logging.FieldYear, cal.Year,
		"champion", next.Playoffs.ChampionID,
	)
	return next, nil
}

// EnterPhase regenerates the current phase's data. Re-entering is safe: only
// the phase's own generated fields are overwritten and completed tasks stay
// completed.
func (o *Orchestrator) EnterPhase(state league.State, phase domainoffseason.Phase) (league.State, error) {
	if state.Offseason == nil {
		return state, errs.New(errs.CodeInvalidTransition, "league is not in the offseason")
	}
	if phase != state.Offseason.CurrentPhase {
		return state, errs.WrongPhase(string(phase), string(state.Offseason.CurrentPhase))
	}
	next := state.Clone()
	if err := o.enter(&next); err != nil {
		return state, err
	}
	return next, nil
}

// AdvanceToNextPhase moves to the next phase once every required task of
// the current one is complete. Advancing past SeasonStart archives the
// cycle and rolls the calendar into next year's preseason.
func (o *Orchestrator) AdvanceToNextPhase(state league.State) (league.State, error) {
	if state.Offseason == nil {
		return state, errs.New(errs.CodeInvalidTransition, "league is not in the offseason")
	}
	cur := state.Offseason.CurrentPhase
	if pending := state.Offseason.PendingRequired(); len(pending) > 0 {
		ids := make([]string, 0, len(pending))
		for _, t := range pending {
			ids = append(ids, t.ID)
		}
		return state, errs.WithMetadata(errs.CodeInvalidTransition,
			"phase "+string(cur)+" has incomplete required tasks",
			map[string]string{"phase": string(cur), "tasks": strings.Join(ids, ",")})
	}

	if cur == domainoffseason.PhaseSeasonStart {
		next, err := o.rollover(state)
		if err != nil {
			return state, err
		}
		logging.Info(o.logger, "offseason complete",
			logging.FieldYear, state.Offseason.Year,
			logging.FieldPhase, string(next.Calendar.Phase),
		)
		return next, nil
	}

	phase, ok := cur.Next()
	if !ok {
		return state, errs.New(errs.CodeDataIntegrity, "unknown offseason phase %q", cur)
	}
	next := state.Clone()
	next.Calendar = calendar.Advance(next.Calendar)
	next.Offseason.CurrentPhase = phase
	next.Offseason.Visited = append(next.Offseason.Visited, phase)
	if err := o.enter(&next); err != nil {
		return state, err
	}
	logging.Info(o.logger, "offseason phase entered",
		logging.FieldYear, next.Offseason.Year,
		logging.FieldSubphase, string(phase),
	)
	return next, nil
}

// Progress reports how far through the cycle the state is, 0 at SeasonEnd.
func Progress(state domainoffseason.State) float64 {
	idx := state.CurrentPhase.Index()
	if idx == 0 {
		return 0
	}
	return float64(idx-1) / float64(len(domainoffseason.Phases)) * 100
}
