// Package league sequences engine transitions for the running service and
// persists every resulting snapshot to the active save slot.
package league

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/league-sim-service/internal/calendar"
	"github.com/preston-bernstein/league-sim-service/internal/capcalc"
	domainleague "github.com/preston-bernstein/league-sim-service/internal/domain/league"
	domainoffseason "github.com/preston-bernstein/league-sim-service/internal/domain/offseason"
	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/league-sim-service/internal/errs"
	"github.com/preston-bernstein/league-sim-service/internal/fixture"
	"github.com/preston-bernstein/league-sim-service/internal/logging"
	"github.com/preston-bernstein/league-sim-service/internal/metrics"
	"github.com/preston-bernstein/league-sim-service/internal/offseason"
	"github.com/preston-bernstein/league-sim-service/internal/playoffs"
	"github.com/preston-bernstein/league-sim-service/internal/saves"
	"github.com/preston-bernstein/league-sim-service/internal/season"
	"github.com/preston-bernstein/league-sim-service/internal/sim"
	"github.com/preston-bernstein/league-sim-service/internal/standings"
)

// DefaultSlot is the save slot used when none is configured.
const DefaultSlot = "main"

// maxSteps bounds SimulateToPhase; a full league year is under 40 steps.
const maxSteps = 128

var (
	// ErrNoLeague is returned when no snapshot has been created or loaded.
	ErrNoLeague = errs.New(errs.CodeMissingDependency, "no league loaded")
	// ErrTeamNotFound is returned by Team for unknown ids.
	ErrTeamNotFound = errors.New("team not found")

	// errUnchanged lets a commit callback report that the snapshot did not
	// change, so nothing is saved.
	errUnchanged = errors.New("league unchanged")
)

// Store defines the contract for holding the current snapshot.
type Store interface {
	Current() (domainleague.State, bool)
	Set(state domainleague.State)
	Update(fn func(current domainleague.State, loaded bool) (domainleague.State, error)) (domainleague.State, error)
}

// Service coordinates league transitions using a Store and a save backend.
type Service struct {
	store     Store
	saves     saves.Store
	backend   string
	season    *season.Orchestrator
	offseason *offseason.Orchestrator
	engine    standings.Engine
	metrics   *metrics.Recorder
	logger    *slog.Logger

	slotMu sync.RWMutex
	slot   string
}

// Option customizes a Service.
type Option func(*Service)

// WithSlot sets the active save slot.
func WithSlot(slot string) Option {
	return func(s *Service) { s.slot = slot }
}

// WithBackend names the save backend in logs and metrics.
func WithBackend(name string) Option {
	return func(s *Service) { s.backend = name }
}

// WithOrchestrators replaces the default season and offseason orchestrators.
func WithOrchestrators(weeks *season.Orchestrator, off *offseason.Orchestrator) Option {
	return func(s *Service) {
		s.season = weeks
		s.offseason = off
	}
}

// WithMetrics sets the recorder.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(s *Service) { s.metrics = recorder }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService constructs a Service. Without WithOrchestrators it wires the
// seeded simulator, the salary-cap calculator and the fixture draft class.
func NewService(store Store, saveStore saves.Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		saves:  saveStore,
		engine: standings.NewEngine(nil),
		slot:   DefaultSlot,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.offseason == nil {
		s.offseason = offseason.New(
			offseason.WithCapCalculator(capcalc.New(0)),
			offseason.WithDraftClass(fixture.DraftClass),
			offseason.WithLogger(s.logger),
		)
	}
	if s.season == nil {
		s.season = season.New(sim.New(), s.offseason, season.WithLogger(s.logger))
	}
	return s
}

// Slot returns the active save slot.
func (s *Service) Slot() string {
	s.slotMu.RLock()
	defer s.slotMu.RUnlock()
	return s.slot
}

// Current returns the held snapshot.
func (s *Service) Current() (domainleague.State, error) {
	state, ok := s.store.Current()
	if !ok {
		return domainleague.State{}, ErrNoLeague
	}
	return state, nil
}

// NewLeague replaces the current league with a freshly generated one.
func (s *Service) NewLeague(ctx context.Context, opts fixture.Options) (domainleague.State, error) {
	return s.store.Update(func(domainleague.State, bool) (domainleague.State, error) {
		state, err := fixture.New(opts)
		if err != nil {
			return domainleague.State{}, errs.Wrap(errs.CodeInvalidAction, "create league", err)
		}
		if err := s.persist(ctx, state); err != nil {
			return domainleague.State{}, err
		}
		logging.Info(s.logger, "league created",
			logging.FieldYear, state.Calendar.Year,
			logging.FieldTeamID, state.UserTeamID,
			logging.FieldSlot, s.Slot(),
		)
		return state, nil
	})
}

// Load makes slot active and holds its latest revision.
func (s *Service) Load(ctx context.Context, slot string) (domainleague.State, error) {
	if s.saves == nil {
		return domainleague.State{}, fmt.Errorf("no save store configured")
	}
	state, rev, err := s.saves.Load(ctx, slot)
	if err != nil {
		return domainleague.State{}, err
	}
	s.slotMu.Lock()
	s.slot = slot
	s.slotMu.Unlock()
	s.store.Set(state)
	logging.Info(s.logger, "league loaded",
		logging.FieldSlot, slot,
		logging.FieldRevision, rev.ID,
		logging.FieldYear, state.Calendar.Year,
	)
	return state, nil
}

// Slots lists the save slots of the backend.
func (s *Service) Slots(ctx context.Context) ([]saves.SlotInfo, error) {
	if s.saves == nil {
		return nil, fmt.Errorf("no save store configured")
	}
	return s.saves.List(ctx)
}

// SimulateWeek plays the current regular-season or playoff week.
func (s *Service) SimulateWeek(ctx context.Context) (domainleague.State, season.Report, error) {
	var report season.Report
	state, err := s.commit(ctx, func(cur domainleague.State) (domainleague.State, error) {
		next, r, err := s.season.SimulateWeek(ctx, cur)
		report = r
		if err != nil {
			return cur, err
		}
		s.metrics.RecordWeek(string(r.Phase), len(r.Games)+len(r.Matchups), r.NoOp)
		if r.NoOp {
			return cur, errUnchanged
		}
		return next, nil
	})
	return state, report, err
}

// AdvancePreseason moves one preseason week forward.
func (s *Service) AdvancePreseason(ctx context.Context) (domainleague.State, error) {
	return s.commit(ctx, season.AdvancePreseasonWeek)
}

// SimulateToPhase steps the league until the calendar reaches target,
// auto-completing offseason phases on the way. It is a no-op when the
// calendar is already in target.
func (s *Service) SimulateToPhase(ctx context.Context, target calendar.Phase) (domainleague.State, error) {
	switch target {
	case calendar.PhasePreseason, calendar.PhaseRegularSeason, calendar.PhasePlayoffs, calendar.PhaseOffseason:
	default:
		return domainleague.State{}, errs.New(errs.CodeInvalidAction, "unknown phase %q", target)
	}
	return s.commit(ctx, func(cur domainleague.State) (domainleague.State, error) {
		if cur.Calendar.Phase == target {
			return cur, errUnchanged
		}
		for i := 0; cur.Calendar.Phase != target; i++ {
			if i >= maxSteps {
				return cur, errs.New(errs.CodeInvalidTransition, "phase %s not reached after %d steps", target, maxSteps)
			}
			if err := ctx.Err(); err != nil {
				return cur, err
			}
			next, err := s.step(ctx, cur)
			if errors.Is(err, errUnchanged) {
				return cur, errs.New(errs.CodeInvalidTransition, "%s has nothing left to play", cur.Calendar.Label())
			}
			if err != nil {
				return cur, err
			}
			cur = next
		}
		return cur, nil
	})
}

// Step performs the next natural transition of the league: a preseason
// week, a simulated week, or an auto-completed offseason phase.
func (s *Service) Step(ctx context.Context) (domainleague.State, error) {
	return s.commit(ctx, func(cur domainleague.State) (domainleague.State, error) {
		return s.step(ctx, cur)
	})
}

func (s *Service) step(ctx context.Context, cur domainleague.State) (domainleague.State, error) {
	switch cur.Calendar.Phase {
	case calendar.PhasePreseason:
		return season.AdvancePreseasonWeek(cur)
	case calendar.PhaseRegularSeason, calendar.PhasePlayoffs:
		next, report, err := s.season.SimulateWeek(ctx, cur)
		if err != nil {
			return cur, err
		}
		s.metrics.RecordWeek(string(report.Phase), len(report.Games)+len(report.Matchups), report.NoOp)
		if report.NoOp {
			return cur, errUnchanged
		}
		return next, nil
	case calendar.PhaseOffseason:
		if cur.Offseason == nil {
			return cur, errs.New(errs.CodeDataIntegrity, "offseason phase without offseason state")
		}
		action := domainoffseason.AutoComplete{Phase: cur.Offseason.CurrentPhase}
		next, err := s.offseason.Dispatch(cur, action)
		s.metrics.RecordDispatch(string(action.Type()), err)
		if err != nil {
			return cur, err
		}
		return s.offseason.AdvanceToNextPhase(next)
	default:
		return cur, errs.New(errs.CodeDataIntegrity, "unknown phase %q", cur.Calendar.Phase)
	}
}

// EnterOffseason opens the offseason for a season whose Super Bowl is final.
// The week-22 fold normally does this already, so a league that is in the
// offseason is returned unchanged. A league saved at week 22 by an
// orchestrator without an offseason starter is opened here.
func (s *Service) EnterOffseason(ctx context.Context) (domainleague.State, error) {
	return s.commit(ctx, func(cur domainleague.State) (domainleague.State, error) {
		if cur.Calendar.Phase == calendar.PhaseOffseason {
			return cur, errUnchanged
		}
		return s.offseason.Initialize(cur)
	})
}

// EnterPhase re-runs the entry effects of the current offseason phase.
func (s *Service) EnterPhase(ctx context.Context, phase domainoffseason.Phase) (domainleague.State, error) {
	return s.commit(ctx, func(cur domainleague.State) (domainleague.State, error) {
		return s.offseason.EnterPhase(cur, phase)
	})
}

// Dispatch applies one offseason action.
func (s *Service) Dispatch(ctx context.Context, action domainoffseason.Action) (domainleague.State, error) {
	state, err := s.commit(ctx, func(cur domainleague.State) (domainleague.State, error) {
		return s.offseason.Dispatch(cur, action)
	})
	s.metrics.RecordDispatch(string(action.Type()), err)
	if err != nil {
		logging.Warn(s.logger, "offseason action rejected",
			logging.FieldAction, string(action.Type()),
			logging.FieldSubphase, string(action.TargetPhase()),
			"error", err,
		)
	}
	return state, err
}

// AdvanceOffseason moves to the next offseason phase, or into next year's
// preseason after SeasonStart.
func (s *Service) AdvanceOffseason(ctx context.Context) (domainleague.State, error) {
	return s.commit(ctx, s.offseason.AdvanceToNextPhase)
}

// Standings ranks the current league.
func (s *Service) Standings() (standings.Standings, error) {
	state, err := s.Current()
	if err != nil {
		return standings.Standings{}, err
	}
	return s.engine.Compute(state.Teams), nil
}

// Bracket returns the current season's playoff bracket.
func (s *Service) Bracket() (playoffs.Bracket, error) {
	state, err := s.Current()
	if err != nil {
		return playoffs.Bracket{}, err
	}
	if state.Playoffs == nil {
		return playoffs.Bracket{}, errs.New(errs.CodeMissingDependency, "no playoff bracket in %s", state.Calendar.Phase)
	}
	return *state.Playoffs, nil
}

// OffseasonView is the offseason state plus completion percentage.
type OffseasonView struct {
	State    domainoffseason.State `json:"state"`
	Progress float64               `json:"progress"`
}

// Offseason returns the active offseason state.
func (s *Service) Offseason() (OffseasonView, error) {
	state, err := s.Current()
	if err != nil {
		return OffseasonView{}, err
	}
	if state.Offseason == nil {
		return OffseasonView{}, errs.WrongPhase(string(calendar.PhaseOffseason), string(state.Calendar.Phase))
	}
	return OffseasonView{State: *state.Offseason, Progress: offseason.Progress(*state.Offseason)}, nil
}

// Teams returns every team of the current league.
func (s *Service) Teams() ([]teams.Team, error) {
	state, err := s.Current()
	if err != nil {
		return nil, err
	}
	return state.Teams, nil
}

// Team returns one team by id.
func (s *Service) Team(id string) (teams.Team, error) {
	state, err := s.Current()
	if err != nil {
		return teams.Team{}, err
	}
	t, ok := state.Team(id)
	if !ok {
		return teams.Team{}, ErrTeamNotFound
	}
	return t, nil
}

// commit runs fn on the held snapshot, persists the result, then swaps it
// in. Nothing changes when fn or the save fails, and nothing is saved when
// fn returns errUnchanged.
func (s *Service) commit(ctx context.Context, fn func(domainleague.State) (domainleague.State, error)) (domainleague.State, error) {
	return s.store.Update(func(cur domainleague.State, loaded bool) (domainleague.State, error) {
		if !loaded {
			return cur, ErrNoLeague
		}
		next, err := fn(cur)
		if errors.Is(err, errUnchanged) {
			return cur, nil
		}
		if err != nil {
			return cur, err
		}
		if err := s.persist(ctx, next); err != nil {
			return cur, err
		}
		s.recordTransition(cur, next)
		return next, nil
	})
}

func (s *Service) persist(ctx context.Context, state domainleague.State) error {
	if s.saves == nil {
		return nil
	}
	slot := s.Slot()
	start := time.Now()
	rev, err := s.saves.Save(ctx, slot, state)
	s.metrics.RecordSave(s.backend, time.Since(start), err)
	if err != nil {
		logging.Error(s.logger, "save failed", err,
			logging.FieldSlot, slot,
			logging.FieldBackend, s.backend,
		)
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	logging.Info(s.logger, "league saved",
		logging.FieldSlot, slot,
		logging.FieldRevision, rev.ID,
		logging.FieldPhase, rev.Label,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *Service) recordTransition(prev, next domainleague.State) {
	if prev.Calendar.Phase != next.Calendar.Phase {
		s.metrics.RecordPhaseTransition(string(next.Calendar.Phase))
	}
	if next.Offseason != nil && (prev.Offseason == nil || prev.Offseason.CurrentPhase != next.Offseason.CurrentPhase) {
		s.metrics.RecordPhaseTransition(string(next.Offseason.CurrentPhase))
	}
}
