// Package season drives regular-season and playoff weeks: it calls the game
// simulator, folds results into the league snapshot and moves the calendar.
package season

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/league-sim-service/internal/calendar"
	"github.com/preston-bernstein/league-sim-service/internal/domain/games"
	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
	"github.com/preston-bernstein/league-sim-service/internal/errs"
	"github.com/preston-bernstein/league-sim-service/internal/logging"
	"github.com/preston-bernstein/league-sim-service/internal/playoffs"
	"github.com/preston-bernstein/league-sim-service/internal/standings"
)

// Simulator plays one game. Implementations must be deterministic for a
// given league seed so folds can be replayed.
type Simulator interface {
	Simulate(ctx context.Context, week int, homeTeamID, awayTeamID string, state league.State) (games.Result, error)
}

// OffseasonStarter opens the offseason once the Super Bowl is final. It
// receives the snapshot still on the last playoff week and must return one
// already in the offseason.
type OffseasonStarter interface {
	Initialize(state league.State) (league.State, error)
}

// Report summarizes one simulated week.
type Report struct {
	Year      int                   `json:"year"`
	Week      int                   `json:"week"`
	Phase     calendar.Phase        `json:"phase"`
	NoOp      bool                  `json:"noOp"`
	Games     []games.Game          `json:"games,omitempty"`
	Matchups  []playoffs.Matchup    `json:"matchups,omitempty"`
	Injuries  []games.InjuryOutcome `json:"injuries,omitempty"`
	Recovered []string              `json:"recovered,omitempty"`
	Champion  string                `json:"champion,omitempty"`
}

// Orchestrator simulates weeks. It holds collaborators only, never league
// state; every call maps one snapshot to the next.
type Orchestrator struct {
	sim     Simulator
	starter OffseasonStarter
	engine  standings.Engine
	seeder  playoffs.Seeder
	logger  *slog.Logger
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithStandingsEngine swaps the tie-break comparator used for seeding.
func WithStandingsEngine(engine standings.Engine) Option {
	return func(o *Orchestrator) {
		o.engine = engine
		o.seeder = playoffs.NewSeeder(engine)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// New constructs an Orchestrator.
func New(sim Simulator, starter OffseasonStarter, opts ...Option) *Orchestrator {
	engine := standings.NewEngine(nil)
	o := &Orchestrator{
		sim:     sim,
		starter: starter,
		engine:  engine,
		seeder:  playoffs.NewSeeder(engine),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SimulateWeek plays every unplayed game of the current week, folds the
// results and advances the calendar. On any error the input snapshot is
// returned untouched.
func (o *Orchestrator) SimulateWeek(ctx context.Context, state league.State) (league.State, Report, error) {
	cal := state.Calendar
	report := Report{Year: cal.Year, Week: cal.Week, Phase: cal.Phase}
	if o.sim == nil {
		return state, report, errs.New(errs.CodeInvalidTransition, "no game simulator configured")
	}

	var (
		next league.State
		err  error
	)
	switch cal.Phase {
	case calendar.PhaseRegularSeason:
		next, err = o.regularSeasonWeek(ctx, state, &report)
	case calendar.PhasePlayoffs:
		next, err = o.playoffWeek(ctx, state, &report)
	default:
		err = errs.New(errs.CodeInvalidTransition, "cannot simulate a week during %s", cal.Phase)
	}
	if err != nil {
		logging.Warn(o.logger, "week simulation aborted",
			logging.CalendarFields(cal.Year, cal.Week, string(cal.Phase), "error", err)...)
		return state, report, err
	}
	if !report.NoOp {
		logging.Info(o.logger, "week simulated",
			logging.CalendarFields(cal.Year, cal.Week, string(cal.Phase),
				logging.FieldCount, len(report.Games)+len(report.Matchups))...)
	}
	return next, report, nil
}

func (o *Orchestrator) regularSeasonWeek(ctx context.Context, state league.State, report *Report) (league.State, error) {
	week := state.Calendar.Week
	pending := state.Schedule.Unplayed(week)
	if len(pending) == 0 {
		report.NoOp = true
		return state, nil
	}

	results := make([]games.Result, 0, len(pending))
	for _, g := range pending {
		if err := ctx.Err(); err != nil {
			return state, err
		}
		res, err := o.sim.Simulate(ctx, week, g.HomeTeamID, g.AwayTeamID, state)
		if err != nil {
			return state, err
		}
		results = append(results, res)
	}

	next := state.Clone()
	f := newFold(&next)
	for i, g := range pending {
		if err := f.applyGame(g.ID, results[i]); err != nil {
			return state, err
		}
	}
	report.Injuries, report.Recovered = f.finishInjuries()
	for _, g := range pending {
		report.Games = append(report.Games, next.Schedule.Games[next.Schedule.Index(g.ID)])
	}

	if week == calendar.RegularSeasonWeeks {
		if remaining := next.Schedule.Remaining(); remaining > 0 {
			return state, errs.New(errs.CodeInvalidTransition, "regular season ends with %d unplayed games", remaining)
		}
		bracket, err := playoffs.NewBracket(next.Calendar.Year, o.seeder, o.engine.Compute(next.Teams))
		if err != nil {
			return state, errs.Wrap(errs.CodeDataIntegrity, "seed playoffs", err)
		}
		next.Playoffs = &bracket
		logging.Info(o.logger, "playoff field set", logging.FieldYear, next.Calendar.Year, logging.FieldCount, len(bracket.TeamIDs()))
	}

	next.Calendar = calendar.Advance(next.Calendar)
	return next, nil
}

func (o *Orchestrator) playoffWeek(ctx context.Context, state league.State, report *Report) (league.State, error) {
	week := state.Calendar.Week
	if state.Playoffs == nil {
		return state, errs.New(errs.CodeMissingDependency, "playoff bracket has not been seeded")
	}
	round, ok := playoffs.RoundForWeek(week)
	if !ok {
		return state, errs.New(errs.CodeDataIntegrity, "week %d has no playoff round", week)
	}
	latest, _ := state.Playoffs.LatestRound()
	pending := state.Playoffs.Pending()
	if latest != round || len(pending) == 0 {
		if latest == round || state.Playoffs.IsComplete() {
			report.NoOp = true
			return state, nil
		}
		return state, errs.New(errs.CodeDataIntegrity, "bracket is at %s but week %d plays %s", latest, week, round)
	}

	results := make([]games.Result, 0, len(pending))
	for _, m := range pending {
		if err := ctx.Err(); err != nil {
			return state, err
		}
		res, err := o.sim.Simulate(ctx, week, m.HomeTeamID, m.AwayTeamID, state)
		if err != nil {
			return state, err
		}
		results = append(results, resolveOvertime(res))
	}

	next := state.Clone()
	f := newFold(&next)
	bracket := *next.Playoffs
	for i, m := range pending {
		if err := f.checkTeams(m.HomeTeamID, m.AwayTeamID); err != nil {
			return state, err
		}
		if err := f.applyInjuries(m.HomeTeamID, m.AwayTeamID, results[i].Injuries); err != nil {
			return state, err
		}
		var err error
		bracket, err = bracket.Record(m.ID, results[i].HomeScore, results[i].AwayScore)
		if err != nil {
			return state, errs.Wrap(errs.CodeDataIntegrity, "record playoff result", err)
		}
	}
	report.Injuries, report.Recovered = f.finishInjuries()
	report.Matchups = bracket.RoundMatchups(round)

	bracket, err := bracket.Advance()
	if err != nil {
		return state, errs.Wrap(errs.CodeDataIntegrity, "advance bracket", err)
	}
	next.Playoffs = &bracket
	report.Champion = bracket.ChampionID

	if week == calendar.LastPlayoffWeek {
		if o.starter == nil {
			return state, errs.New(errs.CodeInvalidTransition, "no offseason starter configured")
		}
		started, err := o.starter.Initialize(next)
		if err != nil {
			return state, err
		}
		return started, nil
	}

	next.Calendar = calendar.Advance(next.Calendar)
	return next, nil
}

// resolveOvertime breaks a playoff tie in favor of the home side with a
// field goal.
func resolveOvertime(res games.Result) games.Result {
	if res.HomeScore == res.AwayScore {
		res.HomeScore += 3
	}
	return res
}

// AdvancePreseasonWeek moves through the preseason. Entering the regular
// season requires a schedule for the new year.
func AdvancePreseasonWeek(state league.State) (league.State, error) {
	if state.Calendar.Phase != calendar.PhasePreseason {
		return state, errs.New(errs.CodeInvalidTransition, "cannot advance preseason during %s", state.Calendar.Phase)
	}
	nextCal := calendar.Advance(state.Calendar)
	if nextCal.Phase == calendar.PhaseRegularSeason {
		if state.Schedule.Year != nextCal.Year || len(state.Schedule.Games) == 0 {
			return state, errs.New(errs.CodeMissingDependency, "no regular-season schedule for %d", nextCal.Year)
		}
	}
	next := state.Clone()
	next.Calendar = nextCal
	return next, nil
}
