package league

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/league-sim-service/internal/calendar"
	domainleague "github.com/preston-bernstein/league-sim-service/internal/domain/league"
	domainoffseason "github.com/preston-bernstein/league-sim-service/internal/domain/offseason"
	"github.com/preston-bernstein/league-sim-service/internal/errs"
	"github.com/preston-bernstein/league-sim-service/internal/fixture"
	"github.com/preston-bernstein/league-sim-service/internal/metrics"
	"github.com/preston-bernstein/league-sim-service/internal/saves"
	"github.com/preston-bernstein/league-sim-service/internal/store"
)

type failingSaves struct {
	saves.Store
	err error
}

func (f failingSaves) Save(context.Context, string, domainleague.State) (saves.Revision, error) {
	return saves.Revision{}, f.err
}

type countingSaves struct {
	saves.Store
	saved int
}

func (c *countingSaves) Save(ctx context.Context, slot string, state domainleague.State) (saves.Revision, error) {
	c.saved++
	return c.Store.Save(ctx, slot, state)
}

func newTestService(t *testing.T) (*Service, saves.Store, *metrics.Recorder) {
	t.Helper()
	saveStore := saves.NewFSStore(t.TempDir(), 3)
	rec := metrics.NewRecorder()
	svc := NewService(store.NewMemoryStore(), saveStore, WithMetrics(rec), WithBackend(saves.BackendFS))
	return svc, saveStore, rec
}

func newLeague(t *testing.T, svc *Service) domainleague.State {
	t.Helper()
	state, err := svc.NewLeague(context.Background(), fixture.Options{Seed: 11, Year: 2025, UserTeamID: "det"})
	if err != nil {
		t.Fatalf("new league: %v", err)
	}
	return state
}

func TestCurrentWithoutLeague(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.Current(); !errors.Is(err, errs.ErrMissingDependency) {
		t.Fatalf("expected missing dependency, got %v", err)
	}
	if _, _, err := svc.SimulateWeek(context.Background()); !errors.Is(err, ErrNoLeague) {
		t.Fatalf("expected ErrNoLeague, got %v", err)
	}
}

func TestNewLeaguePersistsToSlot(t *testing.T) {
	svc, saveStore, _ := newTestService(t)
	created := newLeague(t, svc)

	other := NewService(store.NewMemoryStore(), saveStore)
	loaded, err := other.Load(context.Background(), DefaultSlot)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Seed != created.Seed || loaded.UserTeamID != "det" {
		t.Fatalf("loaded league does not match created one")
	}
	if other.Slot() != DefaultSlot {
		t.Fatalf("expected active slot %s, got %s", DefaultSlot, other.Slot())
	}
}

func TestPreseasonIntoFirstWeek(t *testing.T) {
	svc, saveStore, rec := newTestService(t)
	newLeague(t, svc)
	ctx := context.Background()

	var state domainleague.State
	var err error
	for i := 0; i < calendar.PreseasonWeeks; i++ {
		state, err = svc.AdvancePreseason(ctx)
		if err != nil {
			t.Fatalf("advance preseason %d: %v", i, err)
		}
	}
	if state.Calendar.Phase != calendar.PhaseRegularSeason || state.Calendar.Week != 1 {
		t.Fatalf("expected regular season week 1, got %s", state.Calendar.Label())
	}

	state, report, err := svc.SimulateWeek(ctx)
	if err != nil {
		t.Fatalf("simulate week: %v", err)
	}
	if state.Calendar.Week != 2 || len(report.Games) == 0 {
		t.Fatalf("expected week 2 with games, got week %d and %d games", state.Calendar.Week, len(report.Games))
	}

	snap := rec.Snapshot()
	if snap.Weeks != 1 || snap.Games != len(report.Games) {
		t.Fatalf("unexpected metrics %+v", snap)
	}
	if snap.PhaseTransitions[string(calendar.PhaseRegularSeason)] != 1 {
		t.Fatalf("expected one regular season transition, got %+v", snap.PhaseTransitions)
	}

	saved, _, err := saveStore.Load(ctx, DefaultSlot)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if saved.Calendar.Week != 2 {
		t.Fatalf("expected saved snapshot at week 2, got %d", saved.Calendar.Week)
	}
}

func TestRejectedTransitionLeavesStateUntouched(t *testing.T) {
	svc, saveStore, _ := newTestService(t)
	newLeague(t, svc)
	ctx := context.Background()

	_, _, err := svc.SimulateWeek(ctx)
	if !errors.Is(err, errs.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition during preseason, got %v", err)
	}
	current, _ := svc.Current()
	if current.Calendar.Phase != calendar.PhasePreseason || current.Calendar.Week != 1 {
		t.Fatalf("expected state unchanged, got %s", current.Calendar.Label())
	}
	slots, err := saveStore.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slots) != 1 || slots[0].Revisions != 1 {
		t.Fatalf("expected no new revision, got %+v", slots)
	}
}

func TestSaveFailureKeepsPreviousState(t *testing.T) {
	ms := store.NewMemoryStore()
	svc := NewService(ms, failingSaves{err: errors.New("disk full")})
	state, err := fixture.New(fixture.Options{Seed: 3, Year: 2025})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	ms.Set(state)

	if _, err := svc.AdvancePreseason(context.Background()); err == nil {
		t.Fatalf("expected save error")
	}
	current, _ := svc.Current()
	if current.Calendar.Week != 1 {
		t.Fatalf("expected week 1 after failed save, got %d", current.Calendar.Week)
	}
}

func TestSimulateToPhaseRunsAFullYear(t *testing.T) {
	svc, _, rec := newTestService(t)
	newLeague(t, svc)
	ctx := context.Background()

	state, err := svc.SimulateToPhase(ctx, calendar.PhaseOffseason)
	if err != nil {
		t.Fatalf("simulate to offseason: %v", err)
	}
	if state.Offseason == nil || state.Offseason.CurrentPhase != domainoffseason.PhaseSeasonEnd {
		t.Fatalf("expected season end, got %+v", state.Calendar)
	}

	bracket, err := svc.Bracket()
	if err != nil {
		t.Fatalf("bracket: %v", err)
	}
	if !bracket.IsComplete() {
		t.Fatalf("expected crowned champion")
	}

	view, err := svc.Offseason()
	if err != nil {
		t.Fatalf("offseason view: %v", err)
	}
	if view.Progress != 0 {
		t.Fatalf("expected progress 0 at season end, got %v", view.Progress)
	}

	state, err = svc.SimulateToPhase(ctx, calendar.PhasePreseason)
	if err != nil {
		t.Fatalf("simulate to preseason: %v", err)
	}
	if state.Calendar.Year != 2026 || len(state.History) != 1 {
		t.Fatalf("expected 2026 preseason with history, got %s and %d summaries", state.Calendar.Label(), len(state.History))
	}
	if rec.Snapshot().Dispatches[string(domainoffseason.ActionAutoComplete)] != len(domainoffseason.Phases) {
		t.Fatalf("expected one auto-complete per offseason phase, got %+v", rec.Snapshot().Dispatches)
	}
}

func TestSimulateToPhaseNoOpWhenAlreadyThere(t *testing.T) {
	svc, _, _ := newTestService(t)
	created := newLeague(t, svc)

	state, err := svc.SimulateToPhase(context.Background(), calendar.PhasePreseason)
	if err != nil {
		t.Fatalf("simulate to preseason: %v", err)
	}
	if state.Calendar != created.Calendar {
		t.Fatalf("expected unchanged calendar")
	}
	if _, err := svc.SimulateToPhase(context.Background(), calendar.Phase("HALFTIME")); !errors.Is(err, errs.ErrInvalidAction) {
		t.Fatalf("expected invalid action for unknown phase, got %v", err)
	}
}

func TestDispatchOutsideOffseasonIsRejected(t *testing.T) {
	svc, _, rec := newTestService(t)
	newLeague(t, svc)

	_, err := svc.Dispatch(context.Background(), domainoffseason.CompleteTask{Phase: domainoffseason.PhaseDraft, TaskID: "draft-complete"})
	if err == nil {
		t.Fatalf("expected dispatch outside offseason to fail")
	}
	if rec.Snapshot().Rejections[string(domainoffseason.ActionCompleteTask)] != 1 {
		t.Fatalf("expected rejection to be recorded")
	}
	if _, err := svc.Offseason(); !errors.Is(err, errs.ErrWrongPhase) {
		t.Fatalf("expected wrong phase for offseason view, got %v", err)
	}
}

func TestTeamsAndStandings(t *testing.T) {
	svc, _, _ := newTestService(t)
	newLeague(t, svc)

	all, err := svc.Teams()
	if err != nil || len(all) != 32 {
		t.Fatalf("expected 32 teams, got %d (%v)", len(all), err)
	}
	det, err := svc.Team("det")
	if err != nil || det.ID != "det" {
		t.Fatalf("expected det, got %+v (%v)", det, err)
	}
	if _, err := svc.Team("nope"); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}

	table, err := svc.Standings()
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(table.Conferences) != 2 {
		t.Fatalf("expected two conferences, got %d", len(table.Conferences))
	}
	if _, err := svc.Bracket(); !errors.Is(err, errs.ErrMissingDependency) {
		t.Fatalf("expected no bracket in preseason, got %v", err)
	}
}

func TestCompletedWeekIsNotSavedAgain(t *testing.T) {
	counter := &countingSaves{Store: saves.NewFSStore(t.TempDir(), 10)}
	svc := NewService(store.NewMemoryStore(), counter)
	newLeague(t, svc)
	ctx := context.Background()
	for i := 0; i < calendar.PreseasonWeeks; i++ {
		if _, err := svc.AdvancePreseason(ctx); err != nil {
			t.Fatalf("advance preseason %d: %v", i, err)
		}
	}

	state, err := svc.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	for i, g := range state.Schedule.Games {
		if g.Week == 1 {
			state.Schedule.Games[i] = g.Complete(24, 17)
		}
	}
	svc.store.Set(state)
	before := counter.saved

	for i := 0; i < 3; i++ {
		got, report, err := svc.SimulateWeek(ctx)
		if err != nil {
			t.Fatalf("simulate played week: %v", err)
		}
		if !report.NoOp || got.Calendar != state.Calendar {
			t.Fatalf("expected no-op at %s, got %s (noOp=%v)", state.Calendar.Label(), got.Calendar.Label(), report.NoOp)
		}
	}
	if counter.saved != before {
		t.Fatalf("expected no saves for played week, got %d", counter.saved-before)
	}

	slots, err := svc.Slots(ctx)
	if err != nil || len(slots) != 1 {
		t.Fatalf("list slots: %v (%v)", slots, err)
	}
	if slots[0].Revisions != before {
		t.Fatalf("expected %d revisions, got %d", before, slots[0].Revisions)
	}

	if _, err := svc.Step(ctx); err != nil {
		t.Fatalf("step played week: %v", err)
	}
	if _, err := svc.SimulateToPhase(ctx, calendar.PhasePlayoffs); !errors.Is(err, errs.ErrInvalidTransition) {
		t.Fatalf("expected stuck week to be reported, got %v", err)
	}
	if counter.saved != before {
		t.Fatalf("expected no saves from step or simulate-to-phase, got %d", counter.saved-before)
	}
}

func TestNoOpTransitionsSkipSave(t *testing.T) {
	counter := &countingSaves{Store: saves.NewFSStore(t.TempDir(), 10)}
	svc := NewService(store.NewMemoryStore(), counter)
	newLeague(t, svc)
	ctx := context.Background()

	if _, err := svc.SimulateToPhase(ctx, calendar.PhasePreseason); err != nil {
		t.Fatalf("simulate to current phase: %v", err)
	}
	if counter.saved != 1 {
		t.Fatalf("expected only the creation save, got %d", counter.saved)
	}

	if _, err := svc.SimulateToPhase(ctx, calendar.PhaseOffseason); err != nil {
		t.Fatalf("simulate to offseason: %v", err)
	}
	saved := counter.saved
	state, err := svc.EnterOffseason(ctx)
	if err != nil {
		t.Fatalf("enter open offseason: %v", err)
	}
	if state.Offseason == nil || state.Offseason.CurrentPhase != domainoffseason.PhaseSeasonEnd {
		t.Fatalf("expected offseason left at season end, got %+v", state.Calendar)
	}
	if counter.saved != saved {
		t.Fatalf("expected entering an open offseason not to save")
	}
}
