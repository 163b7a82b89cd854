package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/league-sim-service/internal/calendar"
	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
)

// ErrNoLeague is returned by StubStepper.Current when State is unset.
var ErrNoLeague = errors.New("no league")

// StubStepper is a test double for autopilot.Stepper. Each Step advances
// the calendar one week.
type StubStepper struct {
	mu     sync.Mutex
	State  *league.State
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// Current returns the held state.
func (s *StubStepper) Current() (league.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.State == nil {
		return league.State{}, ErrNoLeague
	}
	return s.State.Clone(), nil
}

// Step records the call and advances the calendar unless Err is set.
func (s *StubStepper) Step(ctx context.Context) (league.State, error) {
	_ = ctx
	s.Calls.Add(1)
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return league.State{}, s.Err
	}
	if s.State == nil {
		return league.State{}, ErrNoLeague
	}
	s.State.Calendar = calendar.Advance(s.State.Calendar)
	return s.State.Clone(), nil
}
