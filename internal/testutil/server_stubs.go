package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/preston-bernstein/league-sim-service/internal/autopilot"
)

// StubAutopilot implements the server's Autopilot for tests.
type StubAutopilot struct {
	mu         sync.Mutex
	StartCalls int
	StopCalls  int
	Err        error
	StatusVal  autopilot.Status
}

func (p *StubAutopilot) Start(context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.StartCalls++
}

func (p *StubAutopilot) Stop(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.StopCalls++
	return p.Err
}

func (p *StubAutopilot) Status() autopilot.Status {
	return p.StatusVal
}

// Calls returns the start and stop counts.
func (p *StubAutopilot) Calls() (starts, stops int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.StartCalls, p.StopCalls
}

// StubHTTPServer stands in for the league API listener. ListenAndServe
// returns ListenErr immediately. When Block is set, Shutdown waits for it
// to close or for the context to expire.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Block       chan struct{}

	mu        sync.Mutex
	listens   int
	shutdowns int
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	s.listens++
	s.mu.Unlock()
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shutdowns++
	s.mu.Unlock()
	if s.Block == nil {
		return s.ShutdownErr
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.Block:
		return s.ShutdownErr
	}
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NewServeMux()
	}
	return s.HandlerVal
}

// Calls returns the listen and shutdown counts.
func (s *StubHTTPServer) Calls() (listens, shutdowns int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listens, s.shutdowns
}
