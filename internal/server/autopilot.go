package server

import (
	"context"

	"github.com/preston-bernstein/league-sim-service/internal/autopilot"
)

// Autopilot defines the minimal background-loop behavior needed by the server.
type Autopilot interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() autopilot.Status
}
