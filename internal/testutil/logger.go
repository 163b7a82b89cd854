package testutil

import (
	"bytes"
	"log/slog"

	"github.com/preston-bernstein/league-sim-service/internal/logging"
)

// NewBufferLogger returns a debug-level text logger and the buffer it
// writes to.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.NewLogger(logging.Config{Output: &buf, Level: "debug"}), &buf
}
