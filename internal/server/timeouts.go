package server

import "time"

// Simulating to a far phase runs every remaining week inside one request,
// so writes get more room than reads.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 2 * time.Minute
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// shutdownTimeout is a var so tests can shorten it.
var shutdownTimeout = 15 * time.Second
