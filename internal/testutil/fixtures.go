package testutil

import (
	"testing"

	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
	"github.com/preston-bernstein/league-sim-service/internal/fixture"
)

// SampleYear is the league year used by SampleLeague.
const SampleYear = 2025

// SampleLeague returns a deterministic fixture league at preseason week 1
// with "det" as the user team.
func SampleLeague(t *testing.T) league.State {
	t.Helper()
	state, err := fixture.New(fixture.Options{Seed: 42, Year: SampleYear, UserTeamID: "det"})
	if err != nil {
		t.Fatalf("failed to build sample league: %v", err)
	}
	return state
}
