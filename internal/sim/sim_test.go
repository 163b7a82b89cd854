package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/league-sim-service/internal/domain/players"
	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/league-sim-service/internal/fixture"
)

func TestSimulateIsDeterministic(t *testing.T) {
	state, err := fixture.New(fixture.Options{Seed: 42, Year: 2025})
	require.NoError(t, err)
	s := New()

	a, err := s.Simulate(context.Background(), 1, "phi", "dal", state)
	require.NoError(t, err)
	b, err := s.Simulate(context.Background(), 1, "phi", "dal", state)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other := state.Clone()
	other.Seed = 43
	var differs bool
	for week := 1; week <= 10 && !differs; week++ {
		x, _ := s.Simulate(context.Background(), week, "phi", "dal", state)
		y, _ := s.Simulate(context.Background(), week, "phi", "dal", other)
		differs = x.HomeScore != y.HomeScore || x.AwayScore != y.AwayScore
	}
	assert.True(t, differs, "different seeds should eventually change scores")
}

func TestSimulateScoresAndInjuriesAreValid(t *testing.T) {
	state, err := fixture.New(fixture.Options{Seed: 9, Year: 2025})
	require.NoError(t, err)
	s := New(WithInjuryRate(1))

	res, err := s.Simulate(context.Background(), 3, "kc", "buf", state)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.HomeScore, 0)
	assert.GreaterOrEqual(t, res.AwayScore, 0)
	require.Len(t, res.Injuries, 2)
	for _, inj := range res.Injuries {
		team, ok := state.Team(inj.TeamID)
		require.True(t, ok)
		assert.GreaterOrEqual(t, team.PlayerIndex(inj.PlayerID), 0)
		assert.Positive(t, inj.WeeksRemaining)
		assert.LessOrEqual(t, inj.WeeksRemaining, maxInjuryWeeks)
	}
}

func TestSimulateUnknownTeam(t *testing.T) {
	state, err := fixture.New(fixture.Options{Seed: 1, Year: 2025})
	require.NoError(t, err)
	_, err = New().Simulate(context.Background(), 1, "phi", "nope", state)
	assert.Error(t, err)
}

func TestSimulateHonorsCancellation(t *testing.T) {
	state, err := fixture.New(fixture.Options{Seed: 1, Year: 2025})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New().Simulate(ctx, 1, "phi", "dal", state)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRatingsSkipInjuredPlayers(t *testing.T) {
	team := teams.Team{Roster: []players.Player{
		{ID: "a", Position: players.PosQB, Overall: 90},
		{ID: "b", Position: players.PosWR, Overall: 70},
		{ID: "c", Position: players.PosCB, Overall: 80},
	}}
	off, def := Ratings(team)
	assert.InDelta(t, 80, off, 0.001)
	assert.InDelta(t, 80, def, 0.001)

	team.Roster[0].Injury = &players.Injury{WeeksRemaining: 2}
	off, _ = Ratings(team)
	assert.InDelta(t, 70, off, 0.001)
}
