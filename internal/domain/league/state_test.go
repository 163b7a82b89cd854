package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/league-sim-service/internal/calendar"
	"github.com/preston-bernstein/league-sim-service/internal/domain/games"
	"github.com/preston-bernstein/league-sim-service/internal/domain/offseason"
	"github.com/preston-bernstein/league-sim-service/internal/domain/players"
	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/league-sim-service/internal/playoffs"
)

func sample() State {
	return State{
		Calendar: calendar.Calendar{Year: 2025, Week: 1, Phase: calendar.PhaseRegularSeason},
		Teams: []teams.Team{
			{ID: "A", Roster: []players.Player{{ID: "a1", Injury: &players.Injury{WeeksRemaining: 2}}}},
			{ID: "B"},
		},
		Schedule: games.Schedule{Year: 2025, Games: []games.Game{
			{ID: "g1", Week: 1, HomeTeamID: "A", AwayTeamID: "B"},
		}},
		Playoffs:   &playoffs.Bracket{Year: 2025, Matchups: []playoffs.Matchup{{ID: "m"}}},
		Prospects:  []players.Prospect{{ID: "p1"}},
		FreeAgents: []players.Player{{ID: "fa1"}},
	}
}

func TestCloneSharesNothing(t *testing.T) {
	s := sample()
	c := s.Clone()

	c.Teams[0].Roster[0].Injury.WeeksRemaining = 0
	c.Teams[1].Record.Wins = 5
	c.Schedule.Games[0] = c.Schedule.Games[0].Complete(3, 0)
	c.Playoffs.Matchups[0].WinnerID = "A"
	c.Prospects[0].ID = "changed"
	c.FreeAgents[0].ID = "changed"

	assert.Equal(t, 2, s.Teams[0].Roster[0].Injury.WeeksRemaining)
	assert.Zero(t, s.Teams[1].Record.Wins)
	assert.False(t, s.Schedule.Games[0].IsComplete)
	assert.Empty(t, s.Playoffs.Matchups[0].WinnerID)
	assert.Equal(t, "p1", s.Prospects[0].ID)
	assert.Equal(t, "fa1", s.FreeAgents[0].ID)
}

func TestLookups(t *testing.T) {
	s := sample()
	team, ok := s.Team("B")
	require.True(t, ok)
	assert.Equal(t, "B", team.ID)
	_, ok = s.Team("Z")
	assert.False(t, ok)
	assert.Equal(t, []string{"A", "B"}, s.TeamIDs())
	assert.Equal(t, 0, s.ProspectIndex("p1"))
	assert.Equal(t, -1, s.FreeAgentIndex("nope"))
}

func TestValidate(t *testing.T) {
	s := sample()
	require.NoError(t, s.Validate())

	bad := s.Clone()
	bad.Schedule.Games[0].AwayTeamID = "ghost"
	assert.Error(t, bad.Validate())

	bad = s.Clone()
	bad.Teams[1].ID = "A"
	assert.Error(t, bad.Validate())

	bad = s.Clone()
	bad.Offseason = &offseason.State{CurrentPhase: offseason.PhaseDraft}
	assert.Error(t, bad.Validate())

	sub := 6
	ok := s.Clone()
	ok.Calendar = calendar.Calendar{Year: 2025, Week: 1, Phase: calendar.PhaseOffseason, OffseasonSubphase: &sub}
	ok.Offseason = &offseason.State{CurrentPhase: offseason.PhaseDraft}
	assert.NoError(t, ok.Validate())
}
