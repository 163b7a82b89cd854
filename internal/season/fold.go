package season

import (
	"github.com/preston-bernstein/league-sim-service/internal/domain/games"
	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
	"github.com/preston-bernstein/league-sim-service/internal/domain/players"
	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/league-sim-service/internal/errs"
)

// fold applies results to a private clone. Callers discard the clone on error.
type fold struct {
	state    *league.State
	injuries []games.InjuryOutcome
}

func newFold(state *league.State) *fold {
	return &fold{state: state}
}

func (f *fold) team(id string) (*teams.Team, error) {
	idx := f.state.TeamIndex(id)
	if idx < 0 {
		return nil, errs.WithMetadata(errs.CodeDataIntegrity, "team not found", map[string]string{"teamId": id})
	}
	return &f.state.Teams[idx], nil
}

func (f *fold) checkTeams(ids ...string) error {
	for _, id := range ids {
		if _, err := f.team(id); err != nil {
			return err
		}
	}
	return nil
}

// applyGame marks the game final and updates both records. A game that is
// already complete is left alone.
func (f *fold) applyGame(gameID string, res games.Result) error {
	idx := f.state.Schedule.Index(gameID)
	if idx < 0 {
		return errs.WithMetadata(errs.CodeDataIntegrity, "game not found", map[string]string{"gameId": gameID})
	}
	g := f.state.Schedule.Games[idx]
	if g.IsComplete {
		return nil
	}
	home, err := f.team(g.HomeTeamID)
	if err != nil {
		return err
	}
	away, err := f.team(g.AwayTeamID)
	if err != nil {
		return err
	}
	if res.HomeScore < 0 || res.AwayScore < 0 {
		return errs.WithMetadata(errs.CodeDataIntegrity, "negative score", map[string]string{"gameId": gameID})
	}
	if err := f.applyInjuries(g.HomeTeamID, g.AwayTeamID, res.Injuries); err != nil {
		return err
	}

	f.state.Schedule.Games[idx] = g.Complete(res.HomeScore, res.AwayScore)
	ApplyScore(&home.Record, &away.Record, res.HomeScore, res.AwayScore)
	return nil
}

// applyInjuries validates and records new injuries for players in the game.
func (f *fold) applyInjuries(homeID, awayID string, outcomes []games.InjuryOutcome) error {
	for _, inj := range outcomes {
		if inj.TeamID != homeID && inj.TeamID != awayID {
			return errs.WithMetadata(errs.CodeDataIntegrity, "injured player's team did not play", map[string]string{"teamId": inj.TeamID})
		}
		team, err := f.team(inj.TeamID)
		if err != nil {
			return err
		}
		pidx := team.PlayerIndex(inj.PlayerID)
		if pidx < 0 {
			return errs.WithMetadata(errs.CodeDataIntegrity, "player not found", map[string]string{"teamId": inj.TeamID, "playerId": inj.PlayerID})
		}
		if inj.WeeksRemaining <= 0 {
			continue
		}
		p := &team.Roster[pidx]
		if p.Injury != nil && p.Injury.WeeksRemaining >= inj.WeeksRemaining {
			continue
		}
		p.Injury = &players.Injury{
			Description:    inj.Description,
			WeeksRemaining: inj.WeeksRemaining,
			Severity:       players.SeverityFor(inj.WeeksRemaining),
		}
		f.injuries = append(f.injuries, inj)
	}
	return nil
}

// finishInjuries decrements every injured player in the league, including
// those hurt this week, and returns new injuries and recovered player ids.
func (f *fold) finishInjuries() ([]games.InjuryOutcome, []string) {
	var recovered []string
	heal := func(p *players.Player) {
		if p.Injury == nil {
			return
		}
		if p.Injury.WeeksRemaining > 0 {
			p.Injury.WeeksRemaining--
		}
		if p.Injury.WeeksRemaining <= 0 {
			p.Injury = nil
			recovered = append(recovered, p.ID)
		}
	}
	for ti := range f.state.Teams {
		for pi := range f.state.Teams[ti].Roster {
			heal(&f.state.Teams[ti].Roster[pi])
		}
	}
	for i := range f.state.FreeAgents {
		heal(&f.state.FreeAgents[i])
	}
	return f.injuries, recovered
}

// ApplyScore folds one final score into both records.
func ApplyScore(home, away *teams.Record, homeScore, awayScore int) {
	home.PointsFor += homeScore
	home.PointsAgainst += awayScore
	away.PointsFor += awayScore
	away.PointsAgainst += homeScore

	switch {
	case homeScore == awayScore:
		home.Ties++
		away.Ties++
		home.Streak = 0
		away.Streak = 0
	case homeScore > awayScore:
		win(home)
		lose(away)
	default:
		win(away)
		lose(home)
	}
}

func win(r *teams.Record) {
	r.Wins++
	if r.Streak > 0 {
		r.Streak++
	} else {
		r.Streak = 1
	}
}

func lose(r *teams.Record) {
	r.Losses++
	if r.Streak < 0 {
		r.Streak--
	} else {
		r.Streak = -1
	}
}
