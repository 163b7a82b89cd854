package offseason

import (
	"cmp"
	"slices"

	domainoffseason "github.com/preston-bernstein/league-sim-service/internal/domain/offseason"
	"github.com/preston-bernstein/league-sim-service/internal/domain/players"
	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/league-sim-service/internal/playoffs"
	"github.com/preston-bernstein/league-sim-service/internal/standings"
)

// draftOrder lists teams worst to best: non-playoff teams first, then
// playoff teams by the round they were eliminated in, champion last. Within
// a group the standings comparator decides, reversed.
func draftOrder(engine standings.Engine, ts []teams.Team, bracket playoffs.Bracket) []string {
	elim := bracket.EliminationRounds()
	group := func(teamID string) int {
		if r, ok := elim[teamID]; ok {
			return r
		}
		return -1
	}

	entries := engine.League(ts)
	slices.SortStableFunc(entries, func(a, b standings.Entry) int {
		if c := cmp.Compare(group(a.TeamID), group(b.TeamID)); c != 0 {
			return c
		}
		return engine.Compare(b, a)
	})

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.TeamID)
	}
	return out
}

type candidate struct {
	player players.Player
	team   teams.Team
	score  float64
}

// computeAwards picks honors from ratings weighted by team success.
func computeAwards(engine standings.Engine, ts []teams.Team, bracket *playoffs.Bracket) *domainoffseason.Awards {
	awards := &domainoffseason.Awards{}
	if bracket != nil {
		awards.ChampionID = bracket.ChampionID
	}

	awards.MVP = best(ts, func(p players.Player) bool { return p.Position.IsOffense() && p.Position != players.PosOL },
		func(p players.Player, t teams.Team) float64 {
			bonus := 0.0
			if p.Position == players.PosQB {
				bonus = 5
			}
			return float64(p.Overall) + 20*t.Record.WinPct() + bonus
		})
	awards.OffensivePlayer = best(ts, func(p players.Player) bool {
		return p.Position.IsOffense() && p.Position != players.PosQB && p.Position != players.PosOL
	}, weighted(10))
	awards.DefensivePlayer = best(ts, func(p players.Player) bool { return p.Position.IsDefense() }, weighted(10))
	awards.RookieOfTheYear = best(ts, func(p players.Player) bool { return p.Experience == 0 }, weighted(5))

	if ranked := engine.League(ts); len(ranked) > 0 {
		for _, t := range ts {
			if t.ID == ranked[0].TeamID {
				awards.CoachOfTheYear = t.HeadCoach.Name
				awards.CoachOfTheYearTeamID = t.ID
			}
		}
	}
	return awards
}

func weighted(teamWeight float64) func(players.Player, teams.Team) float64 {
	return func(p players.Player, t teams.Team) float64 {
		return float64(p.Overall) + teamWeight*t.Record.WinPct()
	}
}

func best(ts []teams.Team, eligible func(players.Player) bool, score func(players.Player, teams.Team) float64) *domainoffseason.AwardWinner {
	var top *candidate
	for _, t := range ts {
		for _, p := range t.Roster {
			if !eligible(p) {
				continue
			}
			c := candidate{player: p, team: t, score: score(p, t)}
			if top == nil || c.score > top.score || (c.score == top.score && c.player.ID < top.player.ID) {
				top = &c
			}
		}
	}
	if top == nil {
		return nil
	}
	return &domainoffseason.AwardWinner{
		PlayerID:   top.player.ID,
		PlayerName: top.player.Name(),
		TeamID:     top.team.ID,
		Position:   string(top.player.Position),
	}
}
