// Package schedule builds regular-season schedules.
package schedule

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/preston-bernstein/league-sim-service/internal/calendar"
	"github.com/preston-bernstein/league-sim-service/internal/domain/games"
)

// GamesPerTeam is the regular-season game count for every team.
const GamesPerTeam = 17

// byeWeeks is how many trailing weeks absorb the last two rounds so that
// every team gets exactly one bye.
const byeWeeks = 3

// Generate builds a schedule where each team plays GamesPerTeam games in
// calendar.RegularSeasonWeeks weeks, at most once per week, with one bye.
// The same ids, year and seed always produce the same schedule.
func Generate(teamIDs []string, year int, seed uint64) (games.Schedule, error) {
	n := len(teamIDs)
	if n%2 != 0 {
		return games.Schedule{}, fmt.Errorf("schedule needs an even team count, got %d", n)
	}
	if n-1 < GamesPerTeam {
		return games.Schedule{}, fmt.Errorf("schedule needs at least %d teams, got %d", GamesPerTeam+1, n)
	}
	if GamesPerTeam+1 != calendar.RegularSeasonWeeks {
		return games.Schedule{}, fmt.Errorf("schedule expects %d weeks", GamesPerTeam+1)
	}

	order := slices.Clone(teamIDs)
	rng := rand.New(rand.NewPCG(seed, uint64(year)))
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	rounds := circleRounds(order, GamesPerTeam)
	out := games.Schedule{Year: year}

	fullWeeks := GamesPerTeam - 2
	for r := 0; r < fullWeeks; r++ {
		for _, p := range rounds[r] {
			out.Games = append(out.Games, newGame(year, r+1, p))
		}
	}

	colored := colorTail(rounds[fullWeeks], rounds[fullWeeks+1])
	for _, cp := range colored {
		out.Games = append(out.Games, newGame(year, fullWeeks+1+cp.color, cp.pair))
	}

	slices.SortStableFunc(out.Games, func(a, b games.Game) int { return a.Week - b.Week })
	return out, nil
}

type pair struct {
	home, away string
}

// circleRounds returns the first count rounds of a round robin built with
// the circle method. The fixed team alternates home and away by round; the
// rotating slots alternate by position, which keeps home counts within one.
func circleRounds(ids []string, count int) [][]pair {
	n := len(ids)
	arr := slices.Clone(ids)
	rounds := make([][]pair, 0, count)
	for r := 0; r < count; r++ {
		round := make([]pair, 0, n/2)
		for i := 0; i < n/2; i++ {
			a, b := arr[i], arr[n-1-i]
			if (i == 0 && r%2 == 1) || (i > 0 && i%2 == 1) {
				a, b = b, a
			}
			round = append(round, pair{home: a, away: b})
		}
		rounds = append(rounds, round)
		// Keep arr[0] fixed and rotate the rest one step.
		last := arr[n-1]
		copy(arr[2:], arr[1:n-1])
		arr[1] = last
	}
	return rounds
}

type coloredPair struct {
	pair  pair
	color int
}

// colorTail spreads two perfect matchings across byeWeeks weeks. Their union
// is a set of even cycles; a proper 3-edge-colouring of each cycle leaves
// every team exactly one week off.
func colorTail(first, second []pair) []coloredPair {
	partner := func(m []pair) map[string]pair {
		idx := make(map[string]pair, len(m)*2)
		for _, p := range m {
			idx[p.home] = p
			idx[p.away] = p
		}
		return idx
	}
	m1, m2 := partner(first), partner(second)

	var teams []string
	for _, p := range first {
		teams = append(teams, p.home, p.away)
	}
	slices.Sort(teams)

	visited := make(map[string]bool, len(teams))
	var out []coloredPair
	for _, start := range teams {
		if visited[start] {
			continue
		}
		var cycle []pair
		cur, useFirst := start, true
		for {
			visited[cur] = true
			edge := m2[cur]
			if useFirst {
				edge = m1[cur]
			}
			cycle = append(cycle, edge)
			cur = other(edge, cur)
			useFirst = !useFirst
			if cur == start {
				break
			}
		}

		colors := make([]int, len(cycle))
		for k := range cycle {
			for step := 0; step < byeWeeks; step++ {
				c := (k + step) % byeWeeks
				if k > 0 && c == colors[k-1] {
					continue
				}
				if k == len(cycle)-1 && k > 0 && c == colors[0] {
					continue
				}
				colors[k] = c
				break
			}
			out = append(out, coloredPair{pair: cycle[k], color: colors[k]})
		}
	}
	return out
}

func other(p pair, team string) string {
	if p.home == team {
		return p.away
	}
	return p.home
}

func newGame(year, week int, p pair) games.Game {
	return games.Game{
		ID:         games.NewGameID(year, week, p.home, p.away),
		Week:       week,
		HomeTeamID: p.home,
		AwayTeamID: p.away,
	}
}
