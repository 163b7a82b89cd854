// Package fixture builds a deterministic 32-team league for new saves,
// demos and tests.
package fixture

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/preston-bernstein/league-sim-service/internal/calendar"
	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
	"github.com/preston-bernstein/league-sim-service/internal/domain/players"
	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/league-sim-service/internal/schedule"
)

// Sizes of the generated pools.
const (
	DraftClassSize = 256
	FreeAgentCount = 48
)

// depthChart is the 53-man roster template.
var depthChart = []struct {
	pos   players.Position
	count int
}{
	{players.PosQB, 3}, {players.PosRB, 4}, {players.PosWR, 6}, {players.PosTE, 3},
	{players.PosOL, 9}, {players.PosDL, 9}, {players.PosLB, 7}, {players.PosCB, 6},
	{players.PosS, 4}, {players.PosK, 1}, {players.PosP, 1},
}

// Options tunes a generated league.
type Options struct {
	Seed       uint64
	Year       int
	UserTeamID string
}

// New builds a league at week 1 of the preseason with full rosters, a
// regular-season schedule, a draft class and a free-agent pool.
func New(opts Options) (league.State, error) {
	if opts.Year == 0 {
		return league.State{}, fmt.Errorf("fixture year is required")
	}
	state := league.State{
		Seed:       opts.Seed,
		UserTeamID: opts.UserTeamID,
		Calendar:   calendar.New(opts.Year),
		Teams:      Teams(opts.Seed),
	}
	if opts.UserTeamID != "" && state.TeamIndex(opts.UserTeamID) < 0 {
		return league.State{}, fmt.Errorf("unknown user team %q", opts.UserTeamID)
	}

	sched, err := schedule.Generate(state.TeamIDs(), opts.Year, opts.Seed)
	if err != nil {
		return league.State{}, fmt.Errorf("generate schedule: %w", err)
	}
	state.Schedule = sched
	state.Prospects = DraftClass(opts.Seed, opts.Year)
	state.FreeAgents = freeAgents(opts.Seed)
	return state, nil
}

// TeamID returns the id used for an abbreviation.
func TeamID(abbreviation string) string {
	return strings.ToLower(abbreviation)
}

// Teams returns every franchise with a seeded 53-man roster and head coach.
func Teams(seed uint64) []teams.Team {
	out := make([]teams.Team, 0, len(franchises))
	for i, f := range franchises {
		rng := rand.New(rand.NewPCG(seed, uint64(i)+1))
		id := TeamID(f.abbreviation)
		strength := rng.IntN(9) - 4
		out = append(out, teams.Team{
			ID:           id,
			Name:         f.name,
			City:         f.city,
			Abbreviation: f.abbreviation,
			Conference:   f.conference,
			Division:     f.division,
			HeadCoach: teams.Coach{
				Name:    pick(rng, firstNames) + " " + pick(rng, lastNames),
				Seasons: 1 + rng.IntN(8),
			},
			Roster: roster(rng, id, strength),
		})
	}
	return out
}

func roster(rng *rand.Rand, teamID string, strength int) []players.Player {
	out := make([]players.Player, 0, teams.RosterLimit)
	n := 0
	for _, slot := range depthChart {
		for depth := 0; depth < slot.count; depth++ {
			n++
			starter := depth < starters(slot.pos)
			base := 62
			if starter {
				base = 72
			}
			out = append(out, veteran(rng, fmt.Sprintf("%s-%02d", teamID, n), slot.pos, base+strength))
		}
	}
	return out
}

func starters(pos players.Position) int {
	switch pos {
	case players.PosWR, players.PosCB:
		return 3
	case players.PosOL:
		return 5
	case players.PosDL:
		return 4
	case players.PosLB, players.PosS, players.PosRB:
		return 2
	}
	return 1
}

func veteran(rng *rand.Rand, id string, pos players.Position, base int) players.Player {
	age := 22 + rng.IntN(12)
	overall := clamp(base+rng.IntN(15)-5, 45, 97)
	return players.Player{
		ID:         id,
		FirstName:  pick(rng, firstNames),
		LastName:   pick(rng, lastNames),
		Position:   pos,
		Age:        age,
		Experience: age - 22,
		Overall:    overall,
		Potential:  clamp(overall+rng.IntN(10)-max(0, age-27), overall, 99),
		Contract: players.Contract{
			Salary:         Salary(overall),
			YearsRemaining: 1 + rng.IntN(5),
		},
	}
}

// Salary is the market rate, in thousands, for a player of the given rating.
func Salary(overall int) int {
	d := max(0, overall-55)
	return max(795, d*d*10)
}

// DraftClass generates the prospects for one year's draft.
func DraftClass(seed uint64, year int) []players.Prospect {
	rng := rand.New(rand.NewPCG(seed^0xd1af7, uint64(year)))
	out := make([]players.Prospect, 0, DraftClassSize)
	for i := 0; i < DraftClassSize; i++ {
		pos := players.Positions[rng.IntN(len(players.Positions))]
		overall := clamp(48+rng.IntN(25), 40, 80)
		out = append(out, players.Prospect{
			ID:        fmt.Sprintf("dp%d-%03d", year, i+1),
			FirstName: pick(rng, firstNames),
			LastName:  pick(rng, lastNames),
			Position:  pos,
			College:   pick(rng, colleges),
			Age:       21 + rng.IntN(3),
			Overall:   overall,
			Potential: clamp(overall+5+rng.IntN(20), overall, 99),
		})
	}
	return out
}

func freeAgents(seed uint64) []players.Player {
	rng := rand.New(rand.NewPCG(seed^0xfa, 0))
	out := make([]players.Player, 0, FreeAgentCount)
	for i := 0; i < FreeAgentCount; i++ {
		pos := players.Positions[rng.IntN(len(players.Positions))]
		p := veteran(rng, fmt.Sprintf("fa-%03d", i+1), pos, 60)
		p.Contract = players.Contract{}
		out = append(out, p)
	}
	return out
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.IntN(len(from))]
}

func clamp(v, lo, hi int) int {
	return min(hi, max(lo, v))
}
