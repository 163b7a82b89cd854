// Package sim provides the default game simulator: a seeded rating model
// that turns roster strength into scores and occasional injuries.
package sim

import (
	"cmp"
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/preston-bernstein/league-sim-service/internal/domain/games"
	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
	"github.com/preston-bernstein/league-sim-service/internal/domain/players"
	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
)

// Model constants.
const (
	DefaultInjuryRate = 0.15
	baseScore         = 21.0
	homeEdge          = 1.5
	ratingWeight      = 0.7
	scoreSpread       = 9.0
	maxInjuryWeeks    = 8
)

var injuryDescriptions = []string{
	"Ankle sprain", "Hamstring strain", "Concussion", "Knee sprain", "Shoulder injury",
	"High ankle sprain", "Broken hand", "Groin strain", "Calf strain", "Torn ACL",
}

// Simulator plays games deterministically: the same league seed, year,
// week and pairing always produce the same result.
type Simulator struct {
	injuryRate float64
}

// Option customizes a Simulator.
type Option func(*Simulator)

// WithInjuryRate sets the per-team chance of an injury in each game.
func WithInjuryRate(rate float64) Option {
	return func(s *Simulator) { s.injuryRate = rate }
}

// New constructs a Simulator.
func New(opts ...Option) *Simulator {
	s := &Simulator{injuryRate: DefaultInjuryRate}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate plays homeTeamID against awayTeamID.
func (s *Simulator) Simulate(ctx context.Context, week int, homeTeamID, awayTeamID string, state league.State) (games.Result, error) {
	if err := ctx.Err(); err != nil {
		return games.Result{}, err
	}
	home, ok := state.Team(homeTeamID)
	if !ok {
		return games.Result{}, fmt.Errorf("home team %s not found", homeTeamID)
	}
	away, ok := state.Team(awayTeamID)
	if !ok {
		return games.Result{}, fmt.Errorf("away team %s not found", awayTeamID)
	}

	rng := gameRand(state.Seed, state.Calendar.Year, week, homeTeamID, awayTeamID)
	homeOff, homeDef := Ratings(home)
	awayOff, awayDef := Ratings(away)

	res := games.Result{
		HomeScore: score(rng, baseScore+homeEdge+ratingWeight*(homeOff-awayDef)),
		AwayScore: score(rng, baseScore+ratingWeight*(awayOff-homeDef)),
	}
	for _, t := range []teams.Team{home, away} {
		if inj, ok := s.injury(rng, t); ok {
			res.Injuries = append(res.Injuries, inj)
		}
	}
	return res, nil
}

func gameRand(seed uint64, year, week int, home, away string) *rand.Rand {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%d|%s|%s", year, week, home, away)
	return rand.New(rand.NewPCG(seed, h.Sum64()))
}

// score samples a football-shaped total around mean: touchdowns and field
// goals, never negative.
func score(rng *rand.Rand, mean float64) int {
	raw := math.Max(0, mean+rng.NormFloat64()*scoreSpread)
	tds := int(raw / 7)
	rest := raw - float64(tds*7)
	fgs := int(rest / 3)
	if rng.Float64() < 0.1 && tds > 0 {
		return tds*7 + fgs*3 - 1
	}
	return tds*7 + fgs*3
}

func (s *Simulator) injury(rng *rand.Rand, t teams.Team) (games.InjuryOutcome, bool) {
	if rng.Float64() >= s.injuryRate {
		return games.InjuryOutcome{}, false
	}
	var healthy []players.Player
	for _, p := range t.Roster {
		if !p.IsInjured() && p.Position != players.PosK && p.Position != players.PosP {
			healthy = append(healthy, p)
		}
	}
	if len(healthy) == 0 {
		return games.InjuryOutcome{}, false
	}
	p := healthy[rng.IntN(len(healthy))]
	return games.InjuryOutcome{
		TeamID:         t.ID,
		PlayerID:       p.ID,
		Description:    injuryDescriptions[rng.IntN(len(injuryDescriptions))],
		WeeksRemaining: 1 + rng.IntN(maxInjuryWeeks),
	}, true
}

// Ratings returns a team's offensive and defensive strength: the mean
// overall of its best healthy players on each side.
func Ratings(t teams.Team) (offense, defense float64) {
	var off, def []int
	for _, p := range t.Roster {
		if p.IsInjured() {
			continue
		}
		switch {
		case p.Position.IsOffense():
			off = append(off, p.Overall)
		case p.Position.IsDefense():
			def = append(def, p.Overall)
		}
	}
	return topMean(off, 11), topMean(def, 11)
}

func topMean(values []int, n int) float64 {
	if len(values) == 0 {
		return 0
	}
	slices.SortFunc(values, func(a, b int) int { return cmp.Compare(b, a) })
	top := values[:min(n, len(values))]
	sum := 0
	for _, v := range top {
		sum += v
	}
	return float64(sum) / float64(len(top))
}
