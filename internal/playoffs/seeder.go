package playoffs

import (
	"fmt"
	"slices"

	"github.com/preston-bernstein/league-sim-service/internal/standings"
)

// Seeder derives playoff seeds and rounds from standings.
type Seeder struct {
	engine standings.Engine
}

// NewSeeder builds a Seeder ranking ties with the engine's comparator.
func NewSeeder(engine standings.Engine) Seeder {
	return Seeder{engine: engine}
}

// SeedConference returns the seven seeds: division winners take 1-4, the
// best remaining teams take 5-7.
func (s Seeder) SeedConference(table standings.Standings, conference string) ([]Seed, error) {
	divisions := table.DivisionNames(conference)
	if len(divisions) != DivisionWinnerSeeds {
		return nil, fmt.Errorf("conference %s has %d divisions, want %d", conference, len(divisions), DivisionWinnerSeeds)
	}

	var winners, rest []standings.Entry
	for _, div := range divisions {
		entries := table.Division(conference, div)
		if len(entries) == 0 {
			return nil, fmt.Errorf("division %s is empty", div)
		}
		ranked := s.engine.Rank(entries)
		winners = append(winners, ranked[0])
		rest = append(rest, ranked[1:]...)
	}
	if len(rest) < SeedsPerConference-DivisionWinnerSeeds {
		return nil, fmt.Errorf("conference %s has too few teams for wild cards", conference)
	}

	winners = s.engine.Rank(winners)
	wildCards := s.engine.Rank(rest)[:SeedsPerConference-DivisionWinnerSeeds]

	seeds := make([]Seed, 0, SeedsPerConference)
	for _, e := range append(winners, wildCards...) {
		seeds = append(seeds, Seed{Seed: len(seeds) + 1, TeamID: e.TeamID, Conference: conference})
	}
	return seeds, nil
}

// GenerateWildCardRound pairs 2v7, 3v6 and 4v5; seed 1 has a bye. The lower
// seed number is always at home.
func GenerateWildCardRound(year int, seeds []Seed) ([]Matchup, error) {
	if len(seeds) != SeedsPerConference {
		return nil, fmt.Errorf("wild card round needs %d seeds, got %d", SeedsPerConference, len(seeds))
	}
	bySeed := indexSeeds(seeds)
	pairs := [][2]int{{2, 7}, {3, 6}, {4, 5}}
	out := make([]Matchup, 0, len(pairs))
	for i, p := range pairs {
		home, ok1 := bySeed[p[0]]
		away, ok2 := bySeed[p[1]]
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("missing seed %d or %d", p[0], p[1])
		}
		out = append(out, newMatchup(year, RoundWildCard, home.Conference, i+1, home, away))
	}
	return out, nil
}

// AdvanceRound reseeds the survivors of prior (plus the bye team after the
// wild card round): the best remaining seed hosts the worst, repeatedly.
func AdvanceRound(year int, prior []Matchup, seeds []Seed) ([]Matchup, error) {
	if len(prior) == 0 {
		return nil, fmt.Errorf("no prior matchups to advance")
	}
	round := prior[0].Round
	next, ok := round.Next()
	if !ok || next == RoundSuperBowl {
		return nil, fmt.Errorf("round %s does not advance within a conference", round)
	}

	bySeed := indexSeeds(seeds)
	var survivors []Seed
	if round == RoundWildCard {
		bye, ok := bySeed[1]
		if !ok {
			return nil, fmt.Errorf("missing bye seed")
		}
		survivors = append(survivors, bye)
	}
	for _, m := range prior {
		if m.Round != round {
			return nil, fmt.Errorf("mixed rounds %s and %s", round, m.Round)
		}
		if !m.IsComplete {
			return nil, fmt.Errorf("matchup %s is not complete", m.ID)
		}
		s, ok := bySeed[m.WinnerSeed()]
		if !ok || s.TeamID != m.WinnerID {
			return nil, fmt.Errorf("winner %s of %s is not seeded", m.WinnerID, m.ID)
		}
		survivors = append(survivors, s)
	}

	capacity := matchupsPerDivRound
	if next == RoundConference {
		capacity = matchupsPerConfRound
	}
	if len(survivors) != capacity*2 {
		return nil, fmt.Errorf("round %s needs %d teams, got %d", next, capacity*2, len(survivors))
	}

	slices.SortFunc(survivors, func(a, b Seed) int { return a.Seed - b.Seed })
	out := make([]Matchup, 0, capacity)
	for i := 0; i < capacity; i++ {
		home := survivors[i]
		away := survivors[len(survivors)-1-i]
		out = append(out, newMatchup(year, next, home.Conference, i+1, home, away))
	}
	return out, nil
}

// SuperBowl pairs the two conference champions at a neutral site. The AFC
// champion is listed as the nominal home team; no reseeding applies.
func SuperBowl(year int, afc, nfc Matchup) (Matchup, error) {
	if afc.Round != RoundConference || nfc.Round != RoundConference {
		return Matchup{}, fmt.Errorf("super bowl needs two conference championships")
	}
	if !afc.IsComplete || !nfc.IsComplete {
		return Matchup{}, fmt.Errorf("conference championships are not complete")
	}
	return Matchup{
		ID:         matchupID(year, RoundSuperBowl, "", 1),
		Round:      RoundSuperBowl,
		HomeSeed:   afc.WinnerSeed(),
		AwaySeed:   nfc.WinnerSeed(),
		HomeTeamID: afc.WinnerID,
		AwayTeamID: nfc.WinnerID,
	}, nil
}

func newMatchup(year int, round Round, conference string, n int, home, away Seed) Matchup {
	return Matchup{
		ID:         matchupID(year, round, conference, n),
		Round:      round,
		Conference: conference,
		HomeSeed:   home.Seed,
		AwaySeed:   away.Seed,
		HomeTeamID: home.TeamID,
		AwayTeamID: away.TeamID,
	}
}

func indexSeeds(seeds []Seed) map[int]Seed {
	out := make(map[int]Seed, len(seeds))
	for _, s := range seeds {
		out[s.Seed] = s
	}
	return out
}
