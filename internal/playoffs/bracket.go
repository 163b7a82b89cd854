package playoffs

import (
	"fmt"

	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/league-sim-service/internal/standings"
)

// Bracket is the derived playoff tree for one season. Matchups are appended
// round by round as earlier rounds complete.
type Bracket struct {
	Year       int               `json:"year"`
	Seeds      map[string][]Seed `json:"seeds"`
	Matchups   []Matchup         `json:"matchups"`
	ChampionID string            `json:"championId,omitempty"`
}

// NewBracket seeds both conferences and generates the wild card round.
func NewBracket(year int, seeder Seeder, table standings.Standings) (Bracket, error) {
	b := Bracket{Year: year, Seeds: make(map[string][]Seed, len(teams.Conferences))}
	for _, conf := range teams.Conferences {
		seeds, err := seeder.SeedConference(table, conf)
		if err != nil {
			return Bracket{}, err
		}
		round, err := GenerateWildCardRound(year, seeds)
		if err != nil {
			return Bracket{}, err
		}
		b.Seeds[conf] = seeds
		b.Matchups = append(b.Matchups, round...)
	}
	return b, nil
}

// Clone returns a deep copy.
func (b Bracket) Clone() Bracket {
	out := Bracket{Year: b.Year, ChampionID: b.ChampionID}
	if b.Seeds != nil {
		out.Seeds = make(map[string][]Seed, len(b.Seeds))
		for conf, seeds := range b.Seeds {
			out.Seeds[conf] = append([]Seed(nil), seeds...)
		}
	}
	if b.Matchups != nil {
		out.Matchups = make([]Matchup, len(b.Matchups))
		for i, m := range b.Matchups {
			out.Matchups[i] = m.Clone()
		}
	}
	return out
}

// RoundMatchups returns the matchups of one round.
func (b Bracket) RoundMatchups(r Round) []Matchup {
	var out []Matchup
	for _, m := range b.Matchups {
		if m.Round == r {
			out = append(out, m)
		}
	}
	return out
}

// LatestRound returns the most recently generated round.
func (b Bracket) LatestRound() (Round, bool) {
	if len(b.Matchups) == 0 {
		return "", false
	}
	return b.Matchups[len(b.Matchups)-1].Round, true
}

// Pending returns the incomplete matchups of the latest round.
func (b Bracket) Pending() []Matchup {
	latest, ok := b.LatestRound()
	if !ok {
		return nil
	}
	var out []Matchup
	for _, m := range b.RoundMatchups(latest) {
		if !m.IsComplete {
			out = append(out, m)
		}
	}
	return out
}

// Record stores a final score. Recording an already complete matchup is a
// no-op so retries are safe. Ties are rejected; callers resolve overtime.
func (b Bracket) Record(matchupID string, homeScore, awayScore int) (Bracket, error) {
	idx := -1
	for i, m := range b.Matchups {
		if m.ID == matchupID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return b, fmt.Errorf("matchup %s not found", matchupID)
	}
	if b.Matchups[idx].IsComplete {
		return b, nil
	}
	if homeScore == awayScore {
		return b, fmt.Errorf("matchup %s cannot end tied", matchupID)
	}

	out := b.Clone()
	m := out.Matchups[idx]
	m.HomeScore = &homeScore
	m.AwayScore = &awayScore
	m.IsComplete = true
	m.WinnerID = m.HomeTeamID
	if awayScore > homeScore {
		m.WinnerID = m.AwayTeamID
	}
	out.Matchups[idx] = m
	return out, nil
}

// Advance generates the next round once the latest one is complete, or
// crowns the champion after the Super Bowl.
func (b Bracket) Advance() (Bracket, error) {
	latest, ok := b.LatestRound()
	if !ok {
		return b, fmt.Errorf("bracket has no matchups")
	}
	if pending := b.Pending(); len(pending) > 0 {
		return b, fmt.Errorf("round %s has %d unplayed matchups", latest, len(pending))
	}

	out := b.Clone()
	switch latest {
	case RoundSuperBowl:
		out.ChampionID = b.RoundMatchups(RoundSuperBowl)[0].WinnerID
	case RoundConference:
		var afc, nfc Matchup
		for _, m := range b.RoundMatchups(RoundConference) {
			switch m.Conference {
			case teams.ConferenceAFC:
				afc = m
			case teams.ConferenceNFC:
				nfc = m
			}
		}
		sb, err := SuperBowl(b.Year, afc, nfc)
		if err != nil {
			return b, err
		}
		out.Matchups = append(out.Matchups, sb)
	default:
		for _, conf := range teams.Conferences {
			var prior []Matchup
			for _, m := range b.RoundMatchups(latest) {
				if m.Conference == conf {
					prior = append(prior, m)
				}
			}
			next, err := AdvanceRound(b.Year, prior, b.Seeds[conf])
			if err != nil {
				return b, err
			}
			out.Matchups = append(out.Matchups, next...)
		}
	}
	return out, nil
}

// IsComplete reports whether a champion has been crowned.
func (b Bracket) IsComplete() bool {
	return b.ChampionID != ""
}

// TeamIDs returns every seeded team.
func (b Bracket) TeamIDs() []string {
	var out []string
	for _, conf := range teams.Conferences {
		for _, s := range b.Seeds[conf] {
			out = append(out, s.TeamID)
		}
	}
	return out
}

// EliminationRounds maps each playoff team to how far it went: 0 for a wild
// card loss through 3 for a Super Bowl loss, 4 for the champion. Teams still
// alive are omitted unless they are champion.
func (b Bracket) EliminationRounds() map[string]int {
	out := make(map[string]int)
	for i, r := range Rounds {
		for _, m := range b.RoundMatchups(r) {
			if loser := m.LoserID(); loser != "" {
				out[loser] = i
			}
		}
	}
	if b.ChampionID != "" {
		out[b.ChampionID] = len(Rounds)
	}
	return out
}
