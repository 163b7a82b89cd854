package teams

import "github.com/preston-bernstein/league-sim-service/internal/domain/players"

// Conference names.
const (
	ConferenceAFC = "AFC"
	ConferenceNFC = "NFC"
)

// Conferences lists both conferences in display order.
var Conferences = []string{ConferenceAFC, ConferenceNFC}

// Division suffixes; a division is named "<conference> <suffix>".
var DivisionNames = []string{"East", "North", "South", "West"}

// RosterLimit is the maximum regular-season roster size.
const RosterLimit = 53

// Record is a team's win/loss line for the current season.
// Streak is positive for consecutive wins, negative for consecutive losses,
// and zero after a tie.
type Record struct {
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	Ties          int `json:"ties"`
	PointsFor     int `json:"pointsFor"`
	PointsAgainst int `json:"pointsAgainst"`
	Streak        int `json:"streak"`
}

// GamesPlayed returns wins + losses + ties.
func (r Record) GamesPlayed() int {
	return r.Wins + r.Losses + r.Ties
}

// WinPct returns the winning percentage with ties counted as half a win.
func (r Record) WinPct() float64 {
	played := r.GamesPlayed()
	if played == 0 {
		return 0
	}
	return (float64(r.Wins) + 0.5*float64(r.Ties)) / float64(played)
}

// PointDiff returns points for minus points against.
func (r Record) PointDiff() int {
	return r.PointsFor - r.PointsAgainst
}

// Coach is a team's head coach.
type Coach struct {
	Name       string `json:"name"`
	Seasons    int    `json:"seasons"`
	CareerWins int    `json:"careerWins"`
}

// Team represents a franchise and its current roster.
type Team struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	City         string           `json:"city"`
	Abbreviation string           `json:"abbreviation"`
	Conference   string           `json:"conference"`
	Division     string           `json:"division"`
	HeadCoach    Coach            `json:"headCoach"`
	Record       Record           `json:"record"`
	Roster       []players.Player `json:"roster"`
}

// FullName returns "City Name".
func (t Team) FullName() string {
	if t.City == "" {
		return t.Name
	}
	return t.City + " " + t.Name
}

// Clone returns a deep copy of the team.
func (t Team) Clone() Team {
	if t.Roster != nil {
		roster := make([]players.Player, len(t.Roster))
		for i, p := range t.Roster {
			roster[i] = p.Clone()
		}
		t.Roster = roster
	}
	return t
}

// PlayerIndex returns the roster index of the player, or -1.
func (t Team) PlayerIndex(playerID string) int {
	for i, p := range t.Roster {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// Payroll sums the salaries of the roster.
func (t Team) Payroll() int {
	total := 0
	for _, p := range t.Roster {
		total += p.Contract.Salary
	}
	return total
}
