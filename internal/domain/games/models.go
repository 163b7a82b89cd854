package games

import "fmt"

// GameStatus mirrors the shared contract for game lifecycle states.
type GameStatus string

const (
	StatusScheduled GameStatus = "SCHEDULED"
	StatusFinal     GameStatus = "FINAL"
)

// Game is one scheduled regular-season game. Once IsComplete is true both
// scores are set and exactly one of WinnerID or IsTie is set.
type Game struct {
	ID         string `json:"id"`
	Week       int    `json:"week"`
	HomeTeamID string `json:"homeTeamId"`
	AwayTeamID string `json:"awayTeamId"`
	HomeScore  *int   `json:"homeScore"`
	AwayScore  *int   `json:"awayScore"`
	IsComplete bool   `json:"isComplete"`
	WinnerID   string `json:"winnerId,omitempty"`
	IsTie      bool   `json:"isTie"`
}

// NewGameID builds the canonical id for a scheduled game.
func NewGameID(year, week int, homeID, awayID string) string {
	return fmt.Sprintf("%d-W%02d-%s-%s", year, week, homeID, awayID)
}

// Status derives the lifecycle state.
func (g Game) Status() GameStatus {
	if g.IsComplete {
		return StatusFinal
	}
	return StatusScheduled
}

// Involves reports whether the team plays in this game.
func (g Game) Involves(teamID string) bool {
	return g.HomeTeamID == teamID || g.AwayTeamID == teamID
}

// LoserID returns the losing team, or "" for ties and unplayed games.
func (g Game) LoserID() string {
	switch {
	case !g.IsComplete || g.IsTie:
		return ""
	case g.WinnerID == g.HomeTeamID:
		return g.AwayTeamID
	default:
		return g.HomeTeamID
	}
}

// Complete returns a copy of g marked final with the given score.
func (g Game) Complete(homeScore, awayScore int) Game {
	g.HomeScore = &homeScore
	g.AwayScore = &awayScore
	g.IsComplete = true
	g.IsTie = homeScore == awayScore
	g.WinnerID = ""
	if homeScore > awayScore {
		g.WinnerID = g.HomeTeamID
	} else if awayScore > homeScore {
		g.WinnerID = g.AwayTeamID
	}
	return g
}

// Clone returns a copy that shares no pointers with g.
func (g Game) Clone() Game {
	if g.HomeScore != nil {
		v := *g.HomeScore
		g.HomeScore = &v
	}
	if g.AwayScore != nil {
		v := *g.AwayScore
		g.AwayScore = &v
	}
	return g
}

// InjuryOutcome is one injury reported by the game simulator.
type InjuryOutcome struct {
	TeamID         string `json:"teamId"`
	PlayerID       string `json:"playerId"`
	Description    string `json:"description"`
	WeeksRemaining int    `json:"weeksRemaining"`
}

// Result is what the game simulator returns for one game.
type Result struct {
	HomeScore int             `json:"homeScore"`
	AwayScore int             `json:"awayScore"`
	Injuries  []InjuryOutcome `json:"injuries,omitempty"`
}

// Schedule holds a season's regular-season games ordered by week.
type Schedule struct {
	Year  int    `json:"year"`
	Games []Game `json:"games"`
}

// Clone returns a deep copy of the schedule.
func (s Schedule) Clone() Schedule {
	out := Schedule{Year: s.Year}
	if s.Games != nil {
		out.Games = make([]Game, len(s.Games))
		for i, g := range s.Games {
			out.Games[i] = g.Clone()
		}
	}
	return out
}

// Week returns the games scheduled for the given week.
func (s Schedule) Week(week int) []Game {
	var out []Game
	for _, g := range s.Games {
		if g.Week == week {
			out = append(out, g)
		}
	}
	return out
}

// Unplayed returns the incomplete games for the given week.
func (s Schedule) Unplayed(week int) []Game {
	var out []Game
	for _, g := range s.Games {
		if g.Week == week && !g.IsComplete {
			out = append(out, g)
		}
	}
	return out
}

// Remaining counts incomplete games across the whole season.
func (s Schedule) Remaining() int {
	n := 0
	for _, g := range s.Games {
		if !g.IsComplete {
			n++
		}
	}
	return n
}

// Index returns the position of the game with the given id, or -1.
func (s Schedule) Index(id string) int {
	for i, g := range s.Games {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// TeamGames returns every game the team is scheduled in.
func (s Schedule) TeamGames(teamID string) []Game {
	var out []Game
	for _, g := range s.Games {
		if g.Involves(teamID) {
			out = append(out, g)
		}
	}
	return out
}
