package playoffs

import (
	"fmt"

	"github.com/preston-bernstein/league-sim-service/internal/calendar"
)

// Round identifies a playoff round.
type Round string

const (
	RoundWildCard   Round = "WILD_CARD"
	RoundDivisional Round = "DIVISIONAL"
	RoundConference Round = "CONFERENCE"
	RoundSuperBowl  Round = "SUPER_BOWL"
)

// Rounds lists the rounds in the order they are played.
var Rounds = []Round{RoundWildCard, RoundDivisional, RoundConference, RoundSuperBowl}

const (
	SeedsPerConference   = 7
	DivisionWinnerSeeds  = 4
	TotalMatchups        = 13
	matchupsPerDivRound  = 2
	matchupsPerConfRound = 1
)

// RoundForWeek maps a playoff calendar week to its round.
func RoundForWeek(week int) (Round, bool) {
	idx := week - calendar.FirstPlayoffWeek
	if idx < 0 || idx >= len(Rounds) {
		return "", false
	}
	return Rounds[idx], true
}

// Next returns the round after r.
func (r Round) Next() (Round, bool) {
	for i, cur := range Rounds {
		if cur == r && i+1 < len(Rounds) {
			return Rounds[i+1], true
		}
	}
	return "", false
}

// Seed is a playoff team's rank within its conference.
type Seed struct {
	Seed       int    `json:"seed"`
	TeamID     string `json:"teamId"`
	Conference string `json:"conference"`
}

// Matchup is one playoff game. Conference is empty for the Super Bowl.
type Matchup struct {
	ID         string `json:"id"`
	Round      Round  `json:"round"`
	Conference string `json:"conference,omitempty"`
	HomeSeed   int    `json:"homeSeed"`
	AwaySeed   int    `json:"awaySeed"`
	HomeTeamID string `json:"homeTeamId"`
	AwayTeamID string `json:"awayTeamId"`
	HomeScore  *int   `json:"homeScore"`
	AwayScore  *int   `json:"awayScore"`
	WinnerID   string `json:"winnerId,omitempty"`
	IsComplete bool   `json:"isComplete"`
}

func matchupID(year int, round Round, conference string, n int) string {
	if conference == "" {
		return fmt.Sprintf("%d-%s", year, round)
	}
	return fmt.Sprintf("%d-%s-%s-%d", year, round, conference, n)
}

// LoserID returns the eliminated team, or "" if unplayed.
func (m Matchup) LoserID() string {
	if !m.IsComplete {
		return ""
	}
	if m.WinnerID == m.HomeTeamID {
		return m.AwayTeamID
	}
	return m.HomeTeamID
}

// WinnerSeed returns the seed number of the winner.
func (m Matchup) WinnerSeed() int {
	if m.WinnerID == m.HomeTeamID {
		return m.HomeSeed
	}
	return m.AwaySeed
}

// Clone returns a copy sharing no pointers with m.
func (m Matchup) Clone() Matchup {
	if m.HomeScore != nil {
		v := *m.HomeScore
		m.HomeScore = &v
	}
	if m.AwayScore != nil {
		v := *m.AwayScore
		m.AwayScore = &v
	}
	return m
}
