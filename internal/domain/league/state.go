// Package league defines the immutable league snapshot every engine
// transition consumes and produces.
package league

import (
	"fmt"

	"github.com/preston-bernstein/league-sim-service/internal/calendar"
	"github.com/preston-bernstein/league-sim-service/internal/domain/games"
	"github.com/preston-bernstein/league-sim-service/internal/domain/offseason"
	"github.com/preston-bernstein/league-sim-service/internal/domain/players"
	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/league-sim-service/internal/playoffs"
)

// State is one league snapshot. Transitions never mutate a State in place;
// they Clone and return the copy. Optional subsystems are explicit pointer
// fields, nil when inactive.
type State struct {
	Seed       uint64              `json:"seed"`
	UserTeamID string              `json:"userTeamId,omitempty"`
	Calendar   calendar.Calendar   `json:"calendar"`
	Teams      []teams.Team        `json:"teams"`
	Schedule   games.Schedule      `json:"schedule"`
	Playoffs   *playoffs.Bracket   `json:"playoffs,omitempty"`
	Offseason  *offseason.State    `json:"offseason,omitempty"`
	Prospects  []players.Prospect  `json:"prospects,omitempty"`
	FreeAgents []players.Player    `json:"freeAgents,omitempty"`
	History    []offseason.Summary `json:"history,omitempty"`
}

// Clone returns a deep copy of the snapshot.
func (s State) Clone() State {
	out := s
	if s.Teams != nil {
		out.Teams = make([]teams.Team, len(s.Teams))
		for i, t := range s.Teams {
			out.Teams[i] = t.Clone()
		}
	}
	out.Schedule = s.Schedule.Clone()
	if s.Playoffs != nil {
		b := s.Playoffs.Clone()
		out.Playoffs = &b
	}
	if s.Offseason != nil {
		o := s.Offseason.Clone()
		out.Offseason = &o
	}
	if s.Prospects != nil {
		out.Prospects = append([]players.Prospect(nil), s.Prospects...)
	}
	if s.FreeAgents != nil {
		out.FreeAgents = make([]players.Player, len(s.FreeAgents))
		for i, p := range s.FreeAgents {
			out.FreeAgents[i] = p.Clone()
		}
	}
	if s.History != nil {
		out.History = append([]offseason.Summary(nil), s.History...)
	}
	return out
}

// TeamIndex returns the index of the team, or -1.
func (s State) TeamIndex(id string) int {
	for i, t := range s.Teams {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Team returns the team with the given id.
func (s State) Team(id string) (teams.Team, bool) {
	if idx := s.TeamIndex(id); idx >= 0 {
		return s.Teams[idx], true
	}
	return teams.Team{}, false
}

// TeamIDs returns every team id in snapshot order.
func (s State) TeamIDs() []string {
	out := make([]string, len(s.Teams))
	for i, t := range s.Teams {
		out[i] = t.ID
	}
	return out
}

// ProspectIndex returns the index of the prospect, or -1.
func (s State) ProspectIndex(id string) int {
	for i, p := range s.Prospects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// FreeAgentIndex returns the index of the free agent, or -1.
func (s State) FreeAgentIndex(id string) int {
	for i, p := range s.FreeAgents {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Validate checks structural invariants a persisted snapshot must satisfy.
func (s State) Validate() error {
	if err := calendar.Validate(s.Calendar); err != nil {
		return err
	}
	if (s.Offseason != nil) != (s.Calendar.Phase == calendar.PhaseOffseason) {
		return fmt.Errorf("offseason state present=%t in phase %s", s.Offseason != nil, s.Calendar.Phase)
	}
	if s.Offseason != nil && s.Offseason.CurrentPhase.Index() != s.Calendar.Subphase() {
		return fmt.Errorf("offseason phase %s does not match sub-phase %d", s.Offseason.CurrentPhase, s.Calendar.Subphase())
	}
	seen := make(map[string]bool, len(s.Teams))
	for _, t := range s.Teams {
		if seen[t.ID] {
			return fmt.Errorf("duplicate team %s", t.ID)
		}
		seen[t.ID] = true
	}
	for _, g := range s.Schedule.Games {
		if !seen[g.HomeTeamID] || !seen[g.AwayTeamID] {
			return fmt.Errorf("game %s references unknown team", g.ID)
		}
		if g.IsComplete && (g.HomeScore == nil || g.AwayScore == nil || (g.WinnerID == "") == !g.IsTie) {
			return fmt.Errorf("game %s is complete but inconsistent", g.ID)
		}
	}
	return nil
}
