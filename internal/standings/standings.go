// Package standings folds team records into ranked conference and division tables.
package standings

import (
	"cmp"
	"slices"

	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
)

// Entry is one team's line in the standings.
type Entry struct {
	TeamID     string       `json:"teamId"`
	Name       string       `json:"name"`
	Conference string       `json:"conference"`
	Division   string       `json:"division"`
	Record     teams.Record `json:"record"`
	Rank       int          `json:"rank"`
}

// Comparator orders two entries: negative when a ranks ahead of b.
type Comparator func(a, b Entry) int

// ReferenceComparator ranks by wins descending, then losses descending.
// It is a deliberate simplification of head-to-head and strength-of-schedule
// tie-breaks; team id is the last resort so ordering is reproducible.
func ReferenceComparator(a, b Entry) int {
	if c := cmp.Compare(b.Record.Wins, a.Record.Wins); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Record.Losses, a.Record.Losses); c != 0 {
		return c
	}
	return cmp.Compare(a.TeamID, b.TeamID)
}

// Standings maps conference -> division -> ranked entries.
type Standings struct {
	Conferences map[string]map[string][]Entry `json:"conferences"`
}

// Division returns the ranked entries of one division.
func (s Standings) Division(conference, division string) []Entry {
	if s.Conferences == nil {
		return nil
	}
	return s.Conferences[conference][division]
}

// DivisionNames returns the divisions of a conference in sorted order.
func (s Standings) DivisionNames(conference string) []string {
	divs := s.Conferences[conference]
	names := make([]string, 0, len(divs))
	for name := range divs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Engine computes standings with an injectable comparator.
type Engine struct {
	compare Comparator
}

// NewEngine returns an Engine; a nil comparator selects ReferenceComparator.
func NewEngine(compare Comparator) Engine {
	if compare == nil {
		compare = ReferenceComparator
	}
	return Engine{compare: compare}
}

// Compare exposes the engine's comparator to callers that rank across divisions.
func (e Engine) Compare(a, b Entry) int {
	if e.compare == nil {
		return ReferenceComparator(a, b)
	}
	return e.compare(a, b)
}

// Rank returns a sorted copy of entries with Rank set from 1.
func (e Engine) Rank(entries []Entry) []Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, e.Compare)
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Compute groups teams by conference and division and ranks each division.
func (e Engine) Compute(league []teams.Team) Standings {
	grouped := make(map[string]map[string][]Entry)
	for _, t := range league {
		divs, ok := grouped[t.Conference]
		if !ok {
			divs = make(map[string][]Entry)
			grouped[t.Conference] = divs
		}
		divs[t.Division] = append(divs[t.Division], EntryFor(t))
	}
	for _, divs := range grouped {
		for name, entries := range divs {
			divs[name] = e.Rank(entries)
		}
	}
	return Standings{Conferences: grouped}
}

// Compute ranks the league with the reference comparator.
func Compute(league []teams.Team) Standings {
	return NewEngine(nil).Compute(league)
}

// EntryFor builds an unranked entry from a team.
func EntryFor(t teams.Team) Entry {
	return Entry{
		TeamID:     t.ID,
		Name:       t.FullName(),
		Conference: t.Conference,
		Division:   t.Division,
		Record:     t.Record,
	}
}

// League ranks every team in one list, e.g. for draft order or power rankings.
func (e Engine) League(league []teams.Team) []Entry {
	entries := make([]Entry, 0, len(league))
	for _, t := range league {
		entries = append(entries, EntryFor(t))
	}
	return e.Rank(entries)
}
