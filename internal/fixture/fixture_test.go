package fixture

import (
	"testing"

	"github.com/preston-bernstein/league-sim-service/internal/capcalc"
	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
)

func TestNewBuildsValidLeague(t *testing.T) {
	state, err := New(Options{Seed: 7, Year: 2025, UserTeamID: "phi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := state.Validate(); err != nil {
		t.Fatalf("expected valid league, got %v", err)
	}
	if len(state.Teams) != 32 {
		t.Fatalf("expected 32 teams, got %d", len(state.Teams))
	}
	if len(state.Schedule.Games) != 272 {
		t.Fatalf("expected 272 games, got %d", len(state.Schedule.Games))
	}
	if len(state.Prospects) != DraftClassSize || len(state.FreeAgents) != FreeAgentCount {
		t.Fatalf("unexpected pool sizes: %d prospects, %d free agents", len(state.Prospects), len(state.FreeAgents))
	}

	perDivision := make(map[string]int)
	for _, team := range state.Teams {
		if len(team.Roster) != teams.RosterLimit {
			t.Fatalf("team %s has %d players", team.ID, len(team.Roster))
		}
		perDivision[team.Division]++
	}
	if len(perDivision) != 8 {
		t.Fatalf("expected 8 divisions, got %d", len(perDivision))
	}
	for div, n := range perDivision {
		if n != 4 {
			t.Fatalf("division %s has %d teams", div, n)
		}
	}
}

func TestNewIsDeterministic(t *testing.T) {
	a, err := New(Options{Seed: 11, Year: 2025})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := New(Options{Seed: 11, Year: 2025})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Teams[5].Roster[0] != b.Teams[5].Roster[0] {
		t.Fatalf("expected same roster for same seed")
	}
	c, _ := New(Options{Seed: 12, Year: 2025})
	if a.Teams[5].Roster[0] == c.Teams[5].Roster[0] {
		t.Fatalf("expected different rosters for different seeds")
	}
}

func TestNewRejectsUnknownUserTeam(t *testing.T) {
	if _, err := New(Options{Seed: 1, Year: 2025, UserTeamID: "xyz"}); err == nil {
		t.Fatal("expected error for unknown user team")
	}
	if _, err := New(Options{Seed: 1}); err == nil {
		t.Fatal("expected error for missing year")
	}
}

func TestUniqueIDs(t *testing.T) {
	state, err := New(Options{Seed: 3, Year: 2025})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := make(map[string]bool)
	for _, team := range state.Teams {
		for _, p := range team.Roster {
			if seen[p.ID] {
				t.Fatalf("duplicate player id %s", p.ID)
			}
			seen[p.ID] = true
		}
	}
	for _, p := range state.FreeAgents {
		if seen[p.ID] {
			t.Fatalf("duplicate free agent id %s", p.ID)
		}
		seen[p.ID] = true
	}
	for _, p := range state.Prospects {
		if seen[p.ID] {
			t.Fatalf("duplicate prospect id %s", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestSalaryFloor(t *testing.T) {
	if got := Salary(50); got != 795 {
		t.Fatalf("expected minimum salary, got %d", got)
	}
	if Salary(90) <= Salary(80) {
		t.Fatal("expected salary to rise with rating")
	}
}

func TestPayrollsFitUnderCap(t *testing.T) {
	for _, team := range Teams(99) {
		if payroll := team.Payroll(); payroll > capcalc.SalaryCap {
			t.Fatalf("team %s payroll %d exceeds cap", team.ID, payroll)
		}
	}
}
