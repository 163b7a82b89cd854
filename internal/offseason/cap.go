package offseason

import (
	"github.com/preston-bernstein/league-sim-service/internal/domain/players"
	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
)

// CapMove is the kind of roster transaction being cap-checked.
type CapMove string

const (
	MoveExtend       CapMove = "EXTEND"
	MoveRelease      CapMove = "RELEASE"
	MoveFranchiseTag CapMove = "FRANCHISE_TAG"
	MoveSigning      CapMove = "SIGNING"
)

// CapRequest describes a proposed contract change for one player.
type CapRequest struct {
	Move          CapMove
	PlayerID      string
	Position      players.Position
	CurrentSalary int
	Salary        int
	Years         int
}

// CapDecision is the calculator's verdict. Salary is the amount the player
// will actually earn, which for a franchise tag is set by the calculator.
type CapDecision struct {
	Allowed  bool
	CapDelta int
	Salary   int
	CapSpace int
	Reason   string
}

// CapCalculator validates contract moves against a team's cap space.
type CapCalculator interface {
	Evaluate(team teams.Team, req CapRequest) CapDecision
}

type uncapped struct{}

func (uncapped) Evaluate(_ teams.Team, req CapRequest) CapDecision {
	salary := req.Salary
	switch req.Move {
	case MoveRelease:
		salary = 0
	case MoveFranchiseTag:
		if salary == 0 {
			salary = req.CurrentSalary
		}
	}
	return CapDecision{Allowed: true, CapDelta: salary - req.CurrentSalary, Salary: salary}
}
