// Package capcalc enforces the league salary cap for contract moves.
package capcalc

import (
	"fmt"

	"github.com/preston-bernstein/league-sim-service/internal/domain/players"
	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/league-sim-service/internal/offseason"
)

// SalaryCap is the league-wide limit, in thousands of dollars.
const SalaryCap = 255_400

// tagFloors is the minimum one-year franchise tag salary per position.
var tagFloors = map[players.Position]int{
	players.PosQB: 38_300,
	players.PosRB: 11_900,
	players.PosWR: 21_800,
	players.PosTE: 12_700,
	players.PosOL: 20_900,
	players.PosDL: 22_100,
	players.PosLB: 21_300,
	players.PosCB: 19_800,
	players.PosS:  17_100,
	players.PosK:  5_800,
	players.PosP:  5_800,
}

// tagRaise is the minimum raise over current salary for a tagged player.
const tagRaise = 1.2

// Calculator checks moves against a fixed cap.
type Calculator struct {
	cap int
}

// New returns a Calculator; cap <= 0 selects SalaryCap.
func New(cap int) Calculator {
	if cap <= 0 {
		cap = SalaryCap
	}
	return Calculator{cap: cap}
}

// Cap returns the configured limit.
func (c Calculator) Cap() int {
	return c.cap
}

// Space returns how much room a team has under the cap.
func (c Calculator) Space(team teams.Team) int {
	return c.cap - team.Payroll()
}

// TagSalary is the franchise tag amount for a player.
func TagSalary(pos players.Position, currentSalary int) int {
	return max(tagFloors[pos], int(float64(currentSalary)*tagRaise))
}

// Evaluate implements offseason.CapCalculator. Releases always pass since
// they only free space.
func (c Calculator) Evaluate(team teams.Team, req offseason.CapRequest) offseason.CapDecision {
	space := c.Space(team)
	var salary int
	switch req.Move {
	case offseason.MoveRelease:
		salary = 0
	case offseason.MoveFranchiseTag:
		salary = TagSalary(req.Position, req.CurrentSalary)
	case offseason.MoveExtend, offseason.MoveSigning:
		salary = req.Salary
	default:
		return offseason.CapDecision{CapSpace: space, Reason: fmt.Sprintf("unknown move %q", req.Move)}
	}

	delta := salary - req.CurrentSalary
	decision := offseason.CapDecision{
		Allowed:  delta <= 0 || delta <= space,
		CapDelta: delta,
		Salary:   salary,
		CapSpace: space,
	}
	if !decision.Allowed {
		decision.Reason = fmt.Sprintf("needs %d but only %d available", delta, space)
	}
	return decision
}

var _ offseason.CapCalculator = Calculator{}
