package offseason

import (
	"fmt"
	"slices"
	"strings"

	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
	domainoffseason "github.com/preston-bernstein/league-sim-service/internal/domain/offseason"
	"github.com/preston-bernstein/league-sim-service/internal/domain/players"
	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/league-sim-service/internal/errs"
	"github.com/preston-bernstein/league-sim-service/internal/logging"
)

// Contract terms for players entering through the draft or undrafted.
const (
	RookieYears    = 4
	UDFAYears      = 3
	MinimumSalary  = 795
	TopPickSalary  = 10_000
	SlotSalaryStep = 60
)

// Dispatch validates an action against the current phase and applies it to
// a copy of state. A rejected action returns state unchanged.
func (o *Orchestrator) Dispatch(state league.State, action domainoffseason.Action) (league.State, error) {
	if state.Offseason == nil {
		return state, errs.New(errs.CodeInvalidTransition, "league is not in the offseason")
	}
	if action == nil {
		return state, errs.New(errs.CodeInvalidAction, "action is required")
	}
	cur := state.Offseason.CurrentPhase
	target := action.TargetPhase()
	if required := action.RequiredPhase(); target == cur && required != "" && required != cur {
		target = required
	}
	if target != cur {
		logging.Warn(o.logger, "offseason action rejected",
			logging.FieldAction, string(action.Type()),
			logging.FieldSubphase, string(cur),
			"target", string(target),
		)
		return state, errs.WrongPhase(string(target), string(cur))
	}

	next := state.Clone()
	d := &dispatcher{o: o, state: &next, off: next.Offseason}
	if err := action.Accept(d); err != nil {
		return state, err
	}
	for _, msg := range d.messages {
		next.Offseason.ChangeLog = append(next.Offseason.ChangeLog, domainoffseason.ChangeLogEntry{
			Sequence: len(next.Offseason.ChangeLog) + 1,
			Phase:    cur,
			Action:   action.Type(),
			Message:  msg,
		})
	}
	logging.Info(o.logger, "offseason action applied",
		logging.FieldAction, string(action.Type()),
		logging.FieldSubphase, string(cur),
		logging.FieldCount, len(d.messages),
	)
	return next, nil
}

// dispatcher applies one action to a private clone.
type dispatcher struct {
	o        *Orchestrator
	state    *league.State
	off      *domainoffseason.State
	messages []string
}

var _ domainoffseason.Visitor = (*dispatcher)(nil)

func (d *dispatcher) logf(format string, args ...any) {
	d.messages = append(d.messages, fmt.Sprintf(format, args...))
}

func (d *dispatcher) team(id string) (*teams.Team, error) {
	idx := d.state.TeamIndex(id)
	if idx < 0 {
		return nil, errs.WithMetadata(errs.CodeDataIntegrity, "team not found", map[string]string{"teamId": id})
	}
	return &d.state.Teams[idx], nil
}

func (d *dispatcher) rosterPlayer(t *teams.Team, playerID string) (int, error) {
	idx := t.PlayerIndex(playerID)
	if idx < 0 {
		return -1, errs.WithMetadata(errs.CodeDataIntegrity, "player not on roster",
			map[string]string{"teamId": t.ID, "playerId": playerID})
	}
	return idx, nil
}

func (d *dispatcher) VisitCompleteTask(a domainoffseason.CompleteTask) error {
	phase := d.off.CurrentPhase
	if phase == domainoffseason.PhaseFinalCuts && a.TaskID == TaskRosterCompliance {
		if len(d.off.Data.RosterViolations) > 0 {
			return errs.WithMetadata(errs.CodeInvalidAction, "rosters still exceed the limit",
				map[string]string{"violations": fmt.Sprint(len(d.off.Data.RosterViolations))})
		}
	}
	if !setTask(d.off, phase, a.TaskID, true) {
		return errs.WithMetadata(errs.CodeInvalidAction, "unknown task",
			map[string]string{"phase": string(phase), "taskId": a.TaskID})
	}
	d.logf("Completed task %s", a.TaskID)
	return nil
}

// VisitAutoComplete finishes the phase on the user's behalf. The draft is
// filled best-available and oversized rosters drop their lowest-rated
// players before the tasks are marked done.
func (d *dispatcher) VisitAutoComplete(domainoffseason.AutoComplete) error {
	phase := d.off.CurrentPhase
	switch phase {
	case domainoffseason.PhaseDraft:
		if err := d.autoDraft(); err != nil {
			return err
		}
	case domainoffseason.PhaseFinalCuts:
		d.autoCut()
	}
	for i := range d.off.Tasks[phase] {
		d.off.Tasks[phase][i].Completed = true
	}
	d.logf("Auto-completed %s", phase.Title())
	return nil
}

func (d *dispatcher) VisitApplyCoachingChanges(a domainoffseason.ApplyCoachingChanges) error {
	if len(a.Changes) == 0 {
		return errs.New(errs.CodeInvalidAction, "no coaching changes submitted")
	}
	for _, change := range a.Changes {
		if strings.TrimSpace(change.NewCoach) == "" {
			return errs.WithMetadata(errs.CodeInvalidAction, "new coach name is required", map[string]string{"teamId": change.TeamID})
		}
		t, err := d.team(change.TeamID)
		if err != nil {
			return err
		}
		previous := t.HeadCoach.Name
		t.HeadCoach = teams.Coach{Name: change.NewCoach}
		d.off.Data.CoachingChanges = append(d.off.Data.CoachingChanges, change)
		d.logf("%s replaced %s with %s", t.FullName(), previous, change.NewCoach)
	}
	setTask(d.off, d.off.CurrentPhase, TaskCoachingReview, true)
	return nil
}

func (d *dispatcher) VisitApplyContractDecision(a domainoffseason.ApplyContractDecision) error {
	t, err := d.team(a.TeamID)
	if err != nil {
		return err
	}
	idx, err := d.rosterPlayer(t, a.PlayerID)
	if err != nil {
		return err
	}
	p := t.Roster[idx]

	req := CapRequest{PlayerID: p.ID, Position: p.Position, CurrentSalary: p.Contract.Salary, Salary: a.Salary, Years: a.Years}
	switch a.Decision {
	case domainoffseason.DecisionExtend:
		if a.Years <= 0 || a.Salary <= 0 {
			return errs.New(errs.CodeInvalidAction, "extension needs positive years and salary")
		}
		req.Move = MoveExtend
	case domainoffseason.DecisionFranchiseTag:
		req.Move = MoveFranchiseTag
		req.Years = 1
	case domainoffseason.DecisionRelease:
		req.Move = MoveRelease
		req.Salary = 0
	default:
		return errs.New(errs.CodeInvalidAction, "unknown contract decision %q", a.Decision)
	}

	verdict := d.o.cap.Evaluate(*t, req)
	if !verdict.Allowed {
		return capViolation(t.ID, p.ID, verdict)
	}

	switch req.Move {
	case MoveExtend:
		t.Roster[idx].Contract = players.Contract{Salary: verdict.Salary, YearsRemaining: a.Years}
		d.logf("%s extended %s: %d years at %d", t.Abbreviation, p.Name(), a.Years, verdict.Salary)
	case MoveFranchiseTag:
		t.Roster[idx].Contract = players.Contract{Salary: verdict.Salary, YearsRemaining: 1, FranchiseTag: true}
		d.logf("%s franchise-tagged %s at %d", t.Abbreviation, p.Name(), verdict.Salary)
	case MoveRelease:
		released := t.Roster[idx]
		released.Contract = players.Contract{}
		t.Roster = slices.Delete(t.Roster, idx, idx+1)
		d.state.FreeAgents = append(d.state.FreeAgents, released)
		d.logf("%s released %s", t.Abbreviation, p.Name())
	}

	d.off.Data.ContractDecisions = append(d.off.Data.ContractDecisions, domainoffseason.ContractDecision{
		TeamID:   t.ID,
		PlayerID: p.ID,
		Decision: a.Decision,
		Years:    req.Years,
		Salary:   verdict.Salary,
		CapDelta: verdict.CapDelta,
	})
	d.off.Data.ExpiringContracts = slices.DeleteFunc(d.off.Data.ExpiringContracts, func(e domainoffseason.ExpiringContract) bool {
		return e.PlayerID == p.ID
	})
	return nil
}

func (d *dispatcher) VisitApplyFreeAgencySigning(a domainoffseason.ApplyFreeAgencySigning) error {
	if a.Years <= 0 || a.Salary <= 0 {
		return errs.New(errs.CodeInvalidAction, "signing needs positive years and salary")
	}
	t, err := d.team(a.TeamID)
	if err != nil {
		return err
	}
	faIdx := d.state.FreeAgentIndex(a.PlayerID)
	if faIdx < 0 {
		return errs.WithMetadata(errs.CodeDataIntegrity, "free agent not found", map[string]string{"playerId": a.PlayerID})
	}
	p := d.state.FreeAgents[faIdx]

	verdict := d.o.cap.Evaluate(*t, CapRequest{
		Move:     MoveSigning,
		PlayerID: p.ID,
		Position: p.Position,
		Salary:   a.Salary,
		Years:    a.Years,
	})
	if !verdict.Allowed {
		return capViolation(t.ID, p.ID, verdict)
	}

	p.Contract = players.Contract{Salary: verdict.Salary, YearsRemaining: a.Years}
	t.Roster = append(t.Roster, p)
	d.state.FreeAgents = slices.Delete(d.state.FreeAgents, faIdx, faIdx+1)
	d.off.Data.FreeAgentPool = slices.DeleteFunc(d.off.Data.FreeAgentPool, func(id string) bool { return id == p.ID })
	d.off.Data.FreeAgentSignings = append(d.off.Data.FreeAgentSignings, domainoffseason.FreeAgentSigning{
		Day:      d.off.Data.FreeAgencyDay,
		TeamID:   t.ID,
		PlayerID: p.ID,
		Years:    a.Years,
		Salary:   verdict.Salary,
		CapDelta: verdict.CapDelta,
	})
	d.logf("Day %d: %s signed %s for %d years at %d", d.off.Data.FreeAgencyDay, t.Abbreviation, p.Name(), a.Years, verdict.Salary)
	return nil
}

func (d *dispatcher) VisitAdvanceFreeAgencyDay(domainoffseason.AdvanceFreeAgencyDay) error {
	if d.off.Data.FreeAgencyDay >= FreeAgencyDays {
		return errs.New(errs.CodeInvalidAction, "free agency ended on day %d", FreeAgencyDays)
	}
	d.off.Data.FreeAgencyDay++
	d.logf("Free agency day %d", d.off.Data.FreeAgencyDay)
	return nil
}

func (d *dispatcher) VisitApplyDraftSelections(a domainoffseason.ApplyDraftSelections) error {
	if len(a.Selections) == 0 {
		return errs.New(errs.CodeInvalidAction, "no draft selections submitted")
	}
	for _, sel := range a.Selections {
		if err := d.draft(sel); err != nil {
			return err
		}
	}
	d.markDraftDone()
	return nil
}

func (d *dispatcher) draft(sel domainoffseason.DraftSelection) error {
	order := d.off.Data.DraftOrder
	if len(order) == 0 {
		return errs.New(errs.CodeMissingDependency, "draft order has not been computed")
	}
	meta := map[string]string{"pick": fmt.Sprint(sel.Pick), "teamId": sel.TeamID, "prospectId": sel.ProspectID}
	if sel.Pick < 1 || sel.Pick > DraftRounds*len(order) {
		return errs.WithMetadata(errs.CodeInvalidAction, "pick out of range", meta)
	}
	if want := (sel.Pick-1)/len(order) + 1; sel.Round != 0 && sel.Round != want {
		return errs.WithMetadata(errs.CodeInvalidAction, "pick does not belong to that round", meta)
	}
	if owner := order[(sel.Pick-1)%len(order)]; owner != sel.TeamID {
		return errs.WithMetadata(errs.CodeInvalidAction, "pick belongs to "+owner, meta)
	}
	for _, prior := range d.off.Data.DraftSelections {
		if prior.Pick == sel.Pick {
			return errs.WithMetadata(errs.CodeInvalidAction, "pick already used", meta)
		}
	}
	pIdx := d.state.ProspectIndex(sel.ProspectID)
	if pIdx < 0 {
		return errs.WithMetadata(errs.CodeInvalidAction, "prospect not available", meta)
	}
	t, err := d.team(sel.TeamID)
	if err != nil {
		return err
	}

	prospect := d.state.Prospects[pIdx]
	t.Roster = append(t.Roster, prospect.ToPlayer(players.Contract{Salary: SlotSalary(sel.Pick), YearsRemaining: RookieYears}))
	d.state.Prospects = slices.Delete(d.state.Prospects, pIdx, pIdx+1)

	sel.Round = (sel.Pick-1)/len(order) + 1
	d.off.Data.DraftSelections = append(d.off.Data.DraftSelections, sel)
	d.logf("Round %d pick %d: %s selected %s (%s, %s)", sel.Round, sel.Pick, t.Abbreviation, prospect.Name(), prospect.Position, prospect.College)
	return nil
}

// autoDraft fills every unused pick with the best available prospect.
func (d *dispatcher) autoDraft() error {
	order := d.off.Data.DraftOrder
	if len(order) == 0 {
		return errs.New(errs.CodeMissingDependency, "draft order has not been computed")
	}
	used := make(map[int]bool, len(d.off.Data.DraftSelections))
	for _, s := range d.off.Data.DraftSelections {
		used[s.Pick] = true
	}
	for pick := 1; pick <= DraftRounds*len(order) && len(d.state.Prospects) > 0; pick++ {
		if used[pick] {
			continue
		}
		board := slices.Clone(d.state.Prospects)
		slices.SortStableFunc(board, compareProspects)
		if err := d.draft(domainoffseason.DraftSelection{
			Pick:       pick,
			TeamID:     order[(pick-1)%len(order)],
			ProspectID: board[0].ID,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (d *dispatcher) markDraftDone() {
	if len(d.state.Prospects) == 0 || len(d.off.Data.DraftSelections) >= DraftRounds*len(d.off.Data.DraftOrder) {
		setTask(d.off, domainoffseason.PhaseDraft, TaskDraftComplete, true)
	}
}

// SlotSalary is the rookie scale for an overall pick number.
func SlotSalary(pick int) int {
	return max(MinimumSalary, TopPickSalary-(pick-1)*SlotSalaryStep)
}

func (d *dispatcher) VisitApplyUDFASignings(a domainoffseason.ApplyUDFASignings) error {
	if len(a.ProspectIDs) == 0 {
		return errs.New(errs.CodeInvalidAction, "no prospects submitted")
	}
	t, err := d.team(a.TeamID)
	if err != nil {
		return err
	}
	for _, id := range a.ProspectIDs {
		if !slices.Contains(d.off.Data.UDFAPool, id) {
			return errs.WithMetadata(errs.CodeInvalidAction, "prospect is not in the undrafted pool", map[string]string{"prospectId": id})
		}
		pIdx := d.state.ProspectIndex(id)
		if pIdx < 0 {
			return errs.WithMetadata(errs.CodeDataIntegrity, "prospect not found", map[string]string{"prospectId": id})
		}
		prospect := d.state.Prospects[pIdx]
		t.Roster = append(t.Roster, prospect.ToPlayer(players.Contract{Salary: MinimumSalary, YearsRemaining: UDFAYears}))
		d.state.Prospects = slices.Delete(d.state.Prospects, pIdx, pIdx+1)
		d.off.Data.UDFAPool = slices.DeleteFunc(d.off.Data.UDFAPool, func(p string) bool { return p == id })
		d.off.Data.UDFASignings = append(d.off.Data.UDFASignings, domainoffseason.UDFASigning{TeamID: t.ID, ProspectID: id})
		d.logf("%s signed undrafted %s", t.Abbreviation, prospect.Name())
	}
	return nil
}

func (d *dispatcher) VisitApplyFinalCuts(a domainoffseason.ApplyFinalCuts) error {
	if len(a.PlayerIDs) == 0 {
		return errs.New(errs.CodeInvalidAction, "no players submitted")
	}
	t, err := d.team(a.TeamID)
	if err != nil {
		return err
	}
	for _, id := range a.PlayerIDs {
		idx, err := d.rosterPlayer(t, id)
		if err != nil {
			return err
		}
		d.cut(t, idx)
	}
	d.refreshViolations()
	return nil
}

func (d *dispatcher) cut(t *teams.Team, idx int) {
	p := t.Roster[idx]
	t.Roster = slices.Delete(t.Roster, idx, idx+1)
	p.Contract = players.Contract{}
	d.state.FreeAgents = append(d.state.FreeAgents, p)
	d.off.Data.RosterCuts = append(d.off.Data.RosterCuts, domainoffseason.RosterCut{TeamID: t.ID, PlayerID: p.ID})
	d.logf("%s released %s", t.Abbreviation, p.Name())
}

// autoCut trims every oversized roster by releasing its lowest-rated players.
func (d *dispatcher) autoCut() {
	for ti := range d.state.Teams {
		t := &d.state.Teams[ti]
		for len(t.Roster) > teams.RosterLimit {
			worst := 0
			for i, p := range t.Roster {
				w := t.Roster[worst]
				if p.Overall < w.Overall || (p.Overall == w.Overall && p.ID > w.ID) {
					worst = i
				}
			}
			d.cut(t, worst)
		}
	}
	d.refreshViolations()
}

func (d *dispatcher) refreshViolations() {
	d.off.Data.RosterViolations = rosterViolations(d.state.Teams)
	setTask(d.off, domainoffseason.PhaseFinalCuts, TaskRosterCompliance, len(d.off.Data.RosterViolations) == 0)
}

func capViolation(teamID, playerID string, verdict CapDecision) error {
	return errs.WithMetadata(errs.CodeCapViolation, "move exceeds the salary cap", map[string]string{
		"teamId":   teamID,
		"playerId": playerID,
		"capDelta": fmt.Sprint(verdict.CapDelta),
		"capSpace": fmt.Sprint(verdict.CapSpace),
		"reason":   verdict.Reason,
	})
}
