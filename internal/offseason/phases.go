package offseason

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/preston-bernstein/league-sim-service/internal/domain/league"
	domainoffseason "github.com/preston-bernstein/league-sim-service/internal/domain/offseason"
	"github.com/preston-bernstein/league-sim-service/internal/domain/players"
	"github.com/preston-bernstein/league-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/league-sim-service/internal/errs"
)

// Task ids referenced by actions.
const (
	TaskReviewSeason      = "review-season"
	TaskCoachingReview    = "coaching-review"
	TaskContractsReviewed = "contracts-reviewed"
	TaskCombineReviewed   = "combine-reviewed"
	TaskFreeAgency        = "free-agency"
	TaskDraftComplete     = "draft-complete"
	TaskUDFA              = "udfa"
	TaskOTAs              = "otas"
	TaskCamp              = "camp"
	TaskPreseason         = "preseason"
	TaskRosterCompliance  = "roster-compliance"
	TaskSeasonStart       = "season-start"
)

// Phase tuning.
const (
	FreeAgencyDays      = 30
	DraftRounds         = 7
	HotSeatWinPct       = 0.375
	ExpiringYears       = 1
	StandoutMaxExp      = 2
	StandoutsPerTeam    = 3
	BattleGap           = 3
	PreseasonGamesCount = 3
	StarterCount        = 22
)

var phaseTasks = map[domainoffseason.Phase][]domainoffseason.Task{
	domainoffseason.PhaseSeasonEnd:          {{ID: TaskReviewSeason, Title: "Review season results and awards", Required: true}},
	domainoffseason.PhaseCoachingDecisions:  {{ID: TaskCoachingReview, Title: "Review head coaches", Required: true}},
	domainoffseason.PhaseContractManagement: {{ID: TaskContractsReviewed, Title: "Resolve expiring contracts", Required: true}},
	domainoffseason.PhaseCombine:            {{ID: TaskCombineReviewed, Title: "Review combine results"}},
	domainoffseason.PhaseFreeAgency:         {{ID: TaskFreeAgency, Title: "Finish free agency", Required: true}},
	domainoffseason.PhaseDraft:              {{ID: TaskDraftComplete, Title: "Complete the draft", Required: true}},
	domainoffseason.PhaseUDFA:               {{ID: TaskUDFA, Title: "Sign undrafted free agents"}},
	domainoffseason.PhaseOTAs:               {{ID: TaskOTAs, Title: "Review OTA reports"}},
	domainoffseason.PhaseTrainingCamp:       {{ID: TaskCamp, Title: "Settle position battles"}},
	domainoffseason.PhasePreseason:          {{ID: TaskPreseason, Title: "Play the preseason slate"}},
	domainoffseason.PhaseFinalCuts:          {{ID: TaskRosterCompliance, Title: "Cut rosters to the limit", Required: true}},
	domainoffseason.PhaseSeasonStart:        {{ID: TaskSeasonStart, Title: "Set owner expectations", Required: true}},
}

// enter runs the current phase's generator on state in place. Callers pass
// a private clone.
func (o *Orchestrator) enter(state *league.State) error {
	off := state.Offseason
	phase := off.CurrentPhase
	data := &off.Data
	rng := phaseRand(state.Seed, off.Year, phase)

	switch phase {
	case domainoffseason.PhaseSeasonEnd:
		data.Awards = computeAwards(o.engine, state.Teams, state.Playoffs)
	case domainoffseason.PhaseCoachingDecisions:
		data.CoachingEvaluations = evaluateCoaches(state.Teams)
	case domainoffseason.PhaseContractManagement:
		data.ExpiringContracts = expiringContracts(state.Teams)
	case domainoffseason.PhaseCombine:
		data.CombineResults = runCombine(rng, state.Prospects)
	case domainoffseason.PhaseFreeAgency:
		data.FreeAgencyDay = 1
		data.FreeAgentPool = freeAgentPool(state.FreeAgents)
	case domainoffseason.PhaseDraft:
		if len(data.DraftOrder) == 0 {
			return errs.WithMetadata(errs.CodeMissingDependency, "draft order has not been computed",
				map[string]string{"phase": string(phase)})
		}
	case domainoffseason.PhaseUDFA:
		data.UDFAPool = prospectPool(state.Prospects)
	case domainoffseason.PhaseOTAs:
		data.OTAReports = otaReports(rng, state.Teams)
	case domainoffseason.PhaseTrainingCamp:
		data.PositionBattles = positionBattles(state.Teams)
	case domainoffseason.PhasePreseason:
		data.PreseasonGames = preseasonSlate(rng, state.TeamIDs())
	case domainoffseason.PhaseFinalCuts:
		data.RosterViolations = rosterViolations(state.Teams)
	case domainoffseason.PhaseSeasonStart:
		data.OwnerExpectations = ownerExpectations(state.Teams)
	default:
		return errs.New(errs.CodeDataIntegrity, "unknown offseason phase %q", phase)
	}

	off.Tasks = resetTasks(off.Tasks, phase)
	if phase == domainoffseason.PhaseFinalCuts {
		setTask(off, phase, TaskRosterCompliance, len(data.RosterViolations) == 0)
	}
	return nil
}

// phaseRand is reproducible per league seed, year and phase so re-entry
// produces identical data.
func phaseRand(seed uint64, year int, phase domainoffseason.Phase) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(year)<<8|uint64(phase.Index())))
}

func resetTasks(tasks map[domainoffseason.Phase][]domainoffseason.Task, phase domainoffseason.Phase) map[domainoffseason.Phase][]domainoffseason.Task {
	if tasks == nil {
		tasks = make(map[domainoffseason.Phase][]domainoffseason.Task)
	}
	done := make(map[string]bool)
	for _, t := range tasks[phase] {
		done[t.ID] = t.Completed
	}
	fresh := slices.Clone(phaseTasks[phase])
	for i := range fresh {
		fresh[i].Completed = done[fresh[i].ID]
	}
	tasks[phase] = fresh
	return tasks
}

func setTask(off *domainoffseason.State, phase domainoffseason.Phase, id string, completed bool) bool {
	for i := range off.Tasks[phase] {
		if off.Tasks[phase][i].ID == id {
			off.Tasks[phase][i].Completed = completed
			return true
		}
	}
	return false
}

func evaluateCoaches(ts []teams.Team) []domainoffseason.CoachingEvaluation {
	out := make([]domainoffseason.CoachingEvaluation, 0, len(ts))
	for _, t := range ts {
		pct := t.Record.WinPct()
		out = append(out, domainoffseason.CoachingEvaluation{
			TeamID:  t.ID,
			Coach:   t.HeadCoach.Name,
			WinPct:  math.Round(pct*1000) / 1000,
			HotSeat: pct < HotSeatWinPct,
		})
	}
	return out
}

func expiringContracts(ts []teams.Team) []domainoffseason.ExpiringContract {
	var out []domainoffseason.ExpiringContract
	for _, t := range ts {
		for _, p := range t.Roster {
			if p.Contract.YearsRemaining <= ExpiringYears {
				out = append(out, domainoffseason.ExpiringContract{
					TeamID:         t.ID,
					PlayerID:       p.ID,
					PlayerName:     p.Name(),
					Salary:         p.Contract.Salary,
					YearsRemaining: p.Contract.YearsRemaining,
				})
			}
		}
	}
	return out
}

var combineBase = map[players.Position]struct {
	forty float64
	bench int
}{
	players.PosQB: {4.85, 16}, players.PosRB: {4.52, 20}, players.PosWR: {4.48, 14},
	players.PosTE: {4.70, 21}, players.PosOL: {5.25, 28}, players.PosDL: {4.95, 27},
	players.PosLB: {4.70, 22}, players.PosCB: {4.46, 14}, players.PosS: {4.55, 16},
	players.PosK: {5.00, 10}, players.PosP: {5.00, 10},
}

func runCombine(rng *rand.Rand, prospects []players.Prospect) []domainoffseason.CombineResult {
	out := make([]domainoffseason.CombineResult, 0, len(prospects))
	for _, p := range prospects {
		base := combineBase[p.Position]
		skill := float64(p.Overall-60) / 40
		forty := base.forty - 0.15*skill + (rng.Float64()-0.5)*0.16
		vertical := 29 + 8*skill + rng.Float64()*4
		out = append(out, domainoffseason.CombineResult{
			ProspectID: p.ID,
			Forty:      math.Round(forty*100) / 100,
			Bench:      max(0, base.bench+int(6*skill)+rng.IntN(7)-3),
			Vertical:   math.Round(vertical*10) / 10,
			Grade:      min(99, max(40, p.Overall+rng.IntN(7)-3)),
		})
	}
	return out
}

func freeAgentPool(fas []players.Player) []string {
	sorted := slices.Clone(fas)
	slices.SortStableFunc(sorted, func(a, b players.Player) int {
		if c := cmp.Compare(b.Overall, a.Overall); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	out := make([]string, 0, len(sorted))
	for _, p := range sorted {
		out = append(out, p.ID)
	}
	return out
}

func prospectPool(prospects []players.Prospect) []string {
	sorted := slices.Clone(prospects)
	slices.SortStableFunc(sorted, compareProspects)
	out := make([]string, 0, len(sorted))
	for _, p := range sorted {
		out = append(out, p.ID)
	}
	return out
}

func compareProspects(a, b players.Prospect) int {
	if c := cmp.Compare(b.Overall, a.Overall); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Potential, a.Potential); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func otaReports(rng *rand.Rand, ts []teams.Team) []domainoffseason.OTAReport {
	out := make([]domainoffseason.OTAReport, 0, len(ts))
	for _, t := range ts {
		young := make([]players.Player, 0, len(t.Roster))
		for _, p := range t.Roster {
			if p.Experience <= StandoutMaxExp {
				young = append(young, p)
			}
		}
		slices.SortStableFunc(young, func(a, b players.Player) int {
			if c := cmp.Compare(b.Overall, a.Overall); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
		standouts := make([]string, 0, StandoutsPerTeam)
		for _, p := range young[:min(StandoutsPerTeam, len(young))] {
			standouts = append(standouts, p.ID)
		}
		out = append(out, domainoffseason.OTAReport{
			TeamID:     t.ID,
			Attendance: 85 + rng.IntN(16),
			Standouts:  standouts,
		})
	}
	return out
}

func positionBattles(ts []teams.Team) []domainoffseason.PositionBattle {
	var out []domainoffseason.PositionBattle
	for _, t := range ts {
		byPos := make(map[players.Position][]players.Player)
		for _, p := range t.Roster {
			byPos[p.Position] = append(byPos[p.Position], p)
		}
		for _, pos := range players.Positions {
			group := byPos[pos]
			if len(group) < 2 {
				continue
			}
			slices.SortStableFunc(group, func(a, b players.Player) int {
				if c := cmp.Compare(b.Overall, a.Overall); c != 0 {
					return c
				}
				return cmp.Compare(a.ID, b.ID)
			})
			gap := group[0].Overall - group[1].Overall
			if gap <= BattleGap {
				out = append(out, domainoffseason.PositionBattle{
					TeamID:     t.ID,
					Position:   pos,
					Incumbent:  group[0].ID,
					Challenger: group[1].ID,
					Gap:        gap,
				})
			}
		}
	}
	return out
}

// preseasonSlate pairs every team once per preseason week.
func preseasonSlate(rng *rand.Rand, teamIDs []string) []domainoffseason.PreseasonGame {
	if len(teamIDs)%2 != 0 {
		return nil
	}
	var out []domainoffseason.PreseasonGame
	for week := 1; week <= PreseasonGamesCount; week++ {
		order := slices.Clone(teamIDs)
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		for i := 0; i < len(order); i += 2 {
			out = append(out, domainoffseason.PreseasonGame{Week: week, HomeTeamID: order[i], AwayTeamID: order[i+1]})
		}
	}
	return out
}

func rosterViolations(ts []teams.Team) []domainoffseason.RosterViolation {
	var out []domainoffseason.RosterViolation
	for _, t := range ts {
		if size := len(t.Roster); size > teams.RosterLimit {
			out = append(out, domainoffseason.RosterViolation{TeamID: t.ID, RosterSize: size, Excess: size - teams.RosterLimit})
		}
	}
	return out
}

// ownerExpectations ranks teams by the mean overall of their best starters
// and splits the league into four equal tiers.
func ownerExpectations(ts []teams.Team) []domainoffseason.OwnerExpectation {
	out := make([]domainoffseason.OwnerExpectation, 0, len(ts))
	for _, t := range ts {
		out = append(out, domainoffseason.OwnerExpectation{TeamID: t.ID, Strength: projectedStrength(t)})
	}
	ranked := slices.Clone(out)
	slices.SortStableFunc(ranked, func(a, b domainoffseason.OwnerExpectation) int {
		if c := cmp.Compare(b.Strength, a.Strength); c != 0 {
			return c
		}
		return cmp.Compare(a.TeamID, b.TeamID)
	})
	tierOf := make(map[string]int, len(ranked))
	for i, e := range ranked {
		tierOf[e.TeamID] = i * 4 / max(1, len(ranked))
	}
	for i := range out {
		target := tierTargets[tierOf[out[i].TeamID]]
		out[i].Tier = target.tier
		out[i].TargetWins = target.wins
	}
	return out
}

type tierTarget struct {
	tier domainoffseason.ExpectationTier
	wins int
}

var tierTargets = []tierTarget{
	{domainoffseason.TierContend, 12},
	{domainoffseason.TierPlayoffs, 10},
	{domainoffseason.TierCompetitive, 8},
	{domainoffseason.TierRebuild, 6},
}

func projectedStrength(t teams.Team) float64 {
	if len(t.Roster) == 0 {
		return 0
	}
	overalls := make([]int, 0, len(t.Roster))
	for _, p := range t.Roster {
		overalls = append(overalls, p.Overall)
	}
	slices.SortFunc(overalls, func(a, b int) int { return cmp.Compare(b, a) })
	top := overalls[:min(StarterCount, len(overalls))]
	sum := 0
	for _, v := range top {
		sum += v
	}
	return math.Round(float64(sum)/float64(len(top))*10) / 10
}
