package offseason

import "github.com/preston-bernstein/league-sim-service/internal/domain/players"

// Task is a unit of work that may gate leaving a phase.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Required  bool   `json:"required"`
	Completed bool   `json:"completed"`
}

// ChangeLogEntry is an audit line appended for every accepted action.
type ChangeLogEntry struct {
	Sequence int        `json:"sequence"`
	Phase    Phase      `json:"phase"`
	Action   ActionType `json:"action"`
	Message  string     `json:"message"`
}

// AwardWinner names a player award recipient.
type AwardWinner struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	TeamID     string `json:"teamId"`
	Position   string `json:"position"`
}

// Awards are the season honors computed at SeasonEnd.
type Awards struct {
	ChampionID           string       `json:"championId,omitempty"`
	MVP                  *AwardWinner `json:"mvp,omitempty"`
	OffensivePlayer      *AwardWinner `json:"offensivePlayer,omitempty"`
	DefensivePlayer      *AwardWinner `json:"defensivePlayer,omitempty"`
	RookieOfTheYear      *AwardWinner `json:"rookieOfTheYear,omitempty"`
	CoachOfTheYear       string       `json:"coachOfTheYear,omitempty"`
	CoachOfTheYearTeamID string       `json:"coachOfTheYearTeamId,omitempty"`
}

// CoachingEvaluation flags a head coach whose season put the job at risk.
type CoachingEvaluation struct {
	TeamID  string  `json:"teamId"`
	Coach   string  `json:"coach"`
	WinPct  float64 `json:"winPct"`
	HotSeat bool    `json:"hotSeat"`
}

// CoachingChange replaces a team's head coach.
type CoachingChange struct {
	TeamID   string `json:"teamId"`
	NewCoach string `json:"newCoach"`
	Reason   string `json:"reason,omitempty"`
}

// ExpiringContract is a deal entering its final year or beyond.
type ExpiringContract struct {
	TeamID         string `json:"teamId"`
	PlayerID       string `json:"playerId"`
	PlayerName     string `json:"playerName"`
	Salary         int    `json:"salary"`
	YearsRemaining int    `json:"yearsRemaining"`
}

// ContractDecisionKind is what a team does with an expiring deal.
type ContractDecisionKind string

const (
	DecisionExtend       ContractDecisionKind = "EXTEND"
	DecisionRelease      ContractDecisionKind = "RELEASE"
	DecisionFranchiseTag ContractDecisionKind = "FRANCHISE_TAG"
)

// ContractDecision records an accepted contract action and its cap delta.
type ContractDecision struct {
	TeamID   string               `json:"teamId"`
	PlayerID string               `json:"playerId"`
	Decision ContractDecisionKind `json:"decision"`
	Years    int                  `json:"years,omitempty"`
	Salary   int                  `json:"salary,omitempty"`
	CapDelta int                  `json:"capDelta"`
}

// CombineResult is one prospect's workout line.
type CombineResult struct {
	ProspectID string  `json:"prospectId"`
	Forty      float64 `json:"forty"`
	Bench      int     `json:"bench"`
	Vertical   float64 `json:"vertical"`
	Grade      int     `json:"grade"`
}

// FreeAgentSigning records an accepted free agency signing.
type FreeAgentSigning struct {
	Day      int    `json:"day"`
	TeamID   string `json:"teamId"`
	PlayerID string `json:"playerId"`
	Years    int    `json:"years"`
	Salary   int    `json:"salary"`
	CapDelta int    `json:"capDelta"`
}

// DraftSelection is one pick.
type DraftSelection struct {
	Round      int    `json:"round"`
	Pick       int    `json:"pick"`
	TeamID     string `json:"teamId"`
	ProspectID string `json:"prospectId"`
}

// UDFASigning records undrafted prospects joining a team.
type UDFASigning struct {
	TeamID     string `json:"teamId"`
	ProspectID string `json:"prospectId"`
}

// OTAReport summarizes a team's organized team activities.
type OTAReport struct {
	TeamID     string   `json:"teamId"`
	Attendance int      `json:"attendance"`
	Standouts  []string `json:"standouts"`
}

// PositionBattle is a close competition for a starting job.
type PositionBattle struct {
	TeamID     string           `json:"teamId"`
	Position   players.Position `json:"position"`
	Incumbent  string           `json:"incumbent"`
	Challenger string           `json:"challenger"`
	Gap        int              `json:"gap"`
}

// PreseasonGame is an exhibition pairing.
type PreseasonGame struct {
	Week       int    `json:"week"`
	HomeTeamID string `json:"homeTeamId"`
	AwayTeamID string `json:"awayTeamId"`
}

// RosterViolation flags a team above the roster limit.
type RosterViolation struct {
	TeamID     string `json:"teamId"`
	RosterSize int    `json:"rosterSize"`
	Excess     int    `json:"excess"`
}

// RosterCut records a player released at final cuts.
type RosterCut struct {
	TeamID   string `json:"teamId"`
	PlayerID string `json:"playerId"`
}

// ExpectationTier is an owner's goal for the coming season.
type ExpectationTier string

const (
	TierContend     ExpectationTier = "CONTEND"
	TierPlayoffs    ExpectationTier = "PLAYOFFS"
	TierCompetitive ExpectationTier = "COMPETITIVE"
	TierRebuild     ExpectationTier = "REBUILD"
)

// OwnerExpectation is computed at SeasonStart from projected roster strength.
type OwnerExpectation struct {
	TeamID     string          `json:"teamId"`
	Strength   float64         `json:"strength"`
	Tier       ExpectationTier `json:"tier"`
	TargetWins int             `json:"targetWins"`
}

// Data is the per-cycle bag of phase artifacts.
type Data struct {
	DraftOrder          []string             `json:"draftOrder"`
	Awards              *Awards              `json:"awards,omitempty"`
	CoachingEvaluations []CoachingEvaluation `json:"coachingEvaluations,omitempty"`
	CoachingChanges     []CoachingChange     `json:"coachingChanges,omitempty"`
	ExpiringContracts   []ExpiringContract   `json:"expiringContracts,omitempty"`
	ContractDecisions   []ContractDecision   `json:"contractDecisions,omitempty"`
	CombineResults      []CombineResult      `json:"combineResults,omitempty"`
	FreeAgencyDay       int                  `json:"freeAgencyDay"`
	FreeAgentPool       []string             `json:"freeAgentPool,omitempty"`
	FreeAgentSignings   []FreeAgentSigning   `json:"freeAgentSignings,omitempty"`
	DraftSelections     []DraftSelection     `json:"draftSelections,omitempty"`
	UDFAPool            []string             `json:"udfaPool,omitempty"`
	UDFASignings        []UDFASigning        `json:"udfaSignings,omitempty"`
	OTAReports          []OTAReport          `json:"otaReports,omitempty"`
	PositionBattles     []PositionBattle     `json:"positionBattles,omitempty"`
	PreseasonGames      []PreseasonGame      `json:"preseasonGames,omitempty"`
	RosterViolations    []RosterViolation    `json:"rosterViolations,omitempty"`
	RosterCuts          []RosterCut          `json:"rosterCuts,omitempty"`
	OwnerExpectations   []OwnerExpectation   `json:"ownerExpectations,omitempty"`
}

// Clone returns a deep copy of the data bag.
func (d Data) Clone() Data {
	out := d
	out.DraftOrder = cloneSlice(d.DraftOrder)
	if d.Awards != nil {
		a := *d.Awards
		a.MVP = cloneWinner(a.MVP)
		a.OffensivePlayer = cloneWinner(a.OffensivePlayer)
		a.DefensivePlayer = cloneWinner(a.DefensivePlayer)
		a.RookieOfTheYear = cloneWinner(a.RookieOfTheYear)
		out.Awards = &a
	}
	out.CoachingEvaluations = cloneSlice(d.CoachingEvaluations)
	out.CoachingChanges = cloneSlice(d.CoachingChanges)
	out.ExpiringContracts = cloneSlice(d.ExpiringContracts)
	out.ContractDecisions = cloneSlice(d.ContractDecisions)
	out.CombineResults = cloneSlice(d.CombineResults)
	out.FreeAgentPool = cloneSlice(d.FreeAgentPool)
	out.FreeAgentSignings = cloneSlice(d.FreeAgentSignings)
	out.DraftSelections = cloneSlice(d.DraftSelections)
	out.UDFAPool = cloneSlice(d.UDFAPool)
	out.UDFASignings = cloneSlice(d.UDFASignings)
	if d.OTAReports != nil {
		out.OTAReports = make([]OTAReport, len(d.OTAReports))
		for i, r := range d.OTAReports {
			r.Standouts = cloneSlice(r.Standouts)
			out.OTAReports[i] = r
		}
	}
	out.PositionBattles = cloneSlice(d.PositionBattles)
	out.PreseasonGames = cloneSlice(d.PreseasonGames)
	out.RosterViolations = cloneSlice(d.RosterViolations)
	out.RosterCuts = cloneSlice(d.RosterCuts)
	out.OwnerExpectations = cloneSlice(d.OwnerExpectations)
	return out
}

// State is the offseason state machine for one cycle.
type State struct {
	Year         int              `json:"year"`
	CurrentPhase Phase            `json:"currentPhase"`
	Data         Data             `json:"data"`
	Tasks        map[Phase][]Task `json:"tasks"`
	Visited      []Phase          `json:"visited"`
	ChangeLog    []ChangeLogEntry `json:"changeLog"`
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.Data = s.Data.Clone()
	if s.Tasks != nil {
		out.Tasks = make(map[Phase][]Task, len(s.Tasks))
		for p, tasks := range s.Tasks {
			out.Tasks[p] = cloneSlice(tasks)
		}
	}
	out.Visited = cloneSlice(s.Visited)
	out.ChangeLog = cloneSlice(s.ChangeLog)
	return out
}

// PendingRequired returns the required tasks of the current phase not yet done.
func (s State) PendingRequired() []Task {
	var out []Task
	for _, t := range s.Tasks[s.CurrentPhase] {
		if t.Required && !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// Summary is the archived record of a completed offseason cycle.
type Summary struct {
	Year            int                `json:"year"`
	ChampionID      string             `json:"championId,omitempty"`
	DraftOrder      []string           `json:"draftOrder"`
	Awards          *Awards            `json:"awards,omitempty"`
	DraftSelections []DraftSelection   `json:"draftSelections,omitempty"`
	CoachingChanges []CoachingChange   `json:"coachingChanges,omitempty"`
	Signings        []FreeAgentSigning `json:"signings,omitempty"`
	ChangeLog       []ChangeLogEntry   `json:"changeLog,omitempty"`
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}

func cloneWinner(w *AwardWinner) *AwardWinner {
	if w == nil {
		return nil
	}
	c := *w
	return &c
}
