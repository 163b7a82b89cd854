package offseason

// Phase is one of the twelve ordered offseason stages.
type Phase string

const (
	PhaseSeasonEnd          Phase = "SEASON_END"
	PhaseCoachingDecisions  Phase = "COACHING_DECISIONS"
	PhaseContractManagement Phase = "CONTRACT_MANAGEMENT"
	PhaseCombine            Phase = "COMBINE"
	PhaseFreeAgency         Phase = "FREE_AGENCY"
	PhaseDraft              Phase = "DRAFT"
	PhaseUDFA               Phase = "UDFA"
	PhaseOTAs               Phase = "OTAS"
	PhaseTrainingCamp       Phase = "TRAINING_CAMP"
	PhasePreseason          Phase = "PRESEASON"
	PhaseFinalCuts          Phase = "FINAL_CUTS"
	PhaseSeasonStart        Phase = "SEASON_START"
)

// Phases is the fixed order; Phases[i] maps to offseason sub-phase i+1.
var Phases = []Phase{
	PhaseSeasonEnd,
	PhaseCoachingDecisions,
	PhaseContractManagement,
	PhaseCombine,
	PhaseFreeAgency,
	PhaseDraft,
	PhaseUDFA,
	PhaseOTAs,
	PhaseTrainingCamp,
	PhasePreseason,
	PhaseFinalCuts,
	PhaseSeasonStart,
}

// Index returns the 1-based position of p, or 0 if p is unknown.
func (p Phase) Index() int {
	for i, cur := range Phases {
		if cur == p {
			return i + 1
		}
	}
	return 0
}

// Valid reports whether p is one of the twelve phases.
func (p Phase) Valid() bool {
	return p.Index() > 0
}

// Next returns the following phase; ok is false after PhaseSeasonStart.
func (p Phase) Next() (Phase, bool) {
	idx := p.Index()
	if idx == 0 || idx >= len(Phases) {
		return "", false
	}
	return Phases[idx], true
}

// PhaseAt returns the phase for a 1-based sub-phase number.
func PhaseAt(subphase int) (Phase, bool) {
	if subphase < 1 || subphase > len(Phases) {
		return "", false
	}
	return Phases[subphase-1], true
}

// Title returns a display name.
func (p Phase) Title() string {
	switch p {
	case PhaseSeasonEnd:
		return "Season End"
	case PhaseCoachingDecisions:
		return "Coaching Decisions"
	case PhaseContractManagement:
		return "Contract Management"
	case PhaseCombine:
		return "Scouting Combine"
	case PhaseFreeAgency:
		return "Free Agency"
	case PhaseDraft:
		return "Draft"
	case PhaseUDFA:
		return "Undrafted Free Agents"
	case PhaseOTAs:
		return "OTAs"
	case PhaseTrainingCamp:
		return "Training Camp"
	case PhasePreseason:
		return "Preseason"
	case PhaseFinalCuts:
		return "Final Cuts"
	case PhaseSeasonStart:
		return "Season Start"
	}
	return string(p)
}
