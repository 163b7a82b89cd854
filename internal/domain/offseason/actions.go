package offseason

import (
	"encoding/json"
	"fmt"
)

// ActionType tags an action on the wire.
type ActionType string

const (
	ActionCompleteTask           ActionType = "COMPLETE_TASK"
	ActionAutoComplete           ActionType = "AUTO_COMPLETE"
	ActionApplyCoachingChanges   ActionType = "APPLY_COACHING_CHANGES"
	ActionApplyContractDecision  ActionType = "APPLY_CONTRACT_DECISION"
	ActionApplyFreeAgencySigning ActionType = "APPLY_FREE_AGENCY_SIGNING"
	ActionAdvanceFreeAgencyDay   ActionType = "ADVANCE_FREE_AGENCY_DAY"
	ActionApplyDraftSelections   ActionType = "APPLY_DRAFT_SELECTIONS"
	ActionApplyUDFASignings      ActionType = "APPLY_UDFA_SIGNINGS"
	ActionApplyFinalCuts         ActionType = "APPLY_FINAL_CUTS"
)

// Action is the closed set of offseason commands. Handling is done through
// Visitor, so adding an action without a handler fails to compile.
type Action interface {
	Type() ActionType
	// TargetPhase is the phase the caller submitted the action against.
	TargetPhase() Phase
	// RequiredPhase is the only phase the action is legal in; empty means any.
	RequiredPhase() Phase
	Accept(v Visitor) error
}

// Visitor handles every action type.
type Visitor interface {
	VisitCompleteTask(CompleteTask) error
	VisitAutoComplete(AutoComplete) error
	VisitApplyCoachingChanges(ApplyCoachingChanges) error
	VisitApplyContractDecision(ApplyContractDecision) error
	VisitApplyFreeAgencySigning(ApplyFreeAgencySigning) error
	VisitAdvanceFreeAgencyDay(AdvanceFreeAgencyDay) error
	VisitApplyDraftSelections(ApplyDraftSelections) error
	VisitApplyUDFASignings(ApplyUDFASignings) error
	VisitApplyFinalCuts(ApplyFinalCuts) error
}

// CompleteTask marks one task of the phase done.
type CompleteTask struct {
	Phase  Phase  `json:"phase"`
	TaskID string `json:"taskId"`
}

func (a CompleteTask) Type() ActionType       { return ActionCompleteTask }
func (a CompleteTask) TargetPhase() Phase     { return a.Phase }
func (a CompleteTask) RequiredPhase() Phase   { return "" }
func (a CompleteTask) Accept(v Visitor) error { return v.VisitCompleteTask(a) }

// AutoComplete marks every task of the phase done on behalf of a collaborator.
type AutoComplete struct {
	Phase Phase `json:"phase"`
}

func (a AutoComplete) Type() ActionType       { return ActionAutoComplete }
func (a AutoComplete) TargetPhase() Phase     { return a.Phase }
func (a AutoComplete) RequiredPhase() Phase   { return "" }
func (a AutoComplete) Accept(v Visitor) error { return v.VisitAutoComplete(a) }

// ApplyCoachingChanges replaces head coaches.
type ApplyCoachingChanges struct {
	Phase   Phase            `json:"phase"`
	Changes []CoachingChange `json:"changes"`
}

func (a ApplyCoachingChanges) Type() ActionType       { return ActionApplyCoachingChanges }
func (a ApplyCoachingChanges) TargetPhase() Phase     { return a.Phase }
func (a ApplyCoachingChanges) RequiredPhase() Phase   { return PhaseCoachingDecisions }
func (a ApplyCoachingChanges) Accept(v Visitor) error { return v.VisitApplyCoachingChanges(a) }

// ApplyContractDecision extends, tags or releases a player.
type ApplyContractDecision struct {
	Phase    Phase                `json:"phase"`
	TeamID   string               `json:"teamId"`
	PlayerID string               `json:"playerId"`
	Decision ContractDecisionKind `json:"decision"`
	Years    int                  `json:"years,omitempty"`
	Salary   int                  `json:"salary,omitempty"`
}

func (a ApplyContractDecision) Type() ActionType       { return ActionApplyContractDecision }
func (a ApplyContractDecision) TargetPhase() Phase     { return a.Phase }
func (a ApplyContractDecision) RequiredPhase() Phase   { return PhaseContractManagement }
func (a ApplyContractDecision) Accept(v Visitor) error { return v.VisitApplyContractDecision(a) }

// ApplyFreeAgencySigning signs a free agent.
type ApplyFreeAgencySigning struct {
	Phase    Phase  `json:"phase"`
	TeamID   string `json:"teamId"`
	PlayerID string `json:"playerId"`
	Years    int    `json:"years"`
	Salary   int    `json:"salary"`
}

func (a ApplyFreeAgencySigning) Type() ActionType       { return ActionApplyFreeAgencySigning }
func (a ApplyFreeAgencySigning) TargetPhase() Phase     { return a.Phase }
func (a ApplyFreeAgencySigning) RequiredPhase() Phase   { return PhaseFreeAgency }
func (a ApplyFreeAgencySigning) Accept(v Visitor) error { return v.VisitApplyFreeAgencySigning(a) }

// AdvanceFreeAgencyDay moves the free agency day counter forward.
type AdvanceFreeAgencyDay struct {
	Phase Phase `json:"phase"`
}

func (a AdvanceFreeAgencyDay) Type() ActionType       { return ActionAdvanceFreeAgencyDay }
func (a AdvanceFreeAgencyDay) TargetPhase() Phase     { return a.Phase }
func (a AdvanceFreeAgencyDay) RequiredPhase() Phase   { return PhaseFreeAgency }
func (a AdvanceFreeAgencyDay) Accept(v Visitor) error { return v.VisitAdvanceFreeAgencyDay(a) }

// ApplyDraftSelections records draft picks.
type ApplyDraftSelections struct {
	Phase      Phase            `json:"phase"`
	Selections []DraftSelection `json:"selections"`
}

func (a ApplyDraftSelections) Type() ActionType       { return ActionApplyDraftSelections }
func (a ApplyDraftSelections) TargetPhase() Phase     { return a.Phase }
func (a ApplyDraftSelections) RequiredPhase() Phase   { return PhaseDraft }
func (a ApplyDraftSelections) Accept(v Visitor) error { return v.VisitApplyDraftSelections(a) }

// ApplyUDFASignings signs undrafted prospects to one team.
type ApplyUDFASignings struct {
	Phase       Phase    `json:"phase"`
	TeamID      string   `json:"teamId"`
	ProspectIDs []string `json:"prospectIds"`
}

func (a ApplyUDFASignings) Type() ActionType       { return ActionApplyUDFASignings }
func (a ApplyUDFASignings) TargetPhase() Phase     { return a.Phase }
func (a ApplyUDFASignings) RequiredPhase() Phase   { return PhaseUDFA }
func (a ApplyUDFASignings) Accept(v Visitor) error { return v.VisitApplyUDFASignings(a) }

// ApplyFinalCuts releases players from one team.
type ApplyFinalCuts struct {
	Phase     Phase    `json:"phase"`
	TeamID    string   `json:"teamId"`
	PlayerIDs []string `json:"playerIds"`
}

func (a ApplyFinalCuts) Type() ActionType       { return ActionApplyFinalCuts }
func (a ApplyFinalCuts) TargetPhase() Phase     { return a.Phase }
func (a ApplyFinalCuts) RequiredPhase() Phase   { return PhaseFinalCuts }
func (a ApplyFinalCuts) Accept(v Visitor) error { return v.VisitApplyFinalCuts(a) }

type envelope struct {
	Type ActionType `json:"type"`
}

// DecodeAction parses a tagged {type, phase, ...fields} payload.
func DecodeAction(data []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode action envelope: %w", err)
	}

	var (
		action Action
		err    error
	)
	switch env.Type {
	case ActionCompleteTask:
		action, err = decodeInto[CompleteTask](data)
	case ActionAutoComplete:
		action, err = decodeInto[AutoComplete](data)
	case ActionApplyCoachingChanges:
		action, err = decodeInto[ApplyCoachingChanges](data)
	case ActionApplyContractDecision:
		action, err = decodeInto[ApplyContractDecision](data)
	case ActionApplyFreeAgencySigning:
		action, err = decodeInto[ApplyFreeAgencySigning](data)
	case ActionAdvanceFreeAgencyDay:
		action, err = decodeInto[AdvanceFreeAgencyDay](data)
	case ActionApplyDraftSelections:
		action, err = decodeInto[ApplyDraftSelections](data)
	case ActionApplyUDFASignings:
		action, err = decodeInto[ApplyUDFASignings](data)
	case ActionApplyFinalCuts:
		action, err = decodeInto[ApplyFinalCuts](data)
	case "":
		return nil, fmt.Errorf("action type is required")
	default:
		return nil, fmt.Errorf("unknown action type %q", env.Type)
	}
	if err != nil {
		return nil, err
	}
	if !action.TargetPhase().Valid() {
		return nil, fmt.Errorf("action %s has invalid phase %q", env.Type, action.TargetPhase())
	}
	return action, nil
}

// EncodeAction renders an action with its type tag.
func EncodeAction(a Action) ([]byte, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	tag, err := json.Marshal(a.Type())
	if err != nil {
		return nil, err
	}
	fields["type"] = tag
	return json.Marshal(fields)
}

func decodeInto[T Action](data []byte) (Action, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	return v, nil
}
