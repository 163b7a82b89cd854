package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod  = "method"
	AttrPath    = "path"
	AttrStatus  = "status"
	AttrPhase   = "phase"
	AttrAction  = "action"
	AttrOutcome = "outcome"
	AttrBackend = "backend"
)

// Outcome values for AttrOutcome.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)
