package logging

import "log/slog"

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldYear       = "year"
	FieldWeek       = "week"
	FieldPhase      = "phase"
	FieldSubphase   = "offseason_phase"
	FieldAction     = "action"
	FieldTeamID     = "team_id"
	FieldSlot       = "slot"
	FieldRevision   = "revision"
	FieldBackend    = "backend"
	FieldSeed       = "seed"
)

// CalendarFields returns year, week and phase key/value pairs for a log
// call, followed by extra.
func CalendarFields(year, week int, phase string, extra ...any) []any {
	args := make([]any, 0, 6+len(extra))
	args = append(args, FieldYear, year)
	if week > 0 {
		args = append(args, FieldWeek, week)
	}
	if phase != "" {
		args = append(args, FieldPhase, phase)
	}
	return append(args, extra...)
}

// WithCommon appends service/version fields when provided.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
