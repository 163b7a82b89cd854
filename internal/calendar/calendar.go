package calendar

import "fmt"

// Phase is the coarse stage of a league year.
type Phase string

const (
	PhasePreseason     Phase = "PRESEASON"
	PhaseRegularSeason Phase = "REGULAR_SEASON"
	PhasePlayoffs      Phase = "PLAYOFFS"
	PhaseOffseason     Phase = "OFFSEASON"
)

const (
	PreseasonWeeks     = 4
	RegularSeasonWeeks = 18
	FirstPlayoffWeek   = RegularSeasonWeeks + 1
	LastPlayoffWeek    = 22
	OffseasonSubphases = 12
)

// Calendar is the clock every scheduling decision is made against.
// OffseasonSubphase is non-nil exactly when Phase is PhaseOffseason.
type Calendar struct {
	Year              int   `json:"year"`
	Week              int   `json:"week"`
	Phase             Phase `json:"phase"`
	OffseasonSubphase *int  `json:"offseasonSubphase"`
}

// New returns the calendar at week 1 of the given year's preseason.
func New(year int) Calendar {
	return Calendar{Year: year, Week: 1, Phase: PhasePreseason}
}

// Subphase returns the offseason sub-phase, or 0 outside the offseason.
func (c Calendar) Subphase() int {
	if c.OffseasonSubphase == nil {
		return 0
	}
	return *c.OffseasonSubphase
}

// IsGameWeek reports whether the calendar sits on a week with scheduled games.
func (c Calendar) IsGameWeek() bool {
	return c.Phase == PhaseRegularSeason || c.Phase == PhasePlayoffs
}

// Advance moves the clock forward one step. It is total: any calendar that
// satisfies Validate produces another calendar that satisfies Validate.
func Advance(c Calendar) Calendar {
	next := Calendar{Year: c.Year, Week: c.Week, Phase: c.Phase}

	switch c.Phase {
	case PhaseRegularSeason:
		next.Week++
		if next.Week > RegularSeasonWeeks {
			next.Phase = PhasePlayoffs
			next.Week = FirstPlayoffWeek
		}
	case PhasePlayoffs:
		next.Week++
		if next.Week > LastPlayoffWeek {
			next.Phase = PhaseOffseason
			next.Week = 1
			next.OffseasonSubphase = intPtr(1)
		}
	case PhaseOffseason:
		sub := c.Subphase() + 1
		if sub > OffseasonSubphases {
			next.Phase = PhasePreseason
			next.Year++
			next.Week = 1
			break
		}
		next.OffseasonSubphase = intPtr(sub)
	default:
		next.Phase = PhasePreseason
		next.Week++
		if next.Week > PreseasonWeeks {
			next.Phase = PhaseRegularSeason
			next.Week = 1
		}
	}
	return next
}

// Validate checks the calendar invariants.
func Validate(c Calendar) error {
	switch c.Phase {
	case PhasePreseason:
		if c.Week < 1 || c.Week > PreseasonWeeks {
			return fmt.Errorf("preseason week %d out of range", c.Week)
		}
	case PhaseRegularSeason:
		if c.Week < 1 || c.Week > RegularSeasonWeeks {
			return fmt.Errorf("regular season week %d out of range", c.Week)
		}
	case PhasePlayoffs:
		if c.Week < FirstPlayoffWeek || c.Week > LastPlayoffWeek {
			return fmt.Errorf("playoff week %d out of range", c.Week)
		}
	case PhaseOffseason:
		if c.OffseasonSubphase == nil {
			return fmt.Errorf("offseason calendar missing sub-phase")
		}
		if sub := *c.OffseasonSubphase; sub < 1 || sub > OffseasonSubphases {
			return fmt.Errorf("offseason sub-phase %d out of range", sub)
		}
		return nil
	default:
		return fmt.Errorf("unknown phase %q", c.Phase)
	}
	if c.OffseasonSubphase != nil {
		return fmt.Errorf("sub-phase set outside the offseason")
	}
	return nil
}

// Label renders a short human-readable position, e.g. "2025 Regular Season Week 3".
func (c Calendar) Label() string {
	switch c.Phase {
	case PhasePreseason:
		return fmt.Sprintf("%d Preseason Week %d", c.Year, c.Week)
	case PhaseRegularSeason:
		return fmt.Sprintf("%d Regular Season Week %d", c.Year, c.Week)
	case PhasePlayoffs:
		return fmt.Sprintf("%d Playoffs Week %d", c.Year, c.Week)
	case PhaseOffseason:
		return fmt.Sprintf("%d Offseason Stage %d", c.Year, c.Subphase())
	default:
		return fmt.Sprintf("%d %s", c.Year, c.Phase)
	}
}

func intPtr(v int) *int {
	return &v
}
