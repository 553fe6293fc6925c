package timetable

import "github.com/lentera-edu/timetable-api/internal/models"

// Policy bundles the static scheduling knobs supplied at construction time.
type Policy struct {
	// GridStep is the discretisation step of the day grid, in minutes.
	GridStep int
	// MinutesPerCredit converts a credit-hour count into session minutes.
	MinutesPerCredit int
	// Breaks are campus-wide intervals no session may intersect.
	Breaks []models.Interval
	// RegularDailyCap / IntensiveDailyCap limit physical sessions per class
	// section per day.
	RegularDailyCap   int
	IntensiveDailyCap int
	// OnlineCutoff is the clock time past which a placed session is held
	// online even though it keeps its room.
	OnlineCutoff models.TimeOfDay
}

// DefaultPolicy returns the campus defaults: 10-minute grid, 50 minutes per
// credit, midday and early-evening breaks, caps 3/10, 21:00 cutoff.
func DefaultPolicy() Policy {
	return Policy{
		GridStep:         10,
		MinutesPerCredit: 50,
		Breaks: []models.Interval{
			{Start: 12 * 60, End: 13 * 60},
			{Start: 18 * 60, End: 18*60 + 30},
		},
		RegularDailyCap:   3,
		IntensiveDailyCap: 10,
		OnlineCutoff:      21 * 60,
	}
}

// SessionDuration returns the session length in minutes for a credit count.
func (p Policy) SessionDuration(credits int) int {
	return credits * p.MinutesPerCredit
}

// DailyCap returns the per-day physical session cap for a section.
func (p Policy) DailyCap(section models.ClassSection) int {
	if section.Cohort.Intensive() {
		return p.IntensiveDailyCap
	}
	return p.RegularDailyCap
}

// InBreak reports whether the interval intersects any configured break.
func (p Policy) InBreak(iv models.Interval) bool {
	for _, brk := range p.Breaks {
		if iv.Overlaps(brk) {
			return true
		}
	}
	return false
}
