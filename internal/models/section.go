package models

import "strings"

// DayNames lists the scheduling week in allocation order.
var DayNames = []string{"SENIN", "SELASA", "RABU", "KAMIS", "JUMAT", "SABTU", "MINGGU"}

const (
	DaySaturday = "SABTU"
	DaySunday   = "MINGGU"
)

// CohortKind classifies a class section by its code markers.
type CohortKind int

const (
	CohortRegular CohortKind = iota
	CohortSaturday
	CohortSunday
	CohortEvening
)

func (k CohortKind) String() string {
	switch k {
	case CohortSaturday:
		return "saturday"
	case CohortSunday:
		return "sunday"
	case CohortEvening:
		return "evening"
	default:
		return "regular"
	}
}

// Intensive reports whether the cohort runs under the relaxed daily session cap.
func (k CohortKind) Intensive() bool {
	return k != CohortRegular
}

// ClassSection is one student cohort taking an offering. The code encodes the
// program prefix and cohort markers: B for Saturday-only, C for Sunday-only,
// M for evening cohorts.
type ClassSection struct {
	Code   string     `json:"code"`
	Cohort CohortKind `json:"cohort"`
	Window Interval   `json:"window"`
}

// Marker-derived time windows. The evening window applies whenever the code
// carries the M marker, even for Saturday/Sunday cohorts.
var (
	regularWindow   = Interval{Start: 8 * 60, End: 18 * 60}
	intensiveWindow = Interval{Start: 8 * 60, End: 21 * 60}
	eveningWindow   = Interval{Start: 17 * 60, End: 22 * 60}
)

// NewClassSection normalizes a section code and derives its cohort kind and
// valid time window. The derivation happens exactly once here; callers must
// not re-inspect marker letters.
func NewClassSection(code string) ClassSection {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	var kind CohortKind
	switch {
	case strings.Contains(normalized, "B"):
		kind = CohortSaturday
	case strings.Contains(normalized, "C"):
		kind = CohortSunday
	case strings.Contains(normalized, "M"):
		kind = CohortEvening
	}

	window := regularWindow
	switch {
	case strings.Contains(normalized, "M"):
		window = eveningWindow
	case kind == CohortSaturday || kind == CohortSunday:
		window = intensiveWindow
	}

	return ClassSection{Code: normalized, Cohort: kind, Window: window}
}

// AllowedDays returns the weekdays the cohort may be scheduled on. Saturday
// and Sunday cohorts are pinned to their single day regardless of what the
// offering declares.
func (s ClassSection) AllowedDays() []string {
	switch s.Cohort {
	case CohortSaturday:
		return []string{DaySaturday}
	case CohortSunday:
		return []string{DaySunday}
	default:
		return DayNames
	}
}
