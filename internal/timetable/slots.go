package timetable

import (
	"fmt"
	"strings"

	"github.com/lentera-edu/timetable-api/internal/models"
)

// ParseEarliestStart interprets an available-times constraint. A blank value
// or the ALL sentinel means unconstrained (ok=false, no error). A constraint
// of the form "HH:MM - ..." yields the earliest permitted start. Anything
// else is a parse error; callers treat it as unconstrained and warn once.
func ParseEarliestStart(raw string) (models.TimeOfDay, bool, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, models.AllSentinel) {
		return 0, false, nil
	}
	startPart := strings.TrimSpace(strings.SplitN(trimmed, "-", 2)[0])
	if !strings.Contains(startPart, ":") {
		return 0, false, fmt.Errorf("available-times %q has no parsable start", raw)
	}
	start, err := models.ParseTimeOfDay(startPart)
	if err != nil {
		return 0, false, fmt.Errorf("available-times %q: %w", raw, err)
	}
	return start, true, nil
}

// FindSlot scans the section's valid window for the earliest start where a
// session of the given duration fits: inside the window, clear of breaks, at
// or after the earliest-start constraint, and free for both the lecturer and
// the section per the ledger. First fit wins; there is no look-ahead.
func FindSlot(
	ledger *Ledger,
	grid Grid,
	policy Policy,
	section models.ClassSection,
	lecturer string,
	day string,
	duration int,
	earliest *models.TimeOfDay,
) (models.Interval, bool) {
	for _, start := range grid.Instants(section.Window) {
		end := start.Add(duration)
		if end > section.Window.End {
			continue
		}
		iv := models.Interval{Start: start, End: end}
		if policy.InBreak(iv) {
			continue
		}
		if earliest != nil && start < *earliest {
			continue
		}
		if !ledger.IsFree(day, LecturerKey(lecturer), iv) {
			continue
		}
		if !ledger.IsFree(day, SectionKey(section.Code), iv) {
			continue
		}
		return iv, true
	}
	return models.Interval{}, false
}
