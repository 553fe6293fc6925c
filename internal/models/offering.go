package models

import "strings"

// AllSentinel marks an unconstrained availability field in roster input.
const AllSentinel = "ALL"

// CourseOffering is one lecturer+course roster row, possibly spanning several
// class sections. Immutable once constructed.
type CourseOffering struct {
	Lecturer string   `json:"lecturer" validate:"required"`
	Course   string   `json:"course" validate:"required"`
	Credits  int      `json:"credits" validate:"required,min=1"`
	Sections []string `json:"sections" validate:"required,min=1"`
	// Days holds the lecturer's available weekdays in declared order.
	// Empty means unconstrained.
	Days []string `json:"days,omitempty"`
	// Times is the raw available-times constraint ("ALL" or "HH:MM - ...").
	Times string `json:"times,omitempty"`
}

// AvailableDays returns the declared availability, or the full week when the
// offering is unconstrained. Order is load-bearing: it decides which day wins
// a contested slot.
func (o CourseOffering) AvailableDays() []string {
	if len(o.Days) == 0 {
		return DayNames
	}
	if len(o.Days) == 1 && strings.EqualFold(strings.TrimSpace(o.Days[0]), AllSentinel) {
		return DayNames
	}
	days := make([]string, 0, len(o.Days))
	for _, day := range o.Days {
		day = strings.ToUpper(strings.TrimSpace(day))
		if day != "" {
			days = append(days, day)
		}
	}
	return days
}
