package timetable

import "github.com/lentera-edu/timetable-api/internal/models"

// Grid discretises a day into fixed-step candidate instants.
type Grid struct {
	step int
}

// NewGrid builds a grid with the given step in minutes (default 10).
func NewGrid(step int) Grid {
	if step <= 0 {
		step = 10
	}
	return Grid{step: step}
}

// Instants enumerates the step-aligned instants inside [window.Start,
// window.End), ascending. The window end itself is excluded.
func (g Grid) Instants(window models.Interval) []models.TimeOfDay {
	if window.End <= window.Start {
		return nil
	}
	instants := make([]models.TimeOfDay, 0, int(window.End-window.Start)/g.step+1)
	for t := window.Start; t < window.End; t = t.Add(g.step) {
		instants = append(instants, t)
	}
	return instants
}
