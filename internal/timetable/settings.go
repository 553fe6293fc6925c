package timetable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lentera-edu/timetable-api/internal/models"
	"github.com/lentera-edu/timetable-api/pkg/config"
)

// PolicyFromConfig overlays configured scheduler knobs onto the defaults.
func PolicyFromConfig(cfg config.SchedulerConfig) (Policy, error) {
	policy := DefaultPolicy()
	if cfg.GridStepMinutes > 0 {
		policy.GridStep = cfg.GridStepMinutes
	}
	if cfg.MinutesPerCredit > 0 {
		policy.MinutesPerCredit = cfg.MinutesPerCredit
	}
	if cfg.RegularDailyCap > 0 {
		policy.RegularDailyCap = cfg.RegularDailyCap
	}
	if cfg.IntensiveDailyCap > 0 {
		policy.IntensiveDailyCap = cfg.IntensiveDailyCap
	}
	if len(cfg.Breaks) > 0 {
		breaks, err := ParseBreaks(cfg.Breaks)
		if err != nil {
			return Policy{}, err
		}
		policy.Breaks = breaks
	}
	if cfg.OnlineCutoff != "" {
		cutoff, err := models.ParseTimeOfDay(cfg.OnlineCutoff)
		if err != nil {
			return Policy{}, fmt.Errorf("online cutoff: %w", err)
		}
		policy.OnlineCutoff = cutoff
	}
	return policy, nil
}

// ParseBreaks converts "HH:MM-HH:MM" specs into break intervals.
func ParseBreaks(specs []string) ([]models.Interval, error) {
	breaks := make([]models.Interval, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, "-", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("break %q: want HH:MM-HH:MM", spec)
		}
		start, err := models.ParseTimeOfDay(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("break %q: %w", spec, err)
		}
		end, err := models.ParseTimeOfDay(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("break %q: %w", spec, err)
		}
		if end <= start {
			return nil, fmt.Errorf("break %q: end before start", spec)
		}
		breaks = append(breaks, models.Interval{Start: start, End: end})
	}
	return breaks, nil
}

// ParseFloorPreferences merges "PROGRAM:floor;floor" overrides onto the
// default policy. An empty override list keeps the defaults untouched.
func ParseFloorPreferences(specs []string) (FloorPreferences, error) {
	prefs := DefaultFloorPreferences()
	for _, spec := range specs {
		parts := strings.SplitN(spec, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("floor preference %q: want PROGRAM:floor;floor", spec)
		}
		program := strings.ToUpper(strings.TrimSpace(parts[0]))
		if program == "" {
			return nil, fmt.Errorf("floor preference %q: empty program", spec)
		}
		var floors []int
		for _, raw := range strings.Split(parts[1], ";") {
			floor, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("floor preference %q: %w", spec, err)
			}
			floors = append(floors, floor)
		}
		prefs[program] = floors
	}
	return prefs, nil
}
