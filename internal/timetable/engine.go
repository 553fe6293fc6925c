package timetable

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lentera-edu/timetable-api/internal/models"
)

// Engine places course offerings one section at a time: first-fit day and
// slot, preference-ordered room, per-day session caps, and an unconditional
// online fallback when every permitted day is exhausted. It owns the run's
// ledger; a fresh engine is built per run.
type Engine struct {
	grid   Grid
	policy Policy
	ledger *Ledger
	rooms  *RoomResolver
	logger *zap.Logger
}

// NewEngine wires an engine with a fresh, empty ledger.
func NewEngine(policy Policy, catalog Catalog, prefs FloorPreferences, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		grid:   NewGrid(policy.GridStep),
		policy: policy,
		ledger: NewLedger(),
		rooms:  NewRoomResolver(catalog, prefs),
		logger: logger,
	}
}

// Ledger exposes the run's ledger for inspection (tests, invariant checks).
func (e *Engine) Ledger() *Ledger {
	return e.ledger
}

// Allocate processes offerings in input order and returns one schedule entry
// per (offering, section) pair plus a failure record for every fallback
// placement. The only fatal condition is a malformed offering.
func (e *Engine) Allocate(offerings []models.CourseOffering) ([]models.ScheduleEntry, []models.FailureRecord, error) {
	entries := make([]models.ScheduleEntry, 0, len(offerings))
	failures := make([]models.FailureRecord, 0)
	// sessions counts committed physical placements per day per section for
	// cap enforcement; fallback entries never reach it.
	sessions := make(map[string]map[string]int)

	for i, offering := range offerings {
		if err := validateOffering(offering); err != nil {
			return nil, nil, fmt.Errorf("offering %d (%s / %s): %w", i+1, offering.Lecturer, offering.Course, err)
		}

		duration := e.policy.SessionDuration(offering.Credits)
		availableDays := offering.AvailableDays()

		earliest, constrained, err := ParseEarliestStart(offering.Times)
		if err != nil {
			e.logger.Warn("unparsable available-times constraint, treating as unconstrained",
				zap.String("lecturer", offering.Lecturer),
				zap.String("course", offering.Course),
				zap.String("times", offering.Times),
			)
		}
		var earliestPtr *models.TimeOfDay
		if constrained {
			earliestPtr = &earliest
		}

		for _, code := range offering.Sections {
			section := models.NewClassSection(code)
			if section.Code == "" {
				continue
			}
			placed := false

			for _, day := range intersectDays(availableDays, section.AllowedDays()) {
				iv, found := FindSlot(e.ledger, e.grid, e.policy, section, offering.Lecturer, day, duration, earliestPtr)
				if !found {
					continue
				}
				room, ok := e.rooms.Resolve(e.ledger, day, iv, section.Code)
				if !ok {
					// The slot is discarded with the day; no retry at a
					// different time on the same day.
					continue
				}
				if sessions[day][section.Code] >= e.policy.DailyCap(section) {
					continue
				}

				status := models.StatusScheduled
				if iv.End > e.policy.OnlineCutoff {
					status = models.StatusOnline
				}

				e.ledger.Book(day, LecturerKey(offering.Lecturer), iv)
				e.ledger.Book(day, SectionKey(section.Code), iv)
				e.ledger.Book(day, RoomKey(room.ID), iv)
				if sessions[day] == nil {
					sessions[day] = make(map[string]int)
				}
				sessions[day][section.Code]++

				entries = append(entries, models.ScheduleEntry{
					Lecturer: offering.Lecturer,
					Course:   offering.Course,
					Section:  section.Code,
					Day:      day,
					Start:    iv.Start,
					End:      iv.End,
					Room:     room.ID,
					Status:   status,
				})
				placed = true
				break
			}

			if !placed {
				start := section.Window.Start
				entries = append(entries, models.ScheduleEntry{
					Lecturer: offering.Lecturer,
					Course:   offering.Course,
					Section:  section.Code,
					Day:      models.OnlineDay,
					Start:    start,
					End:      start.Add(duration),
					Room:     models.NoRoom,
					Status:   models.StatusOnline,
				})
				failures = append(failures, models.FailureRecord{
					Lecturer:       offering.Lecturer,
					Course:         offering.Course,
					Section:        section.Code,
					Reason:         models.FailureReasonNoSlot,
					AvailableDays:  strings.Join(availableDays, ", "),
					AvailableTimes: offering.Times,
					Credits:        offering.Credits,
				})
			}
		}
	}

	return entries, failures, nil
}

func validateOffering(o models.CourseOffering) error {
	if strings.TrimSpace(o.Lecturer) == "" {
		return fmt.Errorf("missing lecturer")
	}
	if strings.TrimSpace(o.Course) == "" {
		return fmt.Errorf("missing course name")
	}
	if o.Credits < 1 {
		return fmt.Errorf("credit hours must be positive, got %d", o.Credits)
	}
	if len(o.Sections) == 0 {
		return fmt.Errorf("no class sections listed")
	}
	return nil
}

// intersectDays keeps the offering's day order, filtered to the cohort's
// permitted days. The order decides which day wins a contested slot.
func intersectDays(available, allowed []string) []string {
	result := make([]string, 0, len(available))
	for _, day := range available {
		for _, candidate := range allowed {
			if day == candidate {
				result = append(result, day)
				break
			}
		}
	}
	return result
}
