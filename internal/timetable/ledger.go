package timetable

import "github.com/lentera-edu/timetable-api/internal/models"

// Resource key constructors. Lecturers, class sections, and rooms share the
// ledger namespace, partitioned by kind so a lecturer named like a room can
// never collide.
func LecturerKey(id string) string { return "dosen:" + id }

func SectionKey(code string) string { return "kelas:" + code }

func RoomKey(id string) string { return "ruang:" + id }

// Ledger records booked intervals per (day, resource key). It grows
// monotonically during a run and is discarded afterwards; there is no removal
// operation.
type Ledger struct {
	booked map[string]map[string][]models.Interval
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{booked: make(map[string]map[string][]models.Interval)}
}

// IsFree reports whether no booked interval for (day, key) overlaps iv.
func (l *Ledger) IsFree(day, key string, iv models.Interval) bool {
	for _, existing := range l.booked[day][key] {
		if existing.Overlaps(iv) {
			return false
		}
	}
	return true
}

// Book unconditionally appends the interval. The caller must have verified
// freedom via IsFree for every resource key touched by the same placement
// before booking any of them; the ledger enforces no cross-key atomicity.
func (l *Ledger) Book(day, key string, iv models.Interval) {
	if l.booked[day] == nil {
		l.booked[day] = make(map[string][]models.Interval)
	}
	l.booked[day][key] = append(l.booked[day][key], iv)
}

// Booked returns the intervals committed under (day, key). The returned slice
// is the ledger's own; callers must not mutate it.
func (l *Ledger) Booked(day, key string) []models.Interval {
	return l.booked[day][key]
}
