package models

// EntryStatus is the placement status carried on a schedule entry.
type EntryStatus string

const (
	// StatusScheduled marks a regular physical placement.
	StatusScheduled EntryStatus = "TERJADWAL"
	// StatusOnline marks either a late-evening session (still roomed) or the
	// no-room fallback placement (day OnlineDay, room NoRoom).
	StatusOnline EntryStatus = "ONLINE"
)

const (
	// OnlineDay is the day value of a fallback placement without a room.
	OnlineDay = "ONLINE"
	// NoRoom is the room value of a fallback placement.
	NoRoom = "-"
)

// FailureReasonNoSlot is the fixed reason recorded when no physical slot
// exists for a section.
const FailureReasonNoSlot = "Tidak ditemukan slot tersedia sesuai SKS dan waktu dosen"

// ScheduleEntry is one placed (or fallback) session. Exactly one entry is
// produced per (offering, section) pair.
type ScheduleEntry struct {
	Lecturer string      `json:"lecturer"`
	Course   string      `json:"course"`
	Section  string      `json:"section"`
	Day      string      `json:"day"`
	Start    TimeOfDay   `json:"start"`
	End      TimeOfDay   `json:"end"`
	Room     string      `json:"room"`
	Status   EntryStatus `json:"status"`
}

// Fallback reports whether the entry is the no-room online fallback.
func (e ScheduleEntry) Fallback() bool {
	return e.Day == OnlineDay && e.Room == NoRoom
}

// FailureRecord documents a section that could not be placed physically. It
// always accompanies a fallback ScheduleEntry, never replaces it.
type FailureRecord struct {
	Lecturer       string `json:"lecturer"`
	Course         string `json:"course"`
	Section        string `json:"section"`
	Reason         string `json:"reason"`
	AvailableDays  string `json:"availableDays"`
	AvailableTimes string `json:"availableTimes"`
	Credits        int    `json:"credits"`
}

// RunStats summarises one allocation run.
type RunStats struct {
	Offerings int `json:"offerings"`
	Entries   int `json:"entries"`
	Scheduled int `json:"scheduled"`
	Online    int `json:"online"`
	Fallback  int `json:"fallback"`
}
