package timetable

import (
	"fmt"
	"unicode"

	"github.com/lentera-edu/timetable-api/internal/models"
)

// Room is one physical room in the campus catalog.
type Room struct {
	ID       string `json:"id"`
	Building string `json:"building"`
	Floor    int    `json:"floor"`
	Index    int    `json:"index"`
}

// Building groups rooms by floor. Floor slices keep catalog index order.
type Building struct {
	Name   string
	Floors map[int][]Room
}

// Catalog is the static room inventory. Building order is the declared
// search order and is significant.
type Catalog struct {
	Buildings []Building
}

// FloorPreferences maps a program code to its preferred floors, first listed
// floor wins. The list order is policy, not numeric order.
type FloorPreferences map[string][]int

// DefaultCatalog returns the campus inventory: GD A with eight rooms on
// floors 2-5, GD B with five rooms on floors 3-5.
func DefaultCatalog() Catalog {
	return Catalog{Buildings: []Building{
		buildBuilding("GD A", "A", []int{2, 3, 4, 5}, 8),
		buildBuilding("GD B", "B", []int{3, 4, 5}, 5),
	}}
}

func buildBuilding(name, prefix string, floors []int, roomsPerFloor int) Building {
	b := Building{Name: name, Floors: make(map[int][]Room, len(floors))}
	for _, floor := range floors {
		rooms := make([]Room, 0, roomsPerFloor)
		for i := 1; i <= roomsPerFloor; i++ {
			rooms = append(rooms, Room{
				ID:       fmt.Sprintf("%s%d-%d", prefix, floor, i),
				Building: name,
				Floor:    floor,
				Index:    i,
			})
		}
		b.Floors[floor] = rooms
	}
	return b
}

// DefaultFloorPreferences returns the program-to-floor policy.
func DefaultFloorPreferences() FloorPreferences {
	return FloorPreferences{
		"TI":  {3, 4},
		"SI":  {3, 4},
		"DK":  {4, 5},
		"SD":  {2, 3},
		"HK":  {3, 4},
		"ME":  {4, 5},
		"EL":  {4, 5},
		"AKT": {2, 3},
		"MJN": {2, 3},
	}
}

// ProgramCode extracts the two-letter program prefix of a section code.
// "No prefix" is a first-class outcome, not an error: codes that do not start
// with two letters fail closed.
func ProgramCode(sectionCode string) (string, bool) {
	runes := []rune(sectionCode)
	if len(runes) < 2 || !unicode.IsLetter(runes[0]) || !unicode.IsLetter(runes[1]) {
		return "", false
	}
	return string(runes[:2]), true
}

// RoomResolver finds the first free room for a program following the fixed
// preference order: building declaration order, then the program's preferred
// floors in listed order, then room index order.
type RoomResolver struct {
	catalog Catalog
	prefs   FloorPreferences
}

// NewRoomResolver builds a resolver over a catalog and floor policy.
func NewRoomResolver(catalog Catalog, prefs FloorPreferences) *RoomResolver {
	if prefs == nil {
		prefs = FloorPreferences{}
	}
	return &RoomResolver{catalog: catalog, prefs: prefs}
}

// Resolve returns the first room free on (day, iv) for the section's program.
// It performs no booking; the caller books separately. Unknown programs and
// codes without an alphabetic prefix resolve to nothing.
func (r *RoomResolver) Resolve(ledger *Ledger, day string, iv models.Interval, sectionCode string) (Room, bool) {
	program, ok := ProgramCode(sectionCode)
	if !ok {
		return Room{}, false
	}
	floors := r.prefs[program]
	for _, building := range r.catalog.Buildings {
		for _, floor := range floors {
			for _, room := range building.Floors[floor] {
				if ledger.IsFree(day, RoomKey(room.ID), iv) {
					return room, true
				}
			}
		}
	}
	return Room{}, false
}
