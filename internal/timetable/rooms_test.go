package timetable

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	require.Len(t, catalog.Buildings, 2)

	gdA := catalog.Buildings[0]
	assert.Equal(t, "GD A", gdA.Name)
	require.Len(t, gdA.Floors[3], 8)
	assert.Equal(t, "A3-1", gdA.Floors[3][0].ID)
	assert.Equal(t, "A5-8", gdA.Floors[5][7].ID)

	gdB := catalog.Buildings[1]
	assert.Equal(t, "GD B", gdB.Name)
	assert.Empty(t, gdB.Floors[2])
	require.Len(t, gdB.Floors[4], 5)
	assert.Equal(t, "B4-5", gdB.Floors[4][4].ID)
}

func TestProgramCode(t *testing.T) {
	tests := []struct {
		code   string
		want   string
		wantOK bool
	}{
		{"TI21A", "TI", true},
		{"si22b", "si", true},
		{"9X21", "", false},
		{"T", "", false},
		{"", "", false},
		{"T1A", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, ok := ProgramCode(tt.code)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePrefersDeclaredFloorOrder(t *testing.T) {
	resolver := NewRoomResolver(DefaultCatalog(), DefaultFloorPreferences())
	ledger := NewLedger()

	// DK prefers floor 4 before floor 5.
	room, ok := resolver.Resolve(ledger, "SENIN", iv("08:00", "09:40"), "DK21A")
	require.True(t, ok)
	assert.Equal(t, "A4-1", room.ID)
}

func TestResolveSkipsOccupiedRooms(t *testing.T) {
	resolver := NewRoomResolver(DefaultCatalog(), DefaultFloorPreferences())
	ledger := NewLedger()

	ledger.Book("SENIN", RoomKey("A3-1"), iv("08:00", "09:40"))
	ledger.Book("SENIN", RoomKey("A3-2"), iv("08:00", "09:40"))

	room, ok := resolver.Resolve(ledger, "SENIN", iv("08:00", "09:40"), "TI21A")
	require.True(t, ok)
	assert.Equal(t, "A3-3", room.ID)

	// Same rooms on a different day stay first choice.
	room, ok = resolver.Resolve(ledger, "SELASA", iv("08:00", "09:40"), "TI21A")
	require.True(t, ok)
	assert.Equal(t, "A3-1", room.ID)
}

func TestResolveExhaustsPreferredFloorsAcrossBuildings(t *testing.T) {
	resolver := NewRoomResolver(DefaultCatalog(), DefaultFloorPreferences())
	ledger := NewLedger()

	// Fill every TI-preferred room in GD A (floors 3 and 4, 8 rooms each).
	for _, floor := range []int{3, 4} {
		for i := 1; i <= 8; i++ {
			ledger.Book("SENIN", RoomKey(fmt.Sprintf("A%d-%d", floor, i)), iv("08:00", "09:40"))
		}
	}

	room, ok := resolver.Resolve(ledger, "SENIN", iv("08:00", "09:40"), "TI21A")
	require.True(t, ok)
	assert.Equal(t, "B3-1", room.ID)
}

func TestResolveUnknownProgram(t *testing.T) {
	resolver := NewRoomResolver(DefaultCatalog(), DefaultFloorPreferences())
	ledger := NewLedger()

	_, ok := resolver.Resolve(ledger, "SENIN", iv("08:00", "09:40"), "ZZ21A")
	assert.False(t, ok)

	_, ok = resolver.Resolve(ledger, "SENIN", iv("08:00", "09:40"), "9X21")
	assert.False(t, ok)
}
