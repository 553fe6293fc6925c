package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lentera-edu/timetable-api/internal/models"
)

func TestParseEarliestStart(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		want        models.TimeOfDay
		constrained bool
		wantErr     bool
	}{
		{name: "blank is unconstrained", raw: ""},
		{name: "ALL is unconstrained", raw: "ALL"},
		{name: "lowercase sentinel", raw: "all"},
		{name: "range", raw: "13:00 - 18:00", want: models.MustTimeOfDay("13:00"), constrained: true},
		{name: "open ended", raw: "17:00 -", want: models.MustTimeOfDay("17:00"), constrained: true},
		{name: "bare start", raw: "09:30", want: models.MustTimeOfDay("09:30"), constrained: true},
		{name: "no colon", raw: "afternoon", wantErr: true},
		{name: "garbage clock", raw: "2x:00 - 18:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, constrained, err := ParseEarliestStart(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, constrained)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.constrained, constrained)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindSlotFirstFit(t *testing.T) {
	ledger := NewLedger()
	section := models.NewClassSection("TI21A")

	slot, found := FindSlot(ledger, NewGrid(10), DefaultPolicy(), section, "Budi", "SENIN", 100, nil)
	require.True(t, found)
	assert.Equal(t, iv("08:00", "09:40"), slot)
}

func TestFindSlotSkipsBusyLecturer(t *testing.T) {
	ledger := NewLedger()
	ledger.Book("SENIN", LecturerKey("Budi"), iv("08:00", "10:00"))
	section := models.NewClassSection("TI21A")

	slot, found := FindSlot(ledger, NewGrid(10), DefaultPolicy(), section, "Budi", "SENIN", 100, nil)
	require.True(t, found)
	assert.Equal(t, iv("10:00", "11:40"), slot)
}

func TestFindSlotSkipsBusySection(t *testing.T) {
	ledger := NewLedger()
	ledger.Book("SENIN", SectionKey("TI21A"), iv("08:00", "09:40"))
	section := models.NewClassSection("TI21A")

	slot, found := FindSlot(ledger, NewGrid(10), DefaultPolicy(), section, "Ani", "SENIN", 100, nil)
	require.True(t, found)
	assert.Equal(t, iv("09:40", "11:20"), slot)
}

func TestFindSlotAvoidsBreaks(t *testing.T) {
	ledger := NewLedger()
	ledger.Book("SENIN", SectionKey("TI21A"), iv("08:00", "11:20"))
	section := models.NewClassSection("TI21A")

	// Next free start is 11:20, but 11:20 + 100min crosses the midday break.
	slot, found := FindSlot(ledger, NewGrid(10), DefaultPolicy(), section, "Budi", "SENIN", 100, nil)
	require.True(t, found)
	assert.Equal(t, iv("13:00", "14:40"), slot)
}

func TestFindSlotHonorsEarliestStart(t *testing.T) {
	ledger := NewLedger()
	section := models.NewClassSection("TI21A")
	earliest := models.MustTimeOfDay("13:00")

	slot, found := FindSlot(ledger, NewGrid(10), DefaultPolicy(), section, "Budi", "SENIN", 100, &earliest)
	require.True(t, found)
	assert.Equal(t, iv("13:00", "14:40"), slot)
}

func TestFindSlotRespectsWindowEnd(t *testing.T) {
	ledger := NewLedger()
	section := models.NewClassSection("TI21A")

	// A 10-hour session cannot fit the 08:00-18:00 window.
	_, found := FindSlot(ledger, NewGrid(10), DefaultPolicy(), section, "Budi", "SENIN", 600, nil)
	assert.False(t, found)
}

func TestFindSlotEveningWindow(t *testing.T) {
	ledger := NewLedger()
	section := models.NewClassSection("TI21M")

	// Every start before 18:30 crosses the evening break for a 200min session.
	slot, found := FindSlot(ledger, NewGrid(10), DefaultPolicy(), section, "Budi", "SENIN", 200, nil)
	require.True(t, found)
	assert.Equal(t, iv("18:30", "21:50"), slot)
}
