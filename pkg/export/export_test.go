package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lentera-edu/timetable-api/internal/models"
)

func testEntries() []models.ScheduleEntry {
	return []models.ScheduleEntry{
		{
			Lecturer: "Budi Santoso",
			Course:   "Algoritma",
			Section:  "TI21A",
			Day:      "SENIN",
			Start:    models.MustTimeOfDay("08:00"),
			End:      models.MustTimeOfDay("09:40"),
			Room:     "A3-1",
			Status:   models.StatusScheduled,
		},
		{
			Lecturer: "Ani Wijaya",
			Course:   "Basis Data",
			Section:  "SI22B",
			Day:      models.OnlineDay,
			Start:    models.MustTimeOfDay("08:00"),
			End:      models.MustTimeOfDay("10:30"),
			Room:     models.NoRoom,
			Status:   models.StatusOnline,
		},
	}
}

func TestCSV(t *testing.T) {
	data, err := CSV(testEntries())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Dosen,Mata Kuliah,Kelas,Hari,Jam,Ruangan,Status", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "Budi Santoso")
	assert.Contains(t, lines[1], "08:00 - 09:40")
	assert.Contains(t, lines[2], "ONLINE")
}

func TestCSVEmpty(t *testing.T) {
	data, err := CSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "Dosen,Mata Kuliah,Kelas,Hari,Jam,Ruangan,Status", strings.TrimSpace(string(data)))
}

func TestPDF(t *testing.T) {
	data, err := PDF(testEntries(), "Jadwal Kuliah 2026-08-31")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Greater(t, len(data), 500)
}

func TestPDFWithoutTitle(t *testing.T) {
	data, err := PDF(nil, "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
