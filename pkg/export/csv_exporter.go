// Package export renders finished timetables into flat distribution formats.
package export

import (
	"fmt"

	"github.com/gocarina/gocsv"

	"github.com/lentera-edu/timetable-api/internal/models"
)

type scheduleRow struct {
	Lecturer string `csv:"Dosen"`
	Course   string `csv:"Mata Kuliah"`
	Section  string `csv:"Kelas"`
	Day      string `csv:"Hari"`
	Time     string `csv:"Jam"`
	Room     string `csv:"Ruangan"`
	Status   string `csv:"Status"`
}

func toRows(entries []models.ScheduleEntry) []scheduleRow {
	rows := make([]scheduleRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, scheduleRow{
			Lecturer: entry.Lecturer,
			Course:   entry.Course,
			Section:  entry.Section,
			Day:      entry.Day,
			Time:     models.Interval{Start: entry.Start, End: entry.End}.String(),
			Room:     entry.Room,
			Status:   string(entry.Status),
		})
	}
	return rows
}

// CSV renders the schedule entries into CSV bytes with the workbook's column
// headers.
func CSV(entries []models.ScheduleEntry) ([]byte, error) {
	rows := toRows(entries)
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("render schedule csv: %w", err)
	}
	return data, nil
}
