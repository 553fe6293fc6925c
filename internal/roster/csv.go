package roster

import (
	"fmt"

	"github.com/gocarina/gocsv"

	"github.com/lentera-edu/timetable-api/internal/models"
)

type csvRow struct {
	Lecturer string `csv:"DOSEN"`
	Course   string `csv:"Mata Kuliah"`
	Credits  int    `csv:"SKS"`
	Sections string `csv:"Kelas"`
	Days     string `csv:"Available Day"`
	Times    string `csv:"Available Times"`
}

// ParseCSV reads course offerings from a comma-separated roster with the same
// column headers as the xlsx form.
func ParseCSV(data []byte) ([]models.CourseOffering, error) {
	var rows []csvRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("parse roster csv: %w", err)
	}
	offerings := make([]models.CourseOffering, 0, len(rows))
	for i, row := range rows {
		offering, err := normalizeRow(row.Lecturer, row.Course, row.Credits, row.Sections, row.Days, row.Times, i+2)
		if err != nil {
			return nil, err
		}
		offerings = append(offerings, offering)
	}
	return offerings, nil
}
