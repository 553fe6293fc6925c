package roster

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lentera-edu/timetable-api/internal/models"
)

// ParseExcel reads course offerings from the first worksheet of an xlsx
// roster. The header row maps columns by name so column order is free.
func ParseExcel(data []byte) ([]models.CourseOffering, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open roster workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("roster workbook has no sheets")
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read roster sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("roster sheet %q has no data rows", sheets[0])
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("roster is missing required column %q", required)
		}
	}

	cell := func(row []string, name string) string {
		if idx, ok := columns[name]; ok && idx < len(row) {
			return row[idx]
		}
		return ""
	}

	offerings := make([]models.CourseOffering, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlankRow(row) {
			continue
		}
		creditsRaw := strings.TrimSpace(cell(row, colCredits))
		credits, err := strconv.Atoi(creditsRaw)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid credit hours %q", rowNum, creditsRaw)
		}
		offering, err := normalizeRow(
			cell(row, colLecturer),
			cell(row, colCourse),
			credits,
			cell(row, colSections),
			cell(row, colDays),
			cell(row, colTimes),
			rowNum,
		)
		if err != nil {
			return nil, err
		}
		offerings = append(offerings, offering)
	}
	return offerings, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
