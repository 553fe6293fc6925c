// Package roster loads course offering rosters from spreadsheet and CSV
// sources and normalizes them into engine input.
package roster

import (
	"fmt"
	"strings"

	"github.com/lentera-edu/timetable-api/internal/models"
)

// Column headers expected in roster input, matched case-insensitively.
const (
	colLecturer = "dosen"
	colCourse   = "mata kuliah"
	colCredits  = "sks"
	colSections = "kelas"
	colDays     = "available day"
	colTimes    = "available times"
)

var requiredColumns = []string{colLecturer, colCourse, colCredits, colSections}

// normalizeRow turns raw roster cell values into a CourseOffering. Blank
// availability fields default to the ALL sentinel; section codes and
// availability are uppercased.
func normalizeRow(lecturer, course string, credits int, sections, days, times string, rowNum int) (models.CourseOffering, error) {
	lecturer = strings.TrimSpace(lecturer)
	course = strings.TrimSpace(course)
	if lecturer == "" || course == "" {
		return models.CourseOffering{}, fmt.Errorf("row %d: lecturer and course are required", rowNum)
	}
	if credits < 1 {
		return models.CourseOffering{}, fmt.Errorf("row %d: invalid credit hours", rowNum)
	}

	sectionCodes := splitList(strings.ToUpper(sections))
	if len(sectionCodes) == 0 {
		return models.CourseOffering{}, fmt.Errorf("row %d: no class sections listed", rowNum)
	}

	days = strings.ToUpper(strings.TrimSpace(days))
	if days == "" {
		days = models.AllSentinel
	}
	var dayList []string
	if days != models.AllSentinel {
		dayList = splitList(days)
	}

	times = strings.ToUpper(strings.TrimSpace(times))
	if times == "" {
		times = models.AllSentinel
	}

	return models.CourseOffering{
		Lecturer: lecturer,
		Course:   course,
		Credits:  credits,
		Sections: sectionCodes,
		Days:     dayList,
		Times:    times,
	}, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
