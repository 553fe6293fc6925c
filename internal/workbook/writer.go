// Package workbook renders allocation results into the distribution xlsx:
// one sheet per program+cohort-year key, one per lecturer, a per-section
// course recap, and the failure list. Online-fallback rows are highlighted.
package workbook

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lentera-edu/timetable-api/internal/models"
)

const (
	recapSheet   = "REKAP_MATKUL_PER_KELAS"
	failureSheet = "GAGAL_TERJADWAL"
	fallbackKey  = "LAINNYA"
)

var (
	entryHeaders   = []string{"Dosen", "Mata Kuliah", "Kelas", "Hari", "Jam", "Ruangan", "Status"}
	failureHeaders = []string{"Dosen", "Mata Kuliah", "Kelas", "Alasan", "Available Day", "Available Times", "SKS"}

	programYearPattern = regexp.MustCompile(`^([A-Z]{2})([0-9]{2})`)
	invalidSheetChars  = regexp.MustCompile(`[\\/*?:\[\]]`)
)

// SheetKey derives the grouping sheet for a section code: program prefix plus
// expanded cohort year (TI21 -> TI2021), or LAINNYA when the code does not
// match.
func SheetKey(sectionCode string) string {
	match := programYearPattern.FindStringSubmatch(strings.ToUpper(sectionCode))
	if match == nil {
		return fallbackKey
	}
	return match[1] + "20" + match[2]
}

// SanitizeSheetName strips characters xlsx forbids and enforces the 31-rune
// sheet name limit.
func SanitizeSheetName(name string) string {
	clean := invalidSheetChars.ReplaceAllString(name, "_")
	runes := []rune(clean)
	if len(runes) > 31 {
		runes = runes[:31]
	}
	return string(runes)
}

// Build assembles the output workbook from a finished run.
func Build(entries []models.ScheduleEntry, failures []models.FailureRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	highlight, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFFF00"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create highlight style: %w", err)
	}

	for _, key := range groupKeys(entries, func(e models.ScheduleEntry) string { return SheetKey(e.Section) }) {
		group := filterEntries(entries, func(e models.ScheduleEntry) bool { return SheetKey(e.Section) == key })
		if err := writeEntrySheet(f, key, group, highlight); err != nil {
			return nil, err
		}
	}

	for _, lecturer := range groupKeys(entries, func(e models.ScheduleEntry) string { return e.Lecturer }) {
		group := filterEntries(entries, func(e models.ScheduleEntry) bool { return e.Lecturer == lecturer })
		if err := writeEntrySheet(f, SanitizeSheetName(lecturer), group, highlight); err != nil {
			return nil, err
		}
	}

	if err := writeRecapSheet(f, entries); err != nil {
		return nil, err
	}
	if err := writeFailureSheet(f, failures); err != nil {
		return nil, err
	}

	// The implicit first sheet is only a placeholder.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop placeholder sheet: %w", err)
	}
	return f, nil
}

// Bytes renders the workbook into xlsx bytes.
func Bytes(entries []models.ScheduleEntry, failures []models.FailureRecord) ([]byte, error) {
	f, err := Build(entries, failures)
	if err != nil {
		return nil, err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeEntrySheet(f *excelize.File, name string, group []models.ScheduleEntry, highlight int) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %q: %w", name, err)
	}
	if err := writeRow(f, name, 1, entryHeaders); err != nil {
		return err
	}
	for i, entry := range group {
		rowNum := i + 2
		row := []string{
			entry.Lecturer,
			entry.Course,
			entry.Section,
			entry.Day,
			models.Interval{Start: entry.Start, End: entry.End}.String(),
			entry.Room,
			string(entry.Status),
		}
		if err := writeRow(f, name, rowNum, row); err != nil {
			return err
		}
		if entry.Status == models.StatusOnline {
			last, _ := excelize.CoordinatesToCellName(len(entryHeaders), rowNum)
			first, _ := excelize.CoordinatesToCellName(1, rowNum)
			if err := f.SetCellStyle(name, first, last, highlight); err != nil {
				return fmt.Errorf("highlight row %d on %q: %w", rowNum, name, err)
			}
		}
	}
	return nil
}

func writeRecapSheet(f *excelize.File, entries []models.ScheduleEntry) error {
	if _, err := f.NewSheet(recapSheet); err != nil {
		return fmt.Errorf("create sheet %q: %w", recapSheet, err)
	}
	if err := writeRow(f, recapSheet, 1, []string{"Kelas", "Mata Kuliah"}); err != nil {
		return err
	}

	courses := make(map[string]map[string]struct{})
	for _, entry := range entries {
		if courses[entry.Section] == nil {
			courses[entry.Section] = make(map[string]struct{})
		}
		courses[entry.Section][entry.Course] = struct{}{}
	}
	sections := make([]string, 0, len(courses))
	for section := range courses {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	for i, section := range sections {
		names := make([]string, 0, len(courses[section]))
		for course := range courses[section] {
			names = append(names, course)
		}
		sort.Strings(names)
		if err := writeRow(f, recapSheet, i+2, []string{section, strings.Join(names, ", ")}); err != nil {
			return err
		}
	}
	return nil
}

func writeFailureSheet(f *excelize.File, failures []models.FailureRecord) error {
	if _, err := f.NewSheet(failureSheet); err != nil {
		return fmt.Errorf("create sheet %q: %w", failureSheet, err)
	}
	if err := writeRow(f, failureSheet, 1, failureHeaders); err != nil {
		return err
	}
	for i, failure := range failures {
		row := []string{
			failure.Lecturer,
			failure.Course,
			failure.Section,
			failure.Reason,
			failure.AvailableDays,
			failure.AvailableTimes,
			fmt.Sprintf("%d", failure.Credits),
		}
		if err := writeRow(f, failureSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func groupKeys(entries []models.ScheduleEntry, keyFn func(models.ScheduleEntry) string) []string {
	seen := make(map[string]struct{})
	keys := make([]string, 0)
	for _, entry := range entries {
		key := keyFn(entry)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func filterEntries(entries []models.ScheduleEntry, keep func(models.ScheduleEntry) bool) []models.ScheduleEntry {
	result := make([]models.ScheduleEntry, 0)
	for _, entry := range entries {
		if keep(entry) {
			result = append(result, entry)
		}
	}
	return result
}
