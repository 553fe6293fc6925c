package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/lentera-edu/timetable-api/internal/models"
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Dosen", 50},
	{"Mata Kuliah", 60},
	{"Kelas", 25},
	{"Hari", 25},
	{"Jam", 35},
	{"Ruangan", 25},
	{"Status", 27},
}

// PDF renders the schedule entries into a landscape tabular PDF.
func PDF(entries []models.ScheduleEntry, title string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	pdf.SetFont("Arial", "B", 9)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range toRows(entries) {
		values := []string{row.Lecturer, row.Course, row.Section, row.Day, row.Time, row.Room, row.Status}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, values[i], "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render schedule pdf: %w", err)
	}
	return buf.Bytes(), nil
}
