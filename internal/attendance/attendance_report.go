package attendance

import (
	"bytes"
	"fmt"
	"time"

	"go-hrms/internal/shared/dateutil"

	"github.com/jung-kurt/gofpdf"
)

const reportTimeLayout = "15:04"

// RenderRangeReport draws one table row per record, in the order given.
func RenderRangeReport(companyName string, from, to time.Time, rows []RecordResponse) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Attendance Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Attendance Report")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	if companyName != "" {
		pdf.Cell(0, 7, companyName)
		pdf.Ln(7)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s", dateutil.Format(from), dateutil.Format(to)))
	pdf.Ln(10)

	widths := []float64{30, 70, 35, 45, 30, 30, 30}
	headers := []string{"Date", "Employee", "Code", "Department", "Check-in", "Check-out", "Status"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	if len(rows) == 0 {
		pdf.CellFormat(sum(widths), 8, "No attendance recorded in this period", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}
	for _, r := range rows {
		name, code, dept := "-", "-", "-"
		if r.Profile != nil {
			name = r.Profile.FullName
			code = deref(r.Profile.EmployeeCode)
			dept = deref(r.Profile.Department)
		}
		cells := []string{
			r.AttendanceDate,
			name,
			code,
			dept,
			clock(r.CheckInTime),
			clock(r.CheckOutTime),
			r.Status,
		}
		for i, v := range cells {
			pdf.CellFormat(widths[i], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clock(ts *string) string {
	if ts == nil {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, *ts)
	if err != nil {
		return *ts
	}
	return t.Format(reportTimeLayout)
}

func deref(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}
