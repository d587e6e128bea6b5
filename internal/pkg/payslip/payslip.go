package payslip

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
)

// Write renders one A4 pay slip page per employee of the run. Skipped
// employees get a page stating the reason instead of amounts.
func Write(w io.Writer, run payroll.PayrollRun) error {
	if len(run.Rows) == 0 {
		return payroll.ErrNoEmployees
	}

	pdf := newDocument(fmt.Sprintf("Pay slips %s %d", run.Period.Label(), run.Period.Year))
	for _, row := range run.Rows {
		page(pdf, row)
	}
	return output(pdf, w)
}

// WriteEmployee renders a single pay slip.
func WriteEmployee(w io.Writer, row payroll.EmployeePayment) error {
	pdf := newDocument(fmt.Sprintf("Pay slip %s %s %d", row.Employee.FullName, row.Period.Label(), row.Period.Year))
	page(pdf, row)
	return output(pdf, w)
}

func newDocument(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	return pdf
}

func output(pdf *gofpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pay slips: %w", err)
	}
	return nil
}

func page(pdf *gofpdf.Fpdf, row payroll.EmployeePayment) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", row.Employee.FullName))
	pdf.Ln(7)
	if row.Employee.Designation != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Designation: %s", row.Employee.Designation))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Company: %s  Project: %s  Location: %s",
		row.Employee.CompanyName, row.Employee.ProjectName, row.Employee.ProjectLocationName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s %d", row.Period.Label(), row.Period.Year))
	pdf.Ln(10)

	if row.Skipped != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Not computed: %s", row.Skipped))
		return
	}

	pdf.Cell(0, 8, fmt.Sprintf("Present days: %.3f   Overtime days: %.3f", row.Attendance.NormalDays, row.Attendance.OvertimeDays))
	pdf.Ln(10)

	table(pdf, "Earnings", row.Fields, false)
	table(pdf, "Deductions", row.Fields, true)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %s", money.Format(row.Gross)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %s", money.Format(row.Deductions)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %s", money.Format(row.Net)))
}

func table(pdf *gofpdf.Fpdf, title string, fields []payroll.PaymentData, deductions bool) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 8, title, "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, f := range fields {
		if f.IsDeduction != deductions {
			continue
		}
		name := f.Name
		if f.IsStatutory {
			name += " (statutory)"
		}
		pdf.CellFormat(120, 7, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, money.Format(f.Value), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}
