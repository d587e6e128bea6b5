package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
)

var shortMonths = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// WritePaymentCSV writes one line per employee with a column for every
// payment field seen in the run. Identifiers are not exported.
func WritePaymentCSV(w io.Writer, run payroll.PayrollRun) error {
	columns := fieldColumns(run.Rows)

	header := []string{"Employee", "Designation", "Company", "Project", "Project Location", "Month", "Year", "Normal Days", "Overtime Days"}
	for _, c := range columns {
		header = append(header, c.name)
	}
	header = append(header, "Gross", "Deductions", "Net", "Skipped")

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range run.Rows {
		values := make(map[string]float64, len(row.Fields))
		for _, f := range row.Fields {
			values[columnKey(f)] = f.Value
		}

		record := []string{
			row.Employee.FullName,
			row.Employee.Designation,
			row.Employee.CompanyName,
			row.Employee.ProjectName,
			row.Employee.ProjectLocationName,
			row.Period.Label(),
			strconv.Itoa(row.Period.Year),
			formatDays(row.Attendance.NormalDays),
			formatDays(row.Attendance.OvertimeDays),
		}
		for _, c := range columns {
			record = append(record, money.Format(values[c.key]))
		}
		record = append(record, money.Format(row.Gross), money.Format(row.Deductions), money.Format(row.Net), row.Skipped)

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

type fieldColumn struct {
	key  string
	name string
}

// fieldColumns lists one column per distinct field in first-seen order
// across rows. Fields sharing a name keep separate columns.
func fieldColumns(rows []payroll.EmployeePayment) []fieldColumn {
	var columns []fieldColumn
	seen := make(map[string]bool)
	for _, row := range rows {
		for _, f := range row.Fields {
			key := columnKey(f)
			if !seen[key] {
				seen[key] = true
				columns = append(columns, fieldColumn{key: key, name: f.Name})
			}
		}
	}
	return columns
}

func columnKey(f payroll.PaymentData) string {
	if f.FieldID != "" {
		return f.FieldID
	}
	return f.Name
}

func WriteFieldReportCSV(w io.Writer, report payroll.FieldReport) error {
	header := []string{"Employee"}
	for _, m := range shortMonths {
		header = append(header, fmt.Sprintf("%s_%d", m, report.Year))
	}
	header = append(header, "Total", "Skipped")

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range report.Rows {
		record := []string{row.Employee.FullName}
		for _, v := range row.Monthly {
			record = append(record, money.Format(v))
		}
		record = append(record, money.Format(row.Total), row.Skipped)
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteRegisterCSV writes the attendance grid with day columns named d/m/yyyy.
func WriteRegisterCSV(w io.Writer, register payroll.AttendanceRegister) error {
	header := []string{"Sr. No", "Employee"}
	for d := 1; d <= register.Days; d++ {
		header = append(header, fmt.Sprintf("%d/%d/%d", d, register.Period.Month, register.Period.Year))
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range register.Rows {
		record := append([]string{strconv.Itoa(i + 1), row.Employee.FullName}, row.Marks...)
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatDays(v float64) string {
	return strconv.FormatFloat(money.Round(v, 3), 'f', -1, 64)
}
