package attendance

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
)

// Register lays out one mark per calendar day for each employee. Days with
// no stored row are absent. When a day has several rows the first one wins.
func Register(period payroll.Period, employees []employee.Employee, rows map[string][]attendance.Attendance) payroll.AttendanceRegister {
	days := period.Days()
	register := payroll.AttendanceRegister{
		Period: period,
		Days:   days,
		Rows:   make([]payroll.RegisterRow, 0, len(employees)),
	}

	start := period.Start()
	for _, emp := range employees {
		marks := make([]string, days)

		for _, row := range rows[emp.ID] {
			d := time.Date(row.Date.Year(), row.Date.Month(), row.Date.Day(), 0, 0, 0, 0, time.UTC)
			if d.Before(start) || d.After(period.End()) {
				continue
			}
			if marks[d.Day()-1] == "" {
				marks[d.Day()-1] = Mark(row)
			}
		}
		for i := range marks {
			if marks[i] == "" {
				marks[i] = attendance.MarkAbsent
			}
		}

		register.Rows = append(register.Rows, payroll.RegisterRow{Employee: emp, Marks: marks})
	}

	return register
}

// Mark returns the register code for one stored day.
func Mark(row attendance.Attendance) string {
	switch {
	case row.Present:
		return attendance.MarkPresent
	case row.Holiday:
		return attendance.MarkPaidHoliday
	default:
		return attendance.MarkAbsent
	}
}
