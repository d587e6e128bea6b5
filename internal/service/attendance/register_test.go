package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestRegister(t *testing.T) {
	period := payroll.Period{Month: 2, Year: 2024}
	employees := []employee.Employee{{ID: "e1", FullName: "Asha"}, {ID: "e2", FullName: "Ravi"}}
	rows := map[string][]attendance.Attendance{
		"e1": {
			{EmployeeID: "e1", Date: day(2024, 2, 1), Present: true, Hours: 8},
			{EmployeeID: "e1", Date: day(2024, 2, 2), Holiday: true},
			{EmployeeID: "e1", Date: day(2024, 2, 3)},
			{EmployeeID: "e1", Date: day(2024, 2, 29), Present: true, Holiday: true, Hours: 4},
			{EmployeeID: "e1", Date: day(2024, 3, 1), Present: true, Hours: 8},
			{EmployeeID: "e1", Date: day(2024, 2, 1), Holiday: true},
		},
	}

	reg := Register(period, employees, rows)

	assert.Equal(t, 29, reg.Days)
	require.Len(t, reg.Rows, 2)

	marks := reg.Rows[0].Marks
	require.Len(t, marks, 29)
	assert.Equal(t, "P", marks[0])
	assert.Equal(t, "PH", marks[1])
	assert.Equal(t, "A", marks[2])
	assert.Equal(t, "A", marks[10])
	assert.Equal(t, "P", marks[28])

	assert.Equal(t, "Ravi", reg.Rows[1].Employee.FullName)
	for _, m := range reg.Rows[1].Marks {
		assert.Equal(t, "A", m)
	}
}

func TestMark(t *testing.T) {
	assert.Equal(t, attendance.MarkPresent, Mark(attendance.Attendance{Present: true}))
	assert.Equal(t, attendance.MarkPresent, Mark(attendance.Attendance{Present: true, Holiday: true}))
	assert.Equal(t, attendance.MarkPaidHoliday, Mark(attendance.Attendance{Holiday: true}))
	assert.Equal(t, attendance.MarkAbsent, Mark(attendance.Attendance{}))
}
