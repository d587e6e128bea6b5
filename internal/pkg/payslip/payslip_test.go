package payslip

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
)

func TestWrite(t *testing.T) {
	period := payroll.Period{Month: 5, Year: 2024}
	run := payroll.PayrollRun{
		Period: period,
		Rows: []payroll.EmployeePayment{
			{
				Employee: employee.Employee{FullName: "Asha Verma", Designation: "Welder"},
				Period:   period,
				Fields: []payroll.PaymentData{
					{Name: "Basic", Value: 1000},
					{Name: "PF", Value: 120, IsDeduction: true, IsStatutory: true},
				},
				Gross: 1000, Deductions: 120, Net: 880,
			},
			{
				Employee: employee.Employee{FullName: "Ravi Kumar"},
				Period:   period,
				Skipped:  "missing or invalid joining date",
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, run))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.True(t, bytes.Contains(out, []byte("/Count 2")))
}

func TestWrite_EmptyRun(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, payroll.PayrollRun{})
	assert.True(t, errors.Is(err, payroll.ErrNoEmployees))
	assert.Zero(t, buf.Len())
}

func TestWriteEmployee(t *testing.T) {
	row := payroll.EmployeePayment{
		Employee: employee.Employee{FullName: "Asha Verma"},
		Period:   payroll.Period{Month: 5, Year: 2024},
		Fields:   []payroll.PaymentData{{Name: "Basic", Value: 1000}},
		Gross:    1000,
		Net:      1000,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteEmployee(&buf, row))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.True(t, bytes.Contains(buf.Bytes(), []byte("/Count 1")))
}
