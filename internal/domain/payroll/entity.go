package payroll

import (
	"time"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
)

// Calculation decides how yearly-basis fixed rows are paid.
type Calculation string

const (
	CalculationMonthly Calculation = "monthly"
	CalculationYearly  Calculation = "yearly"
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Period is a calendar month.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 || p.Year < 1 || p.Year > 9999 {
		return ErrInvalidPeriod
	}
	return nil
}

// Start is midnight UTC on the first day of the month.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End is midnight UTC on the last calendar day of the month.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// Days is the number of calendar days in the month.
func (p Period) Days() int {
	return p.End().Day()
}

// After reports whether p is a later month than q.
func (p Period) After(q Period) bool {
	return p.Year > q.Year || (p.Year == q.Year && p.Month > q.Month)
}

func (p Period) Label() string {
	if p.Month < 1 || p.Month > 12 {
		return ""
	}
	return monthNames[p.Month-1]
}

// PaymentData is one evaluated payment field for one employee.
type PaymentData struct {
	FieldID     string  `json:"field_id"`
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	IsDeduction bool    `json:"is_deduction"`
	IsStatutory bool    `json:"is_statutory"`
}

// EmployeePayment is one row of the payment data table.
type EmployeePayment struct {
	Employee   employee.Employee  `json:"employee"`
	Period     Period             `json:"period"`
	Attendance attendance.Summary `json:"attendance"`
	Fields     []PaymentData      `json:"fields"`
	Gross      float64            `json:"gross"`
	Deductions float64            `json:"deductions"`
	Net        float64            `json:"net"`
	Skipped    string             `json:"skipped,omitempty"`
}

type Totals struct {
	Gross      float64 `json:"gross"`
	Deductions float64 `json:"deductions"`
	Net        float64 `json:"net"`
	Employees  int     `json:"employees"`
	Skipped    int     `json:"skipped"`
}

// PayrollRun is the result of evaluating every configured field for every
// matching employee in one period.
type PayrollRun struct {
	ID          uuid.UUID         `json:"id"`
	Period      Period            `json:"period"`
	Calculation Calculation       `json:"calculation"`
	Rows        []EmployeePayment `json:"rows"`
	Totals      Totals            `json:"totals"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// FieldReport is one payment field evaluated for each month of a year.
type FieldReport struct {
	FieldID   string           `json:"field_id"`
	FieldName string           `json:"field_name"`
	Year      int              `json:"year"`
	Rows      []FieldReportRow `json:"rows"`
}

type FieldReportRow struct {
	Employee employee.Employee `json:"employee"`
	Monthly  [12]float64       `json:"monthly"`
	Total    float64           `json:"total"`
	Skipped  string            `json:"skipped,omitempty"`
}

// AttendanceRegister is the monthly day grid of attendance marks.
type AttendanceRegister struct {
	Period Period        `json:"period"`
	Days   int           `json:"days"`
	Rows   []RegisterRow `json:"rows"`
}

type RegisterRow struct {
	Employee employee.Employee `json:"employee"`
	Marks    []string          `json:"marks"`
}
