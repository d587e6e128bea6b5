package payroll

import "context"

// PayrollService computes payment data from stored records.
type PayrollService interface {
	// Generate evaluates every configured payment field for every matching employee
	Generate(ctx context.Context, req GenerateRequest) (PayrollRun, error)

	// FieldReport evaluates one payment field for each month of a year
	FieldReport(ctx context.Context, req FieldReportRequest) (FieldReport, error)

	// AttendanceRegister builds the day grid of attendance marks for a month
	AttendanceRegister(ctx context.Context, req RegisterRequest) (AttendanceRegister, error)
}
