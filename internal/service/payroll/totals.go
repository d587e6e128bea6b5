package payroll

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
)

// applyTotals fills gross, deductions and net from the row's fields.
func applyTotals(row *payroll.EmployeePayment) {
	var earnings, deductions []float64
	for _, f := range row.Fields {
		if f.IsDeduction {
			deductions = append(deductions, f.Value)
		} else {
			earnings = append(earnings, f.Value)
		}
	}
	row.Gross = money.Sum(earnings...)
	row.Deductions = money.Sum(deductions...)
	row.Net = money.Sum(row.Gross, -row.Deductions)
}

// ComputeTotals sums the rows of a run. Skipped rows count separately and
// add nothing.
func ComputeTotals(rows []payroll.EmployeePayment) payroll.Totals {
	var gross, deductions []float64
	totals := payroll.Totals{Employees: len(rows)}
	for _, row := range rows {
		if row.Skipped != "" {
			totals.Skipped++
			continue
		}
		gross = append(gross, row.Gross)
		deductions = append(deductions, row.Deductions)
	}
	totals.Gross = money.Sum(gross...)
	totals.Deductions = money.Sum(deductions...)
	totals.Net = money.Sum(totals.Gross, -totals.Deductions)
	return totals
}
