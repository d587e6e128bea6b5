package payroll

import (
	"slices"
	"sort"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/paymentfield"
)

// sortedValues returns a copy of values ordered most recent first: by
// effective year, then month, then creation time.
func sortedValues(values []paymentfield.Value) []paymentfield.Value {
	sorted := make([]paymentfield.Value, len(values))
	copy(sorted, values)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Month != b.Month {
			return a.Month > b.Month
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	return sorted
}

// isApplicable matches the row against the employee's company and project,
// or the employee directly, and the employee's skill type.
func isApplicable(v paymentfield.Value, emp employee.Employee) bool {
	companyAndProject := slices.Contains(v.CompanyIDs, emp.CompanyID) && slices.Contains(v.ProjectIDs, emp.ProjectID)
	direct := slices.Contains(v.EmployeeIDs, emp.ID)
	if !companyAndProject && !direct {
		return false
	}
	return v.SkillType == paymentfield.SkillAll || v.SkillType == string(emp.SkillType)
}

// isEffective reports whether the row's effective month is not after the
// target month.
func isEffective(v paymentfield.Value, month, year int) bool {
	return v.Year < year || (v.Year == year && v.Month <= month)
}

// selectValue returns the most recent applicable row effective in the
// target month.
func selectValue(values []paymentfield.Value, emp employee.Employee, month, year int) (paymentfield.Value, bool) {
	for _, v := range sortedValues(values) {
		if isApplicable(v, emp) && isEffective(v, month, year) {
			return v, true
		}
	}
	return paymentfield.Value{}, false
}
