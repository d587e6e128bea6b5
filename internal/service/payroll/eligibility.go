package payroll

import (
	"time"
)

// Tenure is measured in fixed 365-day years, without leap-day handling.
const msPerYear = 365 * 24 * 60 * 60 * 1000

// YearsBetween returns the fractional number of 365-day years from one
// instant to another. It is negative when to is before from.
func YearsBetween(from, to time.Time) float64 {
	return float64(to.UnixMilli()-from.UnixMilli()) / msPerYear
}

// IsEligible reports whether an employee who joined on joining has served
// at least years by periodEnd.
func IsEligible(joining, periodEnd time.Time, years float64) bool {
	return YearsBetween(joining, periodEnd) >= years
}
