package attendance

import (
	"context"
	"time"
)

// AttendanceRepository reads attendance rows. It never writes.
type AttendanceRepository interface {
	// ListByEmployees returns rows dated within [from, to], keyed by employee ID.
	// Employees without rows are absent from the map.
	ListByEmployees(ctx context.Context, employeeIDs []string, from, to time.Time) (map[string][]Attendance, error)
}
