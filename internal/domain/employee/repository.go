package employee

import "context"

// EmployeeRepository reads employees. It never writes.
type EmployeeRepository interface {
	// List returns employees matching the filter ordered by full name then ID.
	List(ctx context.Context, filter Filter) ([]Employee, error)
}
