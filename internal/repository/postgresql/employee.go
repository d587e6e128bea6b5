package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	// Build WHERE conditions
	conditions := []string{"e.deleted_at IS NULL"}
	args := []any{}
	argIdx := 1

	if filter.CompanyID != "" {
		conditions = append(conditions, fmt.Sprintf("e.company_id = $%d", argIdx))
		args = append(args, filter.CompanyID)
		argIdx++
	}
	if filter.ProjectID != "" {
		conditions = append(conditions, fmt.Sprintf("e.project_id = $%d", argIdx))
		args = append(args, filter.ProjectID)
		argIdx++
	}
	if filter.ProjectLocationID != "" {
		conditions = append(conditions, fmt.Sprintf("e.project_location_id = $%d", argIdx))
		args = append(args, filter.ProjectLocationID)
	}

	query := fmt.Sprintf(`
		SELECT e.id::text, e.full_name, COALESCE(e.designation, ''), e.joining_date, COALESCE(e.skill_type, ''),
			   COALESCE(e.company_id::text, ''), COALESCE(c.name, ''),
			   COALESCE(e.project_id::text, ''), COALESCE(p.name, ''),
			   COALESCE(e.project_location_id::text, ''), COALESCE(pl.name, '')
		FROM employees e
		LEFT JOIN companies c ON c.id = e.company_id
		LEFT JOIN projects p ON p.id = e.project_id
		LEFT JOIN project_locations pl ON pl.id = e.project_location_id
		WHERE %s
		ORDER BY e.full_name ASC, e.id ASC
	`, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var (
			emp         employee.Employee
			joiningDate *time.Time
			skillType   string
		)
		if err := rows.Scan(
			&emp.ID, &emp.FullName, &emp.Designation, &joiningDate, &skillType,
			&emp.CompanyID, &emp.CompanyName,
			&emp.ProjectID, &emp.ProjectName,
			&emp.ProjectLocationID, &emp.ProjectLocationName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		// NULL joining dates stay zero and fail employee validation later
		if joiningDate != nil {
			emp.JoiningDate = *joiningDate
		}
		emp.SkillType = employee.SkillType(skillType)
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}
