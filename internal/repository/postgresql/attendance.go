package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// ListByEmployees implements attendance.AttendanceRepository. Both bounds
// are inclusive dates.
func (a *attendanceRepository) ListByEmployees(ctx context.Context, employeeIDs []string, from, to time.Time) (map[string][]attendance.Attendance, error) {
	if to.Before(from) {
		return nil, attendance.ErrInvalidRange
	}
	result := make(map[string][]attendance.Attendance, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id::text, employee_id::text, date, present, holiday, COALESCE(no_of_hours, 0)::float8
		FROM attendances
		WHERE employee_id::text = ANY($1)
		  AND date >= $2::date
		  AND date <= $3::date
		ORDER BY employee_id, date ASC
	`

	rows, err := q.Query(ctx, query, employeeIDs, from.Format(time.DateOnly), to.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(&att.ID, &att.EmployeeID, &att.Date, &att.Present, &att.Holiday, &att.Hours); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		att.Date = time.Date(att.Date.Year(), att.Date.Month(), att.Date.Day(), 0, 0, 0, 0, time.UTC)
		result[att.EmployeeID] = append(result[att.EmployeeID], att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return result, nil
}
