package attendance

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

// AttendanceInput is the boundary shape of an attendance row.
type AttendanceInput struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Present    bool    `json:"present"`
	Holiday    bool    `json:"holiday"`
	NoOfHours  float64 `json:"no_of_hours"`
}

func (r *AttendanceInput) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if !validator.IsFiniteNonNegative(r.NoOfHours) || r.NoOfHours > 24 {
		errs = append(errs, validator.ValidationError{Field: "no_of_hours", Message: "must be between 0 and 24"})
	}

	return errs.Err()
}

// ToEntity validates the input and converts it to a stored row.
func (r *AttendanceInput) ToEntity() (Attendance, error) {
	if err := r.Validate(); err != nil {
		return Attendance{}, fmt.Errorf("%w: %w", ErrInvalidAttendance, err)
	}
	date, _ := validator.IsValidDate(r.Date)
	return Attendance{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Date:       date,
		Present:    r.Present,
		Holiday:    r.Holiday,
		Hours:      r.NoOfHours,
	}, nil
}
