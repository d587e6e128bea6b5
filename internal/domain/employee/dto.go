package employee

import (
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

// EmployeeInput is the boundary shape of an employee record.
type EmployeeInput struct {
	ID                  string `json:"id"`
	FullName            string `json:"full_name"`
	Designation         string `json:"designation"`
	JoiningDate         string `json:"joining_date"`
	SkillType           string `json:"skill_type"`
	CompanyID           string `json:"company_id"`
	CompanyName         string `json:"company_name"`
	ProjectID           string `json:"project_id"`
	ProjectName         string `json:"project_name"`
	ProjectLocationID   string `json:"project_location_id"`
	ProjectLocationName string `json:"project_location_name"`
}

func (r *EmployeeInput) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.JoiningDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "must be in YYYY-MM-DD format"})
	}
	if !SkillType(r.SkillType).Valid() {
		errs = append(errs, validator.ValidationError{Field: "skill_type", Message: "must be 'skilled', 'semi_skilled' or 'unskilled'"})
	}

	return errs.Err()
}

// ToEntity validates the input and converts it. Validation failures are
// reported as InvalidRecordError so callers can skip the row.
func (r *EmployeeInput) ToEntity() (Employee, error) {
	if err := r.Validate(); err != nil {
		return Employee{}, &InvalidRecordError{EmployeeID: r.ID, Reason: err.Error()}
	}
	joining, _ := validator.IsValidDate(r.JoiningDate)
	return Employee{
		ID:                  r.ID,
		FullName:            r.FullName,
		Designation:         r.Designation,
		JoiningDate:         joining,
		SkillType:           SkillType(r.SkillType),
		CompanyID:           r.CompanyID,
		CompanyName:         r.CompanyName,
		ProjectID:           r.ProjectID,
		ProjectName:         r.ProjectName,
		ProjectLocationID:   r.ProjectLocationID,
		ProjectLocationName: r.ProjectLocationName,
	}, nil
}
