package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

// GenerateRequest selects the employees and period of a payroll run.
type GenerateRequest struct {
	Month             int         `json:"month"`
	Year              int         `json:"year"`
	CompanyID         string      `json:"company_id,omitempty"`
	ProjectID         string      `json:"project_id,omitempty"`
	ProjectLocationID string      `json:"project_location_id,omitempty"`
	Calculation       Calculation `json:"calculation,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 1 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 1 and 9999"})
	}
	if r.Calculation != "" && r.Calculation != CalculationMonthly && r.Calculation != CalculationYearly {
		errs = append(errs, validator.ValidationError{Field: "calculation", Message: "must be 'monthly' or 'yearly'"})
	}

	return errs.Err()
}

func (r *GenerateRequest) Period() Period {
	return Period{Month: r.Month, Year: r.Year}
}

func (r *GenerateRequest) Filter() employee.Filter {
	return employee.Filter{CompanyID: r.CompanyID, ProjectID: r.ProjectID, ProjectLocationID: r.ProjectLocationID}
}

// FieldReportRequest asks for one field across the twelve months of a year.
type FieldReportRequest struct {
	FieldID           string `json:"field_id"`
	Year              int    `json:"year"`
	CompanyID         string `json:"company_id,omitempty"`
	ProjectID         string `json:"project_id,omitempty"`
	ProjectLocationID string `json:"project_location_id,omitempty"`
}

func (r *FieldReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FieldID) {
		errs = append(errs, validator.ValidationError{Field: "field_id", Message: "is required"})
	}
	if r.Year < 1 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: fmt.Sprintf("must be between 1 and 9999, got %d", r.Year)})
	}

	return errs.Err()
}

func (r *FieldReportRequest) Filter() employee.Filter {
	return employee.Filter{CompanyID: r.CompanyID, ProjectID: r.ProjectID, ProjectLocationID: r.ProjectLocationID}
}

// RegisterRequest asks for the attendance register of one month.
type RegisterRequest struct {
	Month             int    `json:"month"`
	Year              int    `json:"year"`
	CompanyID         string `json:"company_id,omitempty"`
	ProjectID         string `json:"project_id,omitempty"`
	ProjectLocationID string `json:"project_location_id,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	if err := (Period{Month: r.Month, Year: r.Year}).Validate(); err != nil {
		return validator.ValidationErrors{{Field: "period", Message: err.Error()}}
	}
	return nil
}

func (r *RegisterRequest) Period() Period {
	return Period{Month: r.Month, Year: r.Year}
}

func (r *RegisterRequest) Filter() employee.Filter {
	return employee.Filter{CompanyID: r.CompanyID, ProjectID: r.ProjectID, ProjectLocationID: r.ProjectLocationID}
}
