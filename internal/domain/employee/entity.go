package employee

import (
	"time"
)

type SkillType string

const (
	SkillTypeSkilled     SkillType = "skilled"
	SkillTypeSemiSkilled SkillType = "semi_skilled"
	SkillTypeUnskilled   SkillType = "unskilled"
)

func (s SkillType) Valid() bool {
	switch s {
	case SkillTypeSkilled, SkillTypeSemiSkilled, SkillTypeUnskilled:
		return true
	}
	return false
}

// Employee carries the attributes payroll evaluation reads, plus display names.
type Employee struct {
	ID                  string
	FullName            string
	Designation         string
	JoiningDate         time.Time
	SkillType           SkillType
	CompanyID           string
	CompanyName         string
	ProjectID           string
	ProjectName         string
	ProjectLocationID   string
	ProjectLocationName string
}

// Validate reports records the evaluator cannot work with.
func (e Employee) Validate() error {
	switch {
	case e.ID == "":
		return &InvalidRecordError{EmployeeID: e.ID, Reason: "missing id"}
	case e.JoiningDate.IsZero():
		return &InvalidRecordError{EmployeeID: e.ID, Reason: "missing or invalid joining date"}
	case !e.SkillType.Valid():
		return &InvalidRecordError{EmployeeID: e.ID, Reason: "unknown skill type " + string(e.SkillType)}
	}
	return nil
}

// Filter narrows an employee listing. Empty fields do not filter.
type Filter struct {
	CompanyID         string
	ProjectID         string
	ProjectLocationID string
}

func (f Filter) Match(e Employee) bool {
	if f.CompanyID != "" && f.CompanyID != e.CompanyID {
		return false
	}
	if f.ProjectID != "" && f.ProjectID != e.ProjectID {
		return false
	}
	if f.ProjectLocationID != "" && f.ProjectLocationID != e.ProjectLocationID {
		return false
	}
	return true
}
