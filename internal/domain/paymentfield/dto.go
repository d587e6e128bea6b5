package paymentfield

import (
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

// Definition is the boundary shape of a payment field. References are IDs.
type Definition struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	IsDeduction        bool         `json:"is_deduction"`
	IsStatutory        bool         `json:"is_statutory"`
	EligibleAfterYears float64      `json:"eligible_after_years"`
	Values             []ValueInput `json:"value"`
	PercentageOf       []string     `json:"percentage_of,omitempty"`
	MinValueOf         []string     `json:"min_value_of,omitempty"`
}

// ValueInput is the boundary shape of one value row.
type ValueInput struct {
	ID           string   `json:"id"`
	Value        float64  `json:"value"`
	MaxValue     *float64 `json:"max_value,omitempty"`
	MinValue     *float64 `json:"min_value,omitempty"`
	Type         string   `json:"type"`
	ValueType    string   `json:"value_type"`
	SkillType    string   `json:"skill_type"`
	PayFrequency string   `json:"pay_frequency"`
	Month        int      `json:"month"`
	Year         int      `json:"year"`
	CompanyIDs   []string `json:"company_ids,omitempty"`
	ProjectIDs   []string `json:"project_ids,omitempty"`
	EmployeeIDs  []string `json:"employee_ids,omitempty"`
	CreatedAt    string   `json:"created_at,omitempty"`
}

var (
	kinds          = []string{string(KindFixed), string(KindPercentage)}
	amountBases    = []string{string(BasisDaily), string(BasisMonthly), string(BasisYearly), string(BasisOvertime), string(BasisNotApplicable)}
	payFrequencies = []string{string(PayMonthly), string(PayYearly), string(PayAtOnce)}
	skillTypes     = []string{"skilled", "semi_skilled", "unskilled", SkillAll}
)

func (d *Definition) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(d.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if validator.IsEmpty(d.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsFiniteNonNegative(d.EligibleAfterYears) {
		errs = append(errs, validator.ValidationError{Field: "eligible_after_years", Message: "must be non-negative"})
	}
	if len(d.PercentageOf) > 0 && len(d.MinValueOf) > 0 {
		errs = append(errs, validator.ValidationError{Field: "min_value_of", Message: "cannot be combined with percentage_of"})
	}
	for i := range d.Values {
		errs = append(errs, d.Values[i].validate(fmt.Sprintf("value[%d].", i))...)
	}

	return errs.Err()
}

func (v *ValueInput) validate(prefix string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !validator.IsFiniteNonNegative(v.Value) {
		errs = append(errs, validator.ValidationError{Field: prefix + "value", Message: "must be a non-negative number"})
	}
	if v.MaxValue != nil && !validator.IsFiniteNonNegative(*v.MaxValue) {
		errs = append(errs, validator.ValidationError{Field: prefix + "max_value", Message: "must be a non-negative number"})
	}
	if v.MinValue != nil && !validator.IsFiniteNonNegative(*v.MinValue) {
		errs = append(errs, validator.ValidationError{Field: prefix + "min_value", Message: "must be a non-negative number"})
	}
	if !validator.IsInSlice(v.Type, kinds) {
		errs = append(errs, validator.ValidationError{Field: prefix + "type", Message: "must be 'fixed' or 'percentage'"})
	}
	if !validator.IsInSlice(v.ValueType, amountBases) {
		errs = append(errs, validator.ValidationError{Field: prefix + "value_type", Message: "must be one of daily, monthly, yearly, overtime, not_applicable"})
	}
	if !validator.IsInSlice(v.SkillType, skillTypes) {
		errs = append(errs, validator.ValidationError{Field: prefix + "skill_type", Message: "must be one of skilled, semi_skilled, unskilled, all"})
	}
	if !validator.IsInSlice(v.PayFrequency, payFrequencies) {
		errs = append(errs, validator.ValidationError{Field: prefix + "pay_frequency", Message: "must be one of monthly, yearly, at_once"})
	}
	if !validator.IsValidMonth(v.Month) {
		errs = append(errs, validator.ValidationError{Field: prefix + "month", Message: "must be between 1 and 12"})
	}
	if v.Year <= 0 {
		errs = append(errs, validator.ValidationError{Field: prefix + "year", Message: "must be positive"})
	}
	if v.CreatedAt != "" {
		if _, ok := validator.IsValidDateTime(v.CreatedAt); !ok {
			errs = append(errs, validator.ValidationError{Field: prefix + "created_at", Message: "must be an RFC3339 timestamp"})
		}
	}

	return errs
}

// ToEntity validates the definition and converts it without references;
// Catalog links them.
func (d *Definition) ToEntity() (*PaymentField, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidPaymentField, d.Name, err)
	}

	field := &PaymentField{
		ID:                 d.ID,
		Name:               d.Name,
		IsDeduction:        d.IsDeduction,
		IsStatutory:        d.IsStatutory,
		EligibleAfterYears: d.EligibleAfterYears,
		Values:             make([]Value, 0, len(d.Values)),
	}
	for _, v := range d.Values {
		field.Values = append(field.Values, v.toEntity())
	}
	return field, nil
}

func (v *ValueInput) toEntity() Value {
	var createdAt time.Time
	if v.CreatedAt != "" {
		createdAt, _ = validator.IsValidDateTime(v.CreatedAt)
	}
	return Value{
		ID:           v.ID,
		Amount:       v.Value,
		MaxAmount:    copyFloat(v.MaxValue),
		MinAmount:    copyFloat(v.MinValue),
		Kind:         Kind(v.Type),
		AmountBasis:  AmountBasis(v.ValueType),
		SkillType:    v.SkillType,
		PayFrequency: PayFrequency(v.PayFrequency),
		Month:        v.Month,
		Year:         v.Year,
		CompanyIDs:   append([]string(nil), v.CompanyIDs...),
		ProjectIDs:   append([]string(nil), v.ProjectIDs...),
		EmployeeIDs:  append([]string(nil), v.EmployeeIDs...),
		CreatedAt:    createdAt,
	}
}

func copyFloat(p *float64) *float64 {
	if p == nil || math.IsNaN(*p) {
		return nil
	}
	v := *p
	return &v
}
