package paymentfield

import "time"

// Kind selects between a flat amount and a percentage of other fields.
type Kind string

const (
	KindFixed      Kind = "fixed"
	KindPercentage Kind = "percentage"
)

// AmountBasis says what a fixed amount is multiplied by.
type AmountBasis string

const (
	BasisDaily         AmountBasis = "daily"
	BasisMonthly       AmountBasis = "monthly"
	BasisYearly        AmountBasis = "yearly"
	BasisOvertime      AmountBasis = "overtime"
	BasisNotApplicable AmountBasis = "not_applicable"
)

type PayFrequency string

const (
	PayMonthly PayFrequency = "monthly"
	PayYearly  PayFrequency = "yearly"
	PayAtOnce  PayFrequency = "at_once"
)

// SkillAll matches every employee skill type.
const SkillAll = "all"

// Value is one time-scoped version of a field's monetary rule.
type Value struct {
	ID           string
	Amount       float64
	MaxAmount    *float64
	MinAmount    *float64
	Kind         Kind
	AmountBasis  AmountBasis
	SkillType    string
	PayFrequency PayFrequency
	Month        int
	Year         int
	CompanyIDs   []string
	ProjectIDs   []string
	EmployeeIDs  []string
	CreatedAt    time.Time
}

// PaymentField is a named payroll component. PercentageOf and MinValueOf
// point at other fields of the same catalog.
type PaymentField struct {
	ID                 string
	Name               string
	IsDeduction        bool
	IsStatutory        bool
	EligibleAfterYears float64
	Values             []Value
	PercentageOf       []*PaymentField
	MinValueOf         []*PaymentField
}

// Key identifies the field on a recursion path.
func (f *PaymentField) Key() string {
	if f.ID != "" {
		return f.ID
	}
	return f.Name
}
