package payroll

import (
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/paymentfield"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
	attendancesvc "github.com/cmlabs-hris/payroll-engine/internal/service/attendance"
)

// Evaluator computes the value of one payment field for one employee and
// month. It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	now         func() time.Time
	calculation payroll.Calculation
	aggregator  attendancesvc.Aggregator
}

type EvaluatorOption func(*Evaluator)

// WithClock replaces time.Now for the future-period check.
func WithClock(now func() time.Time) EvaluatorOption {
	return func(e *Evaluator) {
		e.now = now
	}
}

// WithCalculation selects how yearly amounts are paid. Empty means monthly.
func WithCalculation(c payroll.Calculation) EvaluatorOption {
	return func(e *Evaluator) {
		if c != "" {
			e.calculation = c
		}
	}
}

// WithNormalDayHours sets the day length used by EvaluateRecords.
func WithNormalDayHours(hours float64) EvaluatorOption {
	return func(e *Evaluator) {
		e.aggregator = attendancesvc.NewAggregator(hours)
	}
}

func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		now:         time.Now,
		calculation: payroll.CalculationMonthly,
		aggregator:  attendancesvc.NewAggregator(attendancesvc.DefaultNormalDayHours),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Calculation returns the mode the evaluator was built with.
func (e *Evaluator) Calculation() payroll.Calculation {
	return e.calculation
}

// Summarize aggregates raw attendance with the evaluator's day length.
func (e *Evaluator) Summarize(records []attendance.Record) attendance.Summary {
	return e.aggregator.Summarize(records)
}

// EvaluateRecords summarizes the attendance once and evaluates field.
func (e *Evaluator) EvaluateRecords(emp employee.Employee, field *paymentfield.PaymentField, records []attendance.Record, month, year int) (float64, error) {
	return e.Evaluate(emp, field, e.Summarize(records), month, year)
}

// Evaluate returns the amount field pays emp for month/year. Missing data,
// ineligibility and future periods yield 0. A malformed employee yields an
// *employee.InvalidRecordError and a reference loop a
// *paymentfield.CyclicReferenceError.
func (e *Evaluator) Evaluate(emp employee.Employee, field *paymentfield.PaymentField, summary attendance.Summary, month, year int) (float64, error) {
	period := payroll.Period{Month: month, Year: year}
	if err := period.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %02d/%d", err, month, year)
	}
	if err := emp.Validate(); err != nil {
		return 0, err
	}

	v, err := e.evaluate(emp, field, summary, period, &guard{})
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, nil
	}
	return v, nil
}

// guard tracks the fields on the current recursion path.
type guard struct {
	keys  map[string]bool
	names []string
}

func (g *guard) enter(f *paymentfield.PaymentField) error {
	if g.keys == nil {
		g.keys = make(map[string]bool)
	}
	if g.keys[f.Key()] {
		path := append(append([]string(nil), g.names...), f.Name)
		return &paymentfield.CyclicReferenceError{Path: path}
	}
	g.keys[f.Key()] = true
	g.names = append(g.names, f.Name)
	return nil
}

func (g *guard) leave(f *paymentfield.PaymentField) {
	delete(g.keys, f.Key())
	g.names = g.names[:len(g.names)-1]
}

func (e *Evaluator) evaluate(emp employee.Employee, field *paymentfield.PaymentField, summary attendance.Summary, period payroll.Period, g *guard) (float64, error) {
	if field == nil || len(field.Values) == 0 {
		return 0, nil
	}

	if err := g.enter(field); err != nil {
		return 0, err
	}
	defer g.leave(field)

	periodEnd := period.End()
	if !IsEligible(emp.JoiningDate, periodEnd, field.EligibleAfterYears) {
		return 0, nil
	}

	now := e.now().UTC()
	if period.After(payroll.Period{Month: int(now.Month()), Year: now.Year()}) {
		return 0, nil
	}

	value, ok := selectValue(field.Values, emp, period.Month, period.Year)
	if !ok {
		return 0, nil
	}

	if value.Kind == paymentfield.KindPercentage {
		return e.percentage(emp, field, value, summary, period, g)
	}
	if value.Kind != paymentfield.KindFixed {
		return 0, nil
	}

	amount := e.fixed(emp, value, summary, periodEnd)
	if len(field.MinValueOf) == 0 {
		return amount, nil
	}

	floor, err := e.sum(emp, field.MinValueOf, summary, period, g)
	if err != nil {
		return 0, err
	}
	if value.MinAmount != nil && *value.MinAmount > floor {
		floor = *value.MinAmount
	}
	return math.Max(amount, floor), nil
}

// percentage applies the row's rate to the referenced fields. The cap term
// multiplies the rate by MaxAmount and is kept as the business defines it.
func (e *Evaluator) percentage(emp employee.Employee, field *paymentfield.PaymentField, value paymentfield.Value, summary attendance.Summary, period payroll.Period, g *guard) (float64, error) {
	if len(field.PercentageOf) == 0 {
		return 0, nil
	}

	var share float64
	for _, ref := range field.PercentageOf {
		v, err := e.evaluate(emp, ref, summary, period, g)
		if err != nil {
			return 0, err
		}
		share += v * value.Amount / 100
	}

	if value.MaxAmount != nil {
		share = math.Min(value.Amount*(*value.MaxAmount)/100, share)
	}
	return money.Round(share, 2), nil
}

func (e *Evaluator) fixed(emp employee.Employee, value paymentfield.Value, summary attendance.Summary, periodEnd time.Time) float64 {
	switch value.AmountBasis {
	case paymentfield.BasisDaily:
		return value.Amount * summary.NormalDays
	case paymentfield.BasisOvertime:
		return value.Amount * summary.OvertimeDays
	case paymentfield.BasisMonthly:
		return value.Amount
	case paymentfield.BasisYearly:
		if e.calculation == payroll.CalculationYearly {
			return value.Amount
		}
		if value.PayFrequency == paymentfield.PayAtOnce {
			return value.Amount * math.Floor(YearsBetween(emp.JoiningDate, periodEnd))
		}
		return value.Amount / 12
	default:
		return 0
	}
}

func (e *Evaluator) sum(emp employee.Employee, refs []*paymentfield.PaymentField, summary attendance.Summary, period payroll.Period, g *guard) (float64, error) {
	var total float64
	for _, ref := range refs {
		v, err := e.evaluate(emp, ref, summary, period, g)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}
