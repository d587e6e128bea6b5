package attendance

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
)

// DefaultNormalDayHours is the length of a standard working day.
const DefaultNormalDayHours = 8

// Aggregator reduces daily attendance rows to day equivalents.
type Aggregator struct {
	NormalDayHours float64
}

func NewAggregator(normalDayHours float64) Aggregator {
	if normalDayHours <= 0 {
		normalDayHours = DefaultNormalDayHours
	}
	return Aggregator{NormalDayHours: normalDayHours}
}

// Summarize counts normal and overtime day equivalents, each rounded to
// three decimals. Absent days contribute nothing.
func (a Aggregator) Summarize(records []attendance.Record) attendance.Summary {
	hours := a.NormalDayHours
	if hours <= 0 {
		hours = DefaultNormalDayHours
	}

	var normal, overtime float64
	for _, r := range records {
		switch {
		case r.Present && !r.Holiday:
			if r.Hours > hours {
				normal++
				overtime += (r.Hours - hours) / hours
			} else {
				normal += r.Hours / hours
			}
		case !r.Present && r.Holiday:
			// paid holiday
			normal++
		case r.Present && r.Holiday:
			overtime += r.Hours / hours
		}
	}

	return attendance.Summary{
		NormalDays:   money.Round(normal, 3),
		OvertimeDays: money.Round(overtime, 3),
	}
}

// Summarize uses the default eight hour day.
func Summarize(records []attendance.Record) attendance.Summary {
	return NewAggregator(DefaultNormalDayHours).Summarize(records)
}
