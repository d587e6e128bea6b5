package attendance

import (
	"time"
)

// Attendance is one employee's stored status for one calendar day.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Present    bool
	Holiday    bool
	Hours      float64
}

// Record is the part of a day the aggregator reads.
type Record struct {
	Present bool
	Holiday bool
	Hours   float64
}

func (a Attendance) Record() Record {
	return Record{Present: a.Present, Holiday: a.Holiday, Hours: a.Hours}
}

// Records projects stored rows to aggregator input.
func Records(rows []Attendance) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record())
	}
	return records
}

// Summary holds fractional day equivalents for one employee and period.
type Summary struct {
	NormalDays   float64 `json:"normal_days"`
	OvertimeDays float64 `json:"overtime_days"`
}

// Mark codes used by the monthly attendance register.
const (
	MarkPresent     = "P"
	MarkPaidHoliday = "PH"
	MarkAbsent      = "A"
)
