package attendance

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceInput_ToEntity(t *testing.T) {
	in := AttendanceInput{ID: "a1", EmployeeID: "e1", Date: "2024-03-05", Present: true, NoOfHours: 10}

	row, err := in.ToEntity()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), row.Date)
	assert.Equal(t, Record{Present: true, Holiday: false, Hours: 10}, row.Record())
}

func TestAttendanceInput_Validate(t *testing.T) {
	cases := []struct {
		name  string
		in    AttendanceInput
		field string
	}{
		{"missing employee", AttendanceInput{Date: "2024-03-05"}, "employee_id"},
		{"bad date", AttendanceInput{EmployeeID: "e1", Date: "05/03/2024"}, "date"},
		{"negative hours", AttendanceInput{EmployeeID: "e1", Date: "2024-03-05", NoOfHours: -1}, "no_of_hours"},
		{"too many hours", AttendanceInput{EmployeeID: "e1", Date: "2024-03-05", NoOfHours: 25}, "no_of_hours"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.in.ToEntity()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidAttendance))
			assert.Contains(t, err.Error(), c.field)
		})
	}
}

func TestRecords(t *testing.T) {
	rows := []Attendance{
		{EmployeeID: "e1", Present: true, Hours: 8},
		{EmployeeID: "e1", Holiday: true},
	}
	assert.Equal(t, []Record{{Present: true, Hours: 8}, {Holiday: true}}, Records(rows))
	assert.Empty(t, Records(nil))
}
