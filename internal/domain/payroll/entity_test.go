package payroll

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriod_Bounds(t *testing.T) {
	cases := []struct {
		period Period
		end    time.Time
		days   int
	}{
		{Period{Month: 2, Year: 2024}, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), 29},
		{Period{Month: 2, Year: 2023}, time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC), 28},
		{Period{Month: 4, Year: 2024}, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), 30},
		{Period{Month: 12, Year: 2024}, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 31},
	}
	for _, c := range cases {
		assert.Equal(t, c.end, c.period.End())
		assert.Equal(t, c.days, c.period.Days())
		assert.Equal(t, 1, c.period.Start().Day())
	}
}

func TestPeriod_ValidateAndLabel(t *testing.T) {
	assert.NoError(t, Period{Month: 1, Year: 2024}.Validate())
	assert.True(t, errors.Is(Period{Month: 0, Year: 2024}.Validate(), ErrInvalidPeriod))
	assert.True(t, errors.Is(Period{Month: 13, Year: 2024}.Validate(), ErrInvalidPeriod))
	assert.True(t, errors.Is(Period{Month: 5, Year: 0}.Validate(), ErrInvalidPeriod))

	assert.Equal(t, "March", Period{Month: 3, Year: 2024}.Label())
	assert.Equal(t, "", Period{Month: 13, Year: 2024}.Label())
}

func TestPeriod_After(t *testing.T) {
	assert.True(t, Period{Month: 1, Year: 2025}.After(Period{Month: 12, Year: 2024}))
	assert.True(t, Period{Month: 5, Year: 2024}.After(Period{Month: 4, Year: 2024}))
	assert.False(t, Period{Month: 4, Year: 2024}.After(Period{Month: 4, Year: 2024}))
	assert.False(t, Period{Month: 12, Year: 2023}.After(Period{Month: 1, Year: 2024}))
}

func TestGenerateRequest_Validate(t *testing.T) {
	ok := GenerateRequest{Month: 3, Year: 2024}
	assert.NoError(t, ok.Validate())

	bad := GenerateRequest{Month: 0, Year: 2024, Calculation: "weekly"}
	err := bad.Validate()
	assert.ErrorContains(t, err, "month")
	assert.ErrorContains(t, err, "calculation")
}

func TestFieldReportRequest_Validate(t *testing.T) {
	assert.NoError(t, (&FieldReportRequest{FieldID: "basic", Year: 2024}).Validate())
	assert.ErrorContains(t, (&FieldReportRequest{Year: 2024}).Validate(), "field_id")
}

func TestRegisterRequest_Validate(t *testing.T) {
	assert.NoError(t, (&RegisterRequest{Month: 6, Year: 2024}).Validate())
	assert.ErrorContains(t, (&RegisterRequest{Month: 14, Year: 2024}).Validate(), "period")
}
