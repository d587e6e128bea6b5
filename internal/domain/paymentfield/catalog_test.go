package paymentfield

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthlyValue(amount float64) ValueInput {
	return ValueInput{
		Value:        amount,
		Type:         "fixed",
		ValueType:    "monthly",
		SkillType:    "all",
		PayFrequency: "monthly",
		Month:        1,
		Year:         2024,
		EmployeeIDs:  []string{"e1"},
	}
}

func TestNewCatalog_LinksReferences(t *testing.T) {
	defs := []Definition{
		{ID: "basic", Name: "Basic", Values: []ValueInput{monthlyValue(1000)}},
		{ID: "da", Name: "DA", Values: []ValueInput{monthlyValue(200)}},
		{ID: "pf", Name: "PF", IsDeduction: true, IsStatutory: true, PercentageOf: []string{"basic", "da"}},
		{ID: "bonus", Name: "Bonus", MinValueOf: []string{"basic"}},
	}

	catalog, err := NewCatalog(defs, map[string][]string{"loc1": {"basic", "pf"}})
	require.NoError(t, err)

	pf, err := catalog.Get("pf")
	require.NoError(t, err)
	require.Len(t, pf.PercentageOf, 2)
	assert.Same(t, catalog.Fields["basic"], pf.PercentageOf[0])
	assert.Same(t, catalog.Fields["da"], pf.PercentageOf[1])
	assert.True(t, pf.IsDeduction)
	assert.True(t, pf.IsStatutory)

	bonus, err := catalog.Get("bonus")
	require.NoError(t, err)
	assert.Same(t, catalog.Fields["basic"], bonus.MinValueOf[0])

	fields := catalog.ForLocation("loc1")
	require.Len(t, fields, 2)
	assert.Equal(t, "Basic", fields[0].Name)
	assert.Equal(t, "PF", fields[1].Name)
	assert.Empty(t, catalog.ForLocation("unknown"))
}

func TestNewCatalog_AllowsCyclesInData(t *testing.T) {
	defs := []Definition{
		{ID: "a", Name: "A", PercentageOf: []string{"b"}},
		{ID: "b", Name: "B", PercentageOf: []string{"a"}},
	}
	catalog, err := NewCatalog(defs, nil)
	require.NoError(t, err)
	assert.Same(t, catalog.Fields["a"], catalog.Fields["b"].PercentageOf[0])
}

func TestNewCatalog_Errors(t *testing.T) {
	t.Run("unknown reference", func(t *testing.T) {
		_, err := NewCatalog([]Definition{{ID: "pf", Name: "PF", PercentageOf: []string{"basic"}}}, nil)
		assert.True(t, errors.Is(err, ErrPaymentFieldNotFound))
	})
	t.Run("unknown location field", func(t *testing.T) {
		_, err := NewCatalog([]Definition{{ID: "basic", Name: "Basic"}}, map[string][]string{"loc1": {"hra"}})
		assert.True(t, errors.Is(err, ErrPaymentFieldNotFound))
	})
	t.Run("duplicate id", func(t *testing.T) {
		_, err := NewCatalog([]Definition{{ID: "basic", Name: "Basic"}, {ID: "basic", Name: "Basic 2"}}, nil)
		assert.True(t, errors.Is(err, ErrInvalidPaymentField))
	})
	t.Run("invalid definition", func(t *testing.T) {
		_, err := NewCatalog([]Definition{{ID: "basic"}}, nil)
		assert.True(t, errors.Is(err, ErrInvalidPaymentField))
	})
	t.Run("get unknown", func(t *testing.T) {
		catalog, err := NewCatalog(nil, nil)
		require.NoError(t, err)
		_, err = catalog.Get("nope")
		assert.True(t, errors.Is(err, ErrPaymentFieldNotFound))
	})
}

func TestDefinition_Validate(t *testing.T) {
	negative := -5.0
	cases := []struct {
		name  string
		def   Definition
		field string
	}{
		{"missing name", Definition{ID: "x"}, "name"},
		{"negative eligibility", Definition{ID: "x", Name: "X", EligibleAfterYears: -1}, "eligible_after_years"},
		{"both reference sets", Definition{ID: "x", Name: "X", PercentageOf: []string{"a"}, MinValueOf: []string{"b"}}, "min_value_of"},
		{"bad kind", Definition{ID: "x", Name: "X", Values: []ValueInput{func() ValueInput { v := monthlyValue(1); v.Type = "ratio"; return v }()}}, "value[0].type"},
		{"bad basis", Definition{ID: "x", Name: "X", Values: []ValueInput{func() ValueInput { v := monthlyValue(1); v.ValueType = "weekly"; return v }()}}, "value[0].value_type"},
		{"bad month", Definition{ID: "x", Name: "X", Values: []ValueInput{func() ValueInput { v := monthlyValue(1); v.Month = 13; return v }()}}, "value[0].month"},
		{"negative cap", Definition{ID: "x", Name: "X", Values: []ValueInput{func() ValueInput { v := monthlyValue(1); v.MaxValue = &negative; return v }()}}, "value[0].max_value"},
		{"bad skill", Definition{ID: "x", Name: "X", Values: []ValueInput{func() ValueInput { v := monthlyValue(1); v.SkillType = "expert"; return v }()}}, "value[0].skill_type"},
		{"bad created_at", Definition{ID: "x", Name: "X", Values: []ValueInput{func() ValueInput { v := monthlyValue(1); v.CreatedAt = "yesterday"; return v }()}}, "value[0].created_at"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.def.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.field)
		})
	}
}

func TestDefinition_ToEntity_CopiesValues(t *testing.T) {
	capValue := 15000.0
	v := monthlyValue(12)
	v.Type = "percentage"
	v.MaxValue = &capValue
	v.CreatedAt = "2024-02-01T09:00:00Z"

	def := Definition{ID: "pf", Name: "PF", EligibleAfterYears: 1, Values: []ValueInput{v}}
	field, err := def.ToEntity()
	require.NoError(t, err)

	require.Len(t, field.Values, 1)
	got := field.Values[0]
	assert.Equal(t, KindPercentage, got.Kind)
	assert.Equal(t, BasisMonthly, got.AmountBasis)
	require.NotNil(t, got.MaxAmount)
	assert.Equal(t, 15000.0, *got.MaxAmount)
	assert.Nil(t, got.MinAmount)
	assert.Equal(t, time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC), got.CreatedAt)

	capValue = 1
	assert.Equal(t, 15000.0, *got.MaxAmount)
}

func TestCyclicReferenceError(t *testing.T) {
	err := &CyclicReferenceError{Path: []string{"A", "B", "A"}}
	assert.Equal(t, "cyclic payment field reference: A -> B -> A", err.Error())
	assert.True(t, errors.Is(err, ErrCyclicFieldReference))
}

func TestPaymentField_Key(t *testing.T) {
	assert.Equal(t, "id1", (&PaymentField{ID: "id1", Name: "Basic"}).Key())
	assert.Equal(t, "Basic", (&PaymentField{Name: "Basic"}).Key())
}
