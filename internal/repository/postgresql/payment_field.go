package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/paymentfield"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
)

type paymentFieldRepository struct {
	db *database.DB
}

func NewPaymentFieldRepository(db *database.DB) paymentfield.PaymentFieldRepository {
	return &paymentFieldRepository{db: db}
}

// LoadCatalog implements paymentfield.PaymentFieldRepository. All tables are
// read inside one snapshot so references resolve against the same data.
func (r *paymentFieldRepository) LoadCatalog(ctx context.Context) (*paymentfield.Catalog, error) {
	var catalog *paymentfield.Catalog

	err := WithSnapshot(ctx, r.db, func(ctx context.Context) error {
		defs, err := r.definitions(ctx)
		if err != nil {
			return err
		}
		locations, err := r.pairs(ctx, `
			SELECT project_location_id::text, payment_field_id::text
			FROM project_location_payment_fields
			ORDER BY project_location_id, position ASC, payment_field_id
		`)
		if err != nil {
			return fmt.Errorf("failed to list project location payment fields: %w", err)
		}

		catalog, err = paymentfield.NewCatalog(defs, locations)
		return err
	})
	if err != nil {
		return nil, err
	}

	return catalog, nil
}

func (r *paymentFieldRepository) definitions(ctx context.Context) ([]paymentfield.Definition, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id::text, name, is_deduction, is_statutory, COALESCE(eligible_after_years, 0)::float8
		FROM payment_fields
		ORDER BY name ASC, id ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment fields: %w", err)
	}
	defer rows.Close()

	var defs []paymentfield.Definition
	index := make(map[string]int)
	for rows.Next() {
		var def paymentfield.Definition
		if err := rows.Scan(&def.ID, &def.Name, &def.IsDeduction, &def.IsStatutory, &def.EligibleAfterYears); err != nil {
			return nil, fmt.Errorf("failed to scan payment field: %w", err)
		}
		index[def.ID] = len(defs)
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment fields: %w", err)
	}

	if err := r.values(ctx, defs, index); err != nil {
		return nil, err
	}

	percentageOf, err := r.pairs(ctx, `
		SELECT payment_field_id::text, reference_id::text
		FROM payment_field_percentage_of
		ORDER BY payment_field_id, position ASC, reference_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list percentage references: %w", err)
	}
	minValueOf, err := r.pairs(ctx, `
		SELECT payment_field_id::text, reference_id::text
		FROM payment_field_min_value_of
		ORDER BY payment_field_id, position ASC, reference_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list min value references: %w", err)
	}

	for i := range defs {
		defs[i].PercentageOf = percentageOf[defs[i].ID]
		defs[i].MinValueOf = minValueOf[defs[i].ID]
	}

	return defs, nil
}

func (r *paymentFieldRepository) values(ctx context.Context, defs []paymentfield.Definition, index map[string]int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT v.id::text, v.payment_field_id::text, v.value::float8, v.max_value::float8, v.min_value::float8,
			   v.type, v.value_type, v.skill_type, v.pay_frequency, v.month, v.year, v.created_at,
			   ARRAY(SELECT c.company_id::text FROM payment_field_value_companies c WHERE c.value_id = v.id ORDER BY 1),
			   ARRAY(SELECT p.project_id::text FROM payment_field_value_projects p WHERE p.value_id = v.id ORDER BY 1),
			   ARRAY(SELECT e.employee_id::text FROM payment_field_value_employees e WHERE e.value_id = v.id ORDER BY 1)
		FROM payment_field_values v
		ORDER BY v.payment_field_id, v.year DESC, v.month DESC, v.created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to list payment field values: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			v         paymentfield.ValueInput
			fieldID   string
			createdAt time.Time
		)
		if err := rows.Scan(
			&v.ID, &fieldID, &v.Value, &v.MaxValue, &v.MinValue,
			&v.Type, &v.ValueType, &v.SkillType, &v.PayFrequency, &v.Month, &v.Year, &createdAt,
			&v.CompanyIDs, &v.ProjectIDs, &v.EmployeeIDs,
		); err != nil {
			return fmt.Errorf("failed to scan payment field value: %w", err)
		}
		v.CreatedAt = createdAt.UTC().Format(time.RFC3339Nano)

		i, ok := index[fieldID]
		if !ok {
			return fmt.Errorf("%w: value %s belongs to %s", paymentfield.ErrPaymentFieldNotFound, v.ID, fieldID)
		}
		defs[i].Values = append(defs[i].Values, v)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate payment field values: %w", err)
	}

	return nil
}

// pairs reads a two column (owner, target) listing into ordered groups.
func (r *paymentFieldRepository) pairs(ctx context.Context, query string) (map[string][]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]string)
	for rows.Next() {
		var owner, target string
		if err := rows.Scan(&owner, &target); err != nil {
			return nil, err
		}
		result[owner] = append(result[owner], target)
	}
	return result, rows.Err()
}
