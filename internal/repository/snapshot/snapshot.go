// Package snapshot serves employees, attendance and payment fields from a
// JSON document instead of the database.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/paymentfield"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

// Document is the on-disk layout of a snapshot.
type Document struct {
	Employees      []employee.EmployeeInput     `json:"employees"`
	Attendance     []attendance.AttendanceInput `json:"attendance"`
	PaymentFields  []paymentfield.Definition    `json:"payment_fields"`
	LocationFields map[string][]string          `json:"location_fields"`
}

// Store implements the employee, attendance and payment field repositories
// over a decoded Document. It is read-only after Load.
type Store struct {
	employees  []employee.Employee
	attendance map[string][]attendance.Attendance
	catalog    *paymentfield.Catalog
}

var (
	_ employee.EmployeeRepository         = (*Store)(nil)
	_ attendance.AttendanceRepository     = (*Store)(nil)
	_ paymentfield.PaymentFieldRepository = (*Store)(nil)
)

// Load decodes and validates a snapshot. Employees with malformed data are
// kept so a payroll run can report them as skipped.
func Load(r io.Reader) (*Store, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return New(doc)
}

func New(doc Document) (*Store, error) {
	s := &Store{
		employees:  make([]employee.Employee, 0, len(doc.Employees)),
		attendance: make(map[string][]attendance.Attendance),
	}

	seen := make(map[string]bool, len(doc.Employees))
	for i := range doc.Employees {
		in := doc.Employees[i]
		if validator.IsEmpty(in.ID) {
			return nil, fmt.Errorf("employees[%d]: %w", i, employee.ErrInvalidEmployeeRecord)
		}
		if seen[in.ID] {
			return nil, fmt.Errorf("employees[%d]: duplicate id %s: %w", i, in.ID, employee.ErrInvalidEmployeeRecord)
		}
		seen[in.ID] = true
		s.employees = append(s.employees, toEmployee(in))
	}

	for i := range doc.Attendance {
		row, err := doc.Attendance[i].ToEntity()
		if err != nil {
			return nil, fmt.Errorf("attendance[%d]: %w", i, err)
		}
		if !seen[row.EmployeeID] {
			return nil, fmt.Errorf("attendance[%d]: %w: %s", i, employee.ErrEmployeeNotFound, row.EmployeeID)
		}
		s.attendance[row.EmployeeID] = append(s.attendance[row.EmployeeID], row)
	}
	for id := range s.attendance {
		rows := s.attendance[id]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	}

	catalog, err := paymentfield.NewCatalog(doc.PaymentFields, doc.LocationFields)
	if err != nil {
		return nil, err
	}
	s.catalog = catalog

	return s, nil
}

// toEmployee converts what it can. Fields that fail validation are left
// zero or raw and are reported by Employee.Validate.
func toEmployee(in employee.EmployeeInput) employee.Employee {
	emp, err := in.ToEntity()
	var invalid *employee.InvalidRecordError
	if err == nil || !errors.As(err, &invalid) {
		return emp
	}

	joining, _ := validator.IsValidDate(in.JoiningDate)
	return employee.Employee{
		ID:                  in.ID,
		FullName:            in.FullName,
		Designation:         in.Designation,
		JoiningDate:         joining,
		SkillType:           employee.SkillType(in.SkillType),
		CompanyID:           in.CompanyID,
		CompanyName:         in.CompanyName,
		ProjectID:           in.ProjectID,
		ProjectName:         in.ProjectName,
		ProjectLocationID:   in.ProjectLocationID,
		ProjectLocationName: in.ProjectLocationName,
	}
}

// List implements employee.EmployeeRepository in document order.
func (s *Store) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []employee.Employee
	for _, emp := range s.employees {
		if filter.Match(emp) {
			out = append(out, emp)
		}
	}
	return out, nil
}

// ListByEmployees implements attendance.AttendanceRepository.
func (s *Store) ListByEmployees(ctx context.Context, employeeIDs []string, from, to time.Time) (map[string][]attendance.Attendance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, attendance.ErrInvalidRange
	}

	out := make(map[string][]attendance.Attendance, len(employeeIDs))
	for _, id := range employeeIDs {
		for _, row := range s.attendance[id] {
			if row.Date.Before(from) || row.Date.After(to) {
				continue
			}
			out[id] = append(out[id], row)
		}
	}
	return out, nil
}

// LoadCatalog implements paymentfield.PaymentFieldRepository.
func (s *Store) LoadCatalog(ctx context.Context) (*paymentfield.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.catalog, nil
}
