package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/paymentfield"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/money"
	attendancesvc "github.com/cmlabs-hris/payroll-engine/internal/service/attendance"
)

// DefaultWorkers bounds the number of employees evaluated at once.
const DefaultWorkers = 8

type PayrollServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	fieldRepo      paymentfield.PaymentFieldRepository
	opts           []EvaluatorOption
	workers        int
	logger         *slog.Logger
}

func NewPayrollService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	fieldRepo paymentfield.PaymentFieldRepository,
	workers int,
	logger *slog.Logger,
	opts ...EvaluatorOption,
) payroll.PayrollService {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PayrollServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		fieldRepo:      fieldRepo,
		opts:           opts,
		workers:        workers,
		logger:         logger,
	}
}

func (s *PayrollServiceImpl) evaluator(calculation payroll.Calculation) *Evaluator {
	opts := append([]EvaluatorOption(nil), s.opts...)
	return NewEvaluator(append(opts, WithCalculation(calculation))...)
}

// load fetches the employees, catalog and attendance a request needs.
func (s *PayrollServiceImpl) load(ctx context.Context, filter employee.Filter, from, to time.Time) ([]employee.Employee, *paymentfield.Catalog, map[string][]attendance.Attendance, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list employees: %w", err)
	}
	if len(employees) == 0 {
		return nil, nil, nil, payroll.ErrNoEmployees
	}

	catalog, err := s.fieldRepo.LoadCatalog(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load payment fields: %w", err)
	}

	ids := make([]string, 0, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.ID)
	}
	rows, err := s.attendanceRepo.ListByEmployees(ctx, ids, from, to)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return employees, catalog, rows, nil
}

// ========== PAYMENT DATA ==========

func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GenerateRequest) (payroll.PayrollRun, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRun{}, err
	}

	calculation := req.Calculation
	if calculation == "" {
		calculation = payroll.CalculationMonthly
	}
	period := req.Period()
	run := payroll.PayrollRun{
		ID:          uuid.New(),
		Period:      period,
		Calculation: calculation,
	}
	log := s.logger.With("run_id", run.ID.String(), "month", period.Month, "year", period.Year)

	employees, catalog, attendanceRows, err := s.load(ctx, req.Filter(), period.Start(), period.End())
	if err != nil {
		return payroll.PayrollRun{}, err
	}
	log.Info("payroll run started", "employees", len(employees), "calculation", calculation)

	ev := s.evaluator(calculation)
	rows := make([]payroll.EmployeePayment, len(employees))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, emp := range employees {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			row, err := employeePayment(ev, emp, catalog.ForLocation(emp.ProjectLocationID), attendanceRows[emp.ID], period)
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.ID, err)
			}
			if row.Skipped != "" {
				log.Warn("employee skipped", "employee_id", emp.ID, "reason", row.Skipped)
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("payroll run aborted", "error", err)
		return payroll.PayrollRun{}, err
	}

	run.Rows = rows
	run.Totals = ComputeTotals(rows)
	run.GeneratedAt = time.Now().UTC()

	log.Info("payroll run finished", "net", run.Totals.Net, "skipped", run.Totals.Skipped)
	return run, nil
}

// employeePayment evaluates every field for one employee. The attendance
// summary is computed once and shared by all fields. An employee with no
// attendance in the period is paid nothing.
func employeePayment(ev *Evaluator, emp employee.Employee, fields []*paymentfield.PaymentField, rows []attendance.Attendance, period payroll.Period) (payroll.EmployeePayment, error) {
	summary := ev.Summarize(attendance.Records(rows))
	row := payroll.EmployeePayment{
		Employee:   emp,
		Period:     period,
		Attendance: summary,
		Fields:     make([]payroll.PaymentData, 0, len(fields)),
	}
	for _, field := range fields {
		row.Fields = append(row.Fields, payroll.PaymentData{
			FieldID:     field.Key(),
			Name:        field.Name,
			IsDeduction: field.IsDeduction,
			IsStatutory: field.IsStatutory,
		})
	}

	if err := emp.Validate(); err != nil {
		var invalid *employee.InvalidRecordError
		if errors.As(err, &invalid) {
			row.Skipped = invalid.Reason
			return row, nil
		}
		return row, err
	}
	if len(rows) == 0 {
		return row, nil
	}

	for i, field := range fields {
		v, err := ev.Evaluate(emp, field, summary, period.Month, period.Year)
		if err != nil {
			return payroll.EmployeePayment{}, err
		}
		row.Fields[i].Value = v
	}

	applyTotals(&row)
	return row, nil
}

// ========== REPORTS ==========

func (s *PayrollServiceImpl) FieldReport(ctx context.Context, req payroll.FieldReportRequest) (payroll.FieldReport, error) {
	if err := req.Validate(); err != nil {
		return payroll.FieldReport{}, err
	}

	from := time.Date(req.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(req.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
	employees, catalog, attendanceRows, err := s.load(ctx, req.Filter(), from, to)
	if err != nil {
		return payroll.FieldReport{}, err
	}

	field, err := catalog.Get(req.FieldID)
	if err != nil {
		return payroll.FieldReport{}, err
	}

	ev := s.evaluator(payroll.CalculationMonthly)
	report := payroll.FieldReport{
		FieldID:   field.ID,
		FieldName: field.Name,
		Year:      req.Year,
		Rows:      make([]payroll.FieldReportRow, len(employees)),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, emp := range employees {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			row, err := fieldReportRow(ev, emp, field, attendanceRows[emp.ID], req.Year)
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.ID, err)
			}
			report.Rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.FieldReport{}, err
	}

	return report, nil
}

func fieldReportRow(ev *Evaluator, emp employee.Employee, field *paymentfield.PaymentField, rows []attendance.Attendance, year int) (payroll.FieldReportRow, error) {
	row := payroll.FieldReportRow{Employee: emp}

	byMonth := make(map[int][]attendance.Record, 12)
	for _, a := range rows {
		if a.Date.Year() == year {
			byMonth[int(a.Date.Month())] = append(byMonth[int(a.Date.Month())], a.Record())
		}
	}

	for m := 1; m <= 12; m++ {
		v, err := ev.EvaluateRecords(emp, field, byMonth[m], m, year)
		if err != nil {
			var invalid *employee.InvalidRecordError
			if errors.As(err, &invalid) {
				return payroll.FieldReportRow{Employee: emp, Skipped: invalid.Reason}, nil
			}
			return payroll.FieldReportRow{}, err
		}
		row.Monthly[m-1] = v
	}
	row.Total = money.Sum(row.Monthly[:]...)

	return row, nil
}

func (s *PayrollServiceImpl) AttendanceRegister(ctx context.Context, req payroll.RegisterRequest) (payroll.AttendanceRegister, error) {
	if err := req.Validate(); err != nil {
		return payroll.AttendanceRegister{}, err
	}

	period := req.Period()
	employees, err := s.employeeRepo.List(ctx, req.Filter())
	if err != nil {
		return payroll.AttendanceRegister{}, fmt.Errorf("failed to list employees: %w", err)
	}

	ids := make([]string, 0, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.ID)
	}
	rows, err := s.attendanceRepo.ListByEmployees(ctx, ids, period.Start(), period.End())
	if err != nil {
		return payroll.AttendanceRegister{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return attendancesvc.Register(period, employees, rows), nil
}
