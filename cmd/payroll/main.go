package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/export"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/logger"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/payslip"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/storage"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/postgresql"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/snapshot"
	payrollService "github.com/cmlabs-hris/payroll-engine/internal/service/payroll"
)

type options struct {
	mode        string
	month       int
	year        int
	company     string
	project     string
	location    string
	field       string
	calculation string
	format      string
	source      string
	snapshot    string
	out         string
	outDir      string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	now := time.Now()
	var opts options

	fs := flag.NewFlagSet("payroll", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.mode, "mode", "generate", "generate, report or register")
	fs.IntVar(&opts.month, "month", int(now.Month()), "month 1-12")
	fs.IntVar(&opts.year, "year", now.Year(), "year")
	fs.StringVar(&opts.company, "company", "", "company id filter")
	fs.StringVar(&opts.project, "project", "", "project id filter")
	fs.StringVar(&opts.location, "location", "", "project location id filter")
	fs.StringVar(&opts.field, "field", "", "payment field id (report mode)")
	fs.StringVar(&opts.calculation, "calculation", string(payroll.CalculationMonthly), "monthly or yearly")
	fs.StringVar(&opts.format, "format", "csv", "csv, pdf or json")
	fs.StringVar(&opts.source, "source", "db", "db or snapshot")
	fs.StringVar(&opts.snapshot, "snapshot", "", "snapshot JSON file (snapshot source)")
	fs.StringVar(&opts.out, "out", "", "output file, stdout when empty")
	fs.StringVar(&opts.outDir, "out-dir", "", "directory for generated files; pdf output is split per employee")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch {
	case opts.mode != "generate" && opts.mode != "report" && opts.mode != "register":
		return options{}, fmt.Errorf("unknown mode %q", opts.mode)
	case opts.format != "csv" && opts.format != "pdf" && opts.format != "json":
		return options{}, fmt.Errorf("unknown format %q", opts.format)
	case opts.format == "pdf" && opts.mode != "generate":
		return options{}, errors.New("pdf output is only available in generate mode")
	case opts.source != "db" && opts.source != "snapshot":
		return options{}, fmt.Errorf("unknown source %q", opts.source)
	case opts.source == "snapshot" && opts.snapshot == "":
		return options{}, errors.New("-snapshot is required with -source snapshot")
	case opts.out != "" && opts.outDir != "":
		return options{}, errors.New("-out and -out-dir cannot be combined")
	}

	return opts, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		slog.Error("payroll failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	log := logger.NewWithWriter(stderr, cfg.App.Env, cfg.App.LogLevel)
	slog.SetDefault(log)

	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	svc, closeFn, err := newService(ctx, cfg, opts, log)
	if err != nil {
		return err
	}
	defer closeFn()

	var store storage.FileStorage
	if opts.outDir != "" {
		if store, err = storage.NewLocalStorage(opts.outDir); err != nil {
			return err
		}
	}
	period := fmt.Sprintf("%04d-%02d", opts.year, opts.month)

	switch opts.mode {
	case "report":
		report, err := svc.FieldReport(ctx, payroll.FieldReportRequest{
			FieldID:           opts.field,
			Year:              opts.year,
			CompanyID:         opts.company,
			ProjectID:         opts.project,
			ProjectLocationID: opts.location,
		})
		if err != nil {
			return err
		}
		name := fmt.Sprintf("report-%s-%d.%s", opts.field, opts.year, opts.format)
		return deliver(ctx, opts, stdout, store, name, func(w io.Writer) error {
			if opts.format == "json" {
				return writeJSON(w, report)
			}
			return export.WriteFieldReportCSV(w, report)
		})

	case "register":
		register, err := svc.AttendanceRegister(ctx, payroll.RegisterRequest{
			Month:             opts.month,
			Year:              opts.year,
			CompanyID:         opts.company,
			ProjectID:         opts.project,
			ProjectLocationID: opts.location,
		})
		if err != nil {
			return err
		}
		name := fmt.Sprintf("register-%s.%s", period, opts.format)
		return deliver(ctx, opts, stdout, store, name, func(w io.Writer) error {
			if opts.format == "json" {
				return writeJSON(w, register)
			}
			return export.WriteRegisterCSV(w, register)
		})

	default:
		result, err := svc.Generate(ctx, payroll.GenerateRequest{
			Month:             opts.month,
			Year:              opts.year,
			CompanyID:         opts.company,
			ProjectID:         opts.project,
			ProjectLocationID: opts.location,
			Calculation:       payroll.Calculation(opts.calculation),
		})
		if err != nil {
			return err
		}
		if opts.format == "pdf" && store != nil {
			return savePayslips(ctx, store, period, result)
		}
		name := fmt.Sprintf("payroll-%s.%s", period, opts.format)
		return deliver(ctx, opts, stdout, store, name, func(w io.Writer) error {
			switch opts.format {
			case "json":
				return writeJSON(w, result)
			case "pdf":
				return payslip.Write(w, result)
			default:
				return export.WritePaymentCSV(w, result)
			}
		})
	}
}

// deliver sends rendered output to the storage directory, the -out file or
// stdout, in that order of preference.
func deliver(ctx context.Context, opts options, stdout io.Writer, store storage.FileStorage, name string, render func(io.Writer) error) error {
	switch {
	case store != nil:
		var buf bytes.Buffer
		if err := render(&buf); err != nil {
			return err
		}
		path, err := store.Save(ctx, &buf, name)
		if err != nil {
			return err
		}
		slog.Info("output saved", "path", path)
		return nil

	case opts.out != "":
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := render(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()

	default:
		return render(stdout)
	}
}

// savePayslips stores one PDF per computed employee under the period folder.
func savePayslips(ctx context.Context, store storage.FileStorage, period string, run payroll.PayrollRun) error {
	for _, row := range run.Rows {
		if row.Skipped != "" {
			slog.Warn("no pay slip for skipped employee", "employee_id", row.Employee.ID, "reason", row.Skipped)
			continue
		}
		var buf bytes.Buffer
		if err := payslip.WriteEmployee(&buf, row); err != nil {
			return fmt.Errorf("employee %s: %w", row.Employee.ID, err)
		}
		if _, err := store.Save(ctx, &buf, fmt.Sprintf("%s/%s.pdf", period, row.Employee.ID)); err != nil {
			return err
		}
	}
	slog.Info("pay slips saved", "period", period, "employees", len(run.Rows)-run.Totals.Skipped)
	return nil
}

// newService wires the repositories for the chosen source.
func newService(ctx context.Context, cfg *config.Config, opts options, log *slog.Logger) (payroll.PayrollService, func(), error) {
	evalOpts := []payrollService.EvaluatorOption{payrollService.WithNormalDayHours(cfg.Payroll.NormalDayHours)}

	if opts.source == "snapshot" {
		f, err := os.Open(opts.snapshot)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open snapshot: %w", err)
		}
		defer f.Close()

		store, err := snapshot.Load(f)
		if err != nil {
			return nil, nil, err
		}
		svc := payrollService.NewPayrollService(store, store, store, cfg.Payroll.Workers, log, evalOpts...)
		return svc, func() {}, nil
	}

	if err := cfg.ValidateDatabase(); err != nil {
		return nil, nil, err
	}
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, nil, fmt.Errorf("error connecting to database: %w", err)
	}

	svc := payrollService.NewPayrollService(
		postgresql.NewEmployeeRepository(db),
		postgresql.NewAttendanceRepository(db),
		postgresql.NewPaymentFieldRepository(db),
		cfg.Payroll.Workers,
		log,
		evalOpts...,
	)
	return svc, db.Close, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
