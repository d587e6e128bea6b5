package payroll

import "errors"

var (
	ErrInvalidPeriod      = errors.New("invalid payroll period")
	ErrInvalidCalculation = errors.New("calculation must be monthly or yearly")
	ErrNoEmployees        = errors.New("no employees match the filter")
)
