package employee

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrInvalidEmployeeRecord = errors.New("invalid employee record")
)

// InvalidRecordError describes why an employee row cannot be evaluated.
type InvalidRecordError struct {
	EmployeeID string
	Reason     string
}

func (e *InvalidRecordError) Error() string {
	if e.EmployeeID == "" {
		return fmt.Sprintf("invalid employee record: %s", e.Reason)
	}
	return fmt.Sprintf("invalid employee record %s: %s", e.EmployeeID, e.Reason)
}

func (e *InvalidRecordError) Unwrap() error {
	return ErrInvalidEmployeeRecord
}
