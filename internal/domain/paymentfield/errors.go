package paymentfield

import (
	"errors"
	"strings"
)

var (
	ErrPaymentFieldNotFound = errors.New("payment field not found")
	ErrInvalidPaymentField  = errors.New("invalid payment field")
	ErrCyclicFieldReference = errors.New("cyclic payment field reference")
)

// CyclicReferenceError reports the recursion path that revisited a field.
type CyclicReferenceError struct {
	Path []string
}

func (e *CyclicReferenceError) Error() string {
	return ErrCyclicFieldReference.Error() + ": " + strings.Join(e.Path, " -> ")
}

func (e *CyclicReferenceError) Unwrap() error {
	return ErrCyclicFieldReference
}
