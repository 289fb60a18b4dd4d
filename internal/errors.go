package internal

import (
	"errors"
	"fmt"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUnknownFilter       = errors.New("unknown filter kind")
	ErrEmptyCategory       = errors.New("category cannot be empty")
	ErrInvalidType         = errors.New("type must be Income or Expense")
	ErrAmountOutOfRange    = errors.New("amount must be a finite number")
	ErrMissingDate         = errors.New("date is required")
)

// ParseError reports input that could not be turned into a transaction field
// or a filter boundary.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RangeError reports a positional index outside [0, Len).
type RangeError struct {
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("transaction index %d out of range [0, %d)", e.Index, e.Len)
}

// IOError wraps a failure reading or writing a ledger file.
type IOError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
