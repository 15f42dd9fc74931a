/*
errors.go - Centralized error types for the jalali calendar core

PURPOSE:
  All error kinds the core can produce, in one place. Callers match with
  errors.Is against the sentinels; structured errors carry the offending
  field and values for diagnostics.

ERROR CATEGORIES:
  1. Range errors       - A field value outside its static valid range
                          (month 13, day 32, year beyond the proleptic limit)
  2. State errors       - Individually in-range fields that do not form a
                          valid date (12/30 in a non-leap year, day-of-year
                          366 in a 365-day year)
  3. Overflow errors    - Arithmetic that would leave the representable
                          year range, detected by bounds checks before any
                          widening operation

USAGE:
  if errors.Is(err, jalali.ErrInvalidDate) {
      // in-range fields, invalid combination
  }

SEE ALSO:
  - date.go:    Raises these at construction and mutation
  - resolve.go: Mode-dependent raising/clamping
*/
package jalali

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrRange is returned when a single field value lies outside its static
	// valid range, independent of every other field.
	ErrRange = errors.New("field value out of range")

	// ErrInvalidDate is returned when individually in-range field values do
	// not combine into a valid calendar date.
	ErrInvalidDate = errors.New("fields do not form a valid date")

	// ErrOverflow is returned when date arithmetic would leave the supported
	// year range. It is always raised by an explicit bounds check, never by
	// silent integer wraparound.
	ErrOverflow = errors.New("date arithmetic overflows supported range")

	// ErrUnsupportedField is returned by Get/With/Range for a field the
	// receiving type does not carry.
	ErrUnsupportedField = errors.New("unsupported field")

	// ErrUnresolved is returned when a field map matches no resolvable
	// combination.
	ErrUnresolved = errors.New("no resolvable field combination")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RangeError reports a field value outside its static range.
type RangeError struct {
	Field string
	Value int64
	Min   int64
	Max   int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrRange }

// CalendarStateError reports in-range fields that do not form a valid date.
type CalendarStateError struct {
	Reason string
}

func (e *CalendarStateError) Error() string {
	return "invalid date: " + e.Reason
}

func (e *CalendarStateError) Unwrap() error { return ErrInvalidDate }

// OverflowError reports arithmetic leaving the representable year range.
type OverflowError struct {
	Op string
}

func (e *OverflowError) Error() string {
	return e.Op + " overflows supported year range"
}

func (e *OverflowError) Unwrap() error { return ErrOverflow }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// rangeErr is a shorthand constructor used throughout the package.
func rangeErr(field string, value, min, max int64) error {
	return &RangeError{Field: field, Value: value, Min: min, Max: max}
}

func stateErr(format string, args ...any) error {
	return &CalendarStateError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidationError returns true if the error is due to invalid caller input
// rather than an internal failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrRange) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrUnsupportedField) ||
		errors.Is(err, ErrUnresolved)
}
