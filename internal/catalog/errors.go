package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownRecordError is returned when a record type name is not registered.
type UnknownRecordError struct {
	Name  string
	Known []string
}

func (e *UnknownRecordError) Error() string {
	return fmt.Sprintf("UNKNOWN_RECORD: no record type %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

// LiteralError is returned when a literal cannot be converted to a field's type.
type LiteralError struct {
	Field string
	Raw   any
	Want  string
	Err   error
}

func (e *LiteralError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot use %#v as %s for field %s: %v", e.Raw, e.Want, e.Field, e.Err)
	}
	return fmt.Sprintf("cannot use %#v as %s for field %s", e.Raw, e.Want, e.Field)
}

func (e *LiteralError) Unwrap() error { return e.Err }

// IsUnknownRecord returns true if err is or wraps an UnknownRecordError.
func IsUnknownRecord(err error) bool {
	var e *UnknownRecordError
	return errors.As(err, &e)
}

// IsLiteral returns true if err is or wraps a LiteralError.
func IsLiteral(err error) bool {
	var e *LiteralError
	return errors.As(err, &e)
}
