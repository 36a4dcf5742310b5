package record

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes field resolution and evaluation errors.
type ErrorCode string

const (
	// ErrCodeUnknownField indicates the field name is not declared on the record type.
	ErrCodeUnknownField ErrorCode = "UNKNOWN_FIELD"

	// ErrCodeTypeMismatch indicates the field exists but its declared type cannot
	// serve the requested operation or literal.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"

	// ErrCodeNullField indicates a nullable field was absent on a specific record.
	ErrCodeNullField ErrorCode = "NULL_FIELD"
)

// UnknownFieldError is returned at resolution time when a field name does not
// exist on the record type.
type UnknownFieldError struct {
	Record string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: record %q has no field %q", e.Code(), e.Record, e.Field)
}

// Code returns ErrCodeUnknownField.
func (e *UnknownFieldError) Code() ErrorCode { return ErrCodeUnknownField }

// TypeMismatchError is returned at construction time when a field's declared
// type is incompatible with an operation or with the literal supplied for it.
type TypeMismatchError struct {
	Record string
	Field  string

	// Op names the operation being built ("range", "prefix", "membership",
	// "projection"). Empty for plain resolution.
	Op string

	// Want describes what the operation needed, Got what the field declares.
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s on %s.%s: want %s, field is %s",
			e.Code(), e.Op, e.Record, e.Field, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: %s.%s: want %s, field is %s",
		e.Code(), e.Record, e.Field, e.Want, e.Got)
}

// Code returns ErrCodeTypeMismatch.
func (e *TypeMismatchError) Code() ErrorCode { return ErrCodeTypeMismatch }

// NullFieldError is returned at evaluation time when a nullable field has no
// value on the record being evaluated.
type NullFieldError struct {
	Record string
	Field  string
}

func (e *NullFieldError) Error() string {
	return fmt.Sprintf("%s: %s.%s is null", e.Code(), e.Record, e.Field)
}

// Code returns ErrCodeNullField.
func (e *NullFieldError) Code() ErrorCode { return ErrCodeNullField }

// IsUnknownField reports whether err wraps an UnknownFieldError.
func IsUnknownField(err error) bool {
	var e *UnknownFieldError
	return errors.As(err, &e)
}

// IsTypeMismatch reports whether err wraps a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	var e *TypeMismatchError
	return errors.As(err, &e)
}

// IsNullField reports whether err wraps a NullFieldError.
func IsNullField(err error) bool {
	var e *NullFieldError
	return errors.As(err, &e)
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not one of the
// record errors.
func CodeOf(err error) ErrorCode {
	var coded interface{ Code() ErrorCode }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}
