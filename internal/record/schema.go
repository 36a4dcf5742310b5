package record

import (
	"fmt"
	"reflect"
)

// Schema is the field table of one record type.
//
// A Schema maps each field name to the accessor that reads it. It is built
// once per record type and is read-only afterwards, so it is safe for
// concurrent use.
type Schema[R any] struct {
	name   string
	fields map[string]Field[R]
	order  []Field[R]
}

// NewSchema builds the field table for record type R.
//
// name identifies the record type in error messages. Field names must be
// non-empty and unique. Each accessor is copied and bound to the schema.
func NewSchema[R any](name string, fields ...Field[R]) (*Schema[R], error) {
	if name == "" {
		return nil, fmt.Errorf("schema name is required")
	}

	s := &Schema[R]{
		name:   name,
		fields: make(map[string]Field[R], len(fields)),
		order:  make([]Field[R], 0, len(fields)),
	}
	for i, f := range fields {
		if f == nil {
			return nil, fmt.Errorf("schema %q: field %d is nil", name, i)
		}
		if f.Name() == "" {
			return nil, fmt.Errorf("schema %q: field %d has no name", name, i)
		}
		if _, dup := s.fields[f.Name()]; dup {
			return nil, fmt.Errorf("schema %q: duplicate field %q", name, f.Name())
		}
		bound := f.bind(name)
		s.fields[f.Name()] = bound
		s.order = append(s.order, bound)
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
// Intended for package-level schema declarations.
func MustSchema[R any](name string, fields ...Field[R]) *Schema[R] {
	s, err := NewSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the record type name.
func (s *Schema[R]) Name() string { return s.name }

// Fields returns the fields in declaration order.
func (s *Schema[R]) Fields() []Field[R] {
	out := make([]Field[R], len(s.order))
	copy(out, s.order)
	return out
}

// Lookup finds a field by exact name.
// Names are never split on "." or case-folded.
func (s *Schema[R]) Lookup(name string) (Field[R], error) {
	f, ok := s.fields[name]
	if !ok {
		return nil, &UnknownFieldError{Record: s.name, Field: name}
	}
	return f, nil
}

// Resolve finds a field by name and recovers its typed accessor.
//
// Returns *UnknownFieldError if the field is not declared, and
// *TypeMismatchError if its declared type is not V.
//
// Example:
//
//	dob, err := record.Resolve[time.Time](people, "Dob")
func Resolve[V, R any](s *Schema[R], name string) (*Accessor[R, V], error) {
	f, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	acc, ok := f.(*Accessor[R, V])
	if !ok {
		return nil, &TypeMismatchError{
			Record: s.name,
			Field:  name,
			Want:   TypeName(reflect.TypeFor[V]()),
			Got:    TypeName(f.Type()),
		}
	}
	return acc, nil
}

// TypeName renders a type the way errors report it.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
