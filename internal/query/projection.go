package query

import "github.com/roach88/fieldq/internal/record"

// Projection extracts a value from a record.
// Like Predicate, a Projection is pure and safe to reuse.
type Projection[R, V any] func(R) (V, error)

// Project builds a projection reading field as type V.
//
// Returns *record.UnknownFieldError if the field is not declared and
// *record.TypeMismatchError if it is not declared with type V.
func Project[V, R any](s *record.Schema[R], field string) (Projection[R, V], error) {
	acc, err := resolve[V](s, field, OpProjection)
	if err != nil {
		return nil, err
	}
	return acc.Get, nil
}

// ProjectAny builds a projection for callers that know only the field name.
// Values are returned with their declared dynamic type.
func ProjectAny[R any](s *record.Schema[R], field string) (Projection[R, any], error) {
	f, err := s.Lookup(field)
	if err != nil {
		return nil, err
	}
	return f.Value, nil
}
