package query

import (
	"errors"
	"slices"
	"strings"

	"github.com/roach88/fieldq/internal/record"
)

// Operation names reported in TypeMismatchError.Op.
const (
	OpRange      = "range"
	OpPrefix     = "prefix"
	OpMembership = "membership"
	OpProjection = "projection"
)

// Predicate reports whether a record matches.
//
// Predicates are pure: they hold no mutable state and may be called any
// number of times, in any order, from any goroutine. The error is non-nil
// only when the record cannot be evaluated (a *record.NullFieldError).
type Predicate[R any] func(R) (bool, error)

// Range builds a predicate that is true iff lower < field < upper.
//
// Both bounds are exclusive. The field must be ordered and declared with
// type V; otherwise *record.TypeMismatchError is returned and no predicate
// is built. Bounds with lower >= upper are accepted and match nothing.
func Range[R, V any](s *record.Schema[R], field string, lower, upper V) (Predicate[R], error) {
	f, err := s.Lookup(field)
	if err != nil {
		return nil, err
	}
	if !f.Ordered() {
		return nil, &record.TypeMismatchError{
			Record: s.Name(),
			Field:  field,
			Op:     OpRange,
			Want:   "ordered type",
			Got:    record.TypeName(f.Type()),
		}
	}

	acc, err := resolve[V](s, field, OpRange)
	if err != nil {
		return nil, err
	}

	return And(greaterThan(acc, lower), lessThan(acc, upper)), nil
}

// Prefix builds a predicate that is true iff the text field starts with
// prefix. Comparison is byte-wise and case-sensitive; an empty prefix
// matches every record.
func Prefix[R any](s *record.Schema[R], field, prefix string) (Predicate[R], error) {
	f, err := s.Lookup(field)
	if err != nil {
		return nil, err
	}
	if f.Kind() != record.KindText {
		return nil, &record.TypeMismatchError{
			Record: s.Name(),
			Field:  field,
			Op:     OpPrefix,
			Want:   "text",
			Got:    record.TypeName(f.Type()),
		}
	}

	acc, err := resolve[string](s, field, OpPrefix)
	if err != nil {
		return nil, err
	}

	return func(r R) (bool, error) {
		v, err := acc.Get(r)
		if err != nil {
			return false, err
		}
		return strings.HasPrefix(v, prefix), nil
	}, nil
}

// Contains builds a predicate that is true iff the collection field has an
// element equal to value. Empty and nil collections never match.
//
// The field must be a list field with element type E.
func Contains[R any, E comparable](s *record.Schema[R], field string, value E) (Predicate[R], error) {
	f, err := s.Lookup(field)
	if err != nil {
		return nil, err
	}
	if f.Kind() != record.KindList {
		return nil, &record.TypeMismatchError{
			Record: s.Name(),
			Field:  field,
			Op:     OpMembership,
			Want:   "collection",
			Got:    record.TypeName(f.Type()),
		}
	}

	acc, err := resolve[[]E](s, field, OpMembership)
	if err != nil {
		return nil, err
	}

	return func(r R) (bool, error) {
		elems, err := acc.Get(r)
		if err != nil {
			return false, err
		}
		return slices.Contains(elems, value), nil
	}, nil
}

// And returns the conjunction of preds, evaluated left to right.
// Evaluation stops at the first false result or error.
// An empty And is always true.
func And[R any](preds ...Predicate[R]) Predicate[R] {
	preds = slices.Clone(preds)
	return func(r R) (bool, error) {
		for _, p := range preds {
			ok, err := p(r)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

// Or returns the disjunction of preds, evaluated left to right.
// Evaluation stops at the first true result or error.
// An empty Or is always false.
func Or[R any](preds ...Predicate[R]) Predicate[R] {
	preds = slices.Clone(preds)
	return func(r R) (bool, error) {
		for _, p := range preds {
			ok, err := p(r)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
}

// Not negates p. Evaluation errors pass through unchanged.
func Not[R any](p Predicate[R]) Predicate[R] {
	return func(r R) (bool, error) {
		ok, err := p(r)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
}

// greaterThan is the lower half of a range: field > bound.
func greaterThan[R, V any](acc *record.Accessor[R, V], bound V) Predicate[R] {
	compare := acc.Compare()
	return func(r R) (bool, error) {
		v, err := acc.Get(r)
		if err != nil {
			return false, err
		}
		return compare(v, bound) > 0, nil
	}
}

// lessThan is the upper half of a range: field < bound.
func lessThan[R, V any](acc *record.Accessor[R, V], bound V) Predicate[R] {
	compare := acc.Compare()
	return func(r R) (bool, error) {
		v, err := acc.Get(r)
		if err != nil {
			return false, err
		}
		return compare(v, bound) < 0, nil
	}
}

// resolve recovers a typed accessor and tags type mismatches with op.
func resolve[V, R any](s *record.Schema[R], field, op string) (*record.Accessor[R, V], error) {
	acc, err := record.Resolve[V](s, field)
	if err != nil {
		var tme *record.TypeMismatchError
		if errors.As(err, &tme) {
			tme.Op = op
		}
		return nil, err
	}
	return acc, nil
}
