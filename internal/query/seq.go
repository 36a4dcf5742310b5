package query

import (
	"iter"

	"github.com/roach88/fieldq/internal/record"
)

// Seq is a lazy sequence of values that may fail part way.
//
// Every range over a Seq is a fresh pass: Filter and Map re-run against
// their source from the start. A pass ends after the first non-nil error,
// which is yielded with the zero value of T.
type Seq[T any] = iter.Seq2[T, error]

// From returns a restartable sequence over items.
// The slice is read, not copied; callers must not modify it while iterating.
func From[T any](items []T) Seq[T] {
	return func(yield func(T, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}

// FromSeq adapts a plain iterator. The result restarts only if s does.
func FromSeq[T any](s iter.Seq[T]) Seq[T] {
	return func(yield func(T, error) bool) {
		for item := range s {
			if !yield(item, nil) {
				return
			}
		}
	}
}

// Filter yields the elements of src for which pred is true, in order.
//
// pred runs once per element per pass, only as elements are pulled.
// The first evaluation error ends the pass.
func Filter[R any](src Seq[R], pred Predicate[R]) Seq[R] {
	return func(yield func(R, error) bool) {
		for r, err := range src {
			if err != nil {
				var zero R
				yield(zero, err)
				return
			}
			ok, err := pred(r)
			if err != nil {
				var zero R
				yield(zero, err)
				return
			}
			if ok && !yield(r, nil) {
				return
			}
		}
	}
}

// Map yields proj(element) for each element of src, in order.
// Errors end the pass exactly as in Filter.
func Map[R, V any](src Seq[R], proj Projection[R, V]) Seq[V] {
	return func(yield func(V, error) bool) {
		var zero V
		for r, err := range src {
			if err != nil {
				yield(zero, err)
				return
			}
			v, err := proj(r)
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Take yields at most n elements of src and stops pulling after that.
func Take[T any](src Seq[T], n int) Seq[T] {
	return func(yield func(T, error) bool) {
		if n <= 0 {
			return
		}
		taken := 0
		for v, err := range src {
			if !yield(v, err) || err != nil {
				return
			}
			taken++
			if taken >= n {
				return
			}
		}
	}
}

// Collect drains seq into a slice.
// Returns the first error; elements collected before it are discarded.
func Collect[T any](seq Seq[T]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// FilterRange compiles a Range predicate and applies it to src.
// Compilation errors are returned here, never from iteration.
func FilterRange[R, V any](src Seq[R], s *record.Schema[R], field string, lower, upper V) (Seq[R], error) {
	pred, err := Range(s, field, lower, upper)
	if err != nil {
		return nil, err
	}
	return Filter(src, pred), nil
}

// FilterPrefix compiles a Prefix predicate and applies it to src.
func FilterPrefix[R any](src Seq[R], s *record.Schema[R], field, prefix string) (Seq[R], error) {
	pred, err := Prefix(s, field, prefix)
	if err != nil {
		return nil, err
	}
	return Filter(src, pred), nil
}

// FilterContains compiles a Contains predicate and applies it to src.
func FilterContains[R any, E comparable](src Seq[R], s *record.Schema[R], field string, value E) (Seq[R], error) {
	pred, err := Contains(s, field, value)
	if err != nil {
		return nil, err
	}
	return Filter(src, pred), nil
}

// SelectField compiles a Project projection and applies it to src.
//
// Example:
//
//	names, err := query.SelectField[string](query.From(people), sample.PersonSchema, "Name")
func SelectField[V, R any](src Seq[R], s *record.Schema[R], field string) (Seq[V], error) {
	proj, err := Project[V](s, field)
	if err != nil {
		return nil, err
	}
	return Map(src, proj), nil
}
