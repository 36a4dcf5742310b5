package record

import (
	"cmp"
	"reflect"
	"time"
)

// Field is the type-erased view of a declared field, as stored in a Schema.
//
// This is a sealed interface: only *Accessor implements it. Typed access goes
// through Resolve, which recovers the *Accessor[R, V] behind a Field.
type Field[R any] interface {
	// Name is the exact, case-sensitive field name.
	Name() string

	// Kind classifies the declared value type.
	Kind() Kind

	// Type is the declared value type.
	Type() reflect.Type

	// Elem is the element type of a KindList field, nil otherwise.
	Elem() reflect.Type

	// Ordered reports whether the field's values have a total order.
	Ordered() bool

	// Nullable reports whether the field may be absent on a record.
	Nullable() bool

	// Value reads the field from r as an untyped value.
	// Returns *NullFieldError if the field is absent on r.
	Value(r R) (any, error)

	bind(record string) Field[R] // Sealed - returns a copy owned by a schema
}

// Accessor reads one declared field of type V from records of type R.
//
// Accessors are immutable. The With* methods return modified copies, so an
// accessor can be shared between schemas and goroutines.
type Accessor[R, V any] struct {
	record  string
	name    string
	kind    Kind
	elem    reflect.Type
	get     func(R) V
	present func(R) bool
	compare func(a, b V) int
}

// Text declares a string field. Text fields are ordered by byte-wise comparison.
func Text[R any](name string, get func(R) string) *Accessor[R, string] {
	return &Accessor[R, string]{name: name, kind: KindText, get: get, compare: cmp.Compare[string]}
}

// Number declares an ordered field compared with cmp.Compare.
// A V whose underlying type is string is classified as KindText.
func Number[R any, V cmp.Ordered](name string, get func(R) V) *Accessor[R, V] {
	kind := KindNumber
	if reflect.TypeFor[V]().Kind() == reflect.String {
		kind = KindText
	}
	return &Accessor[R, V]{name: name, kind: kind, get: get, compare: cmp.Compare[V]}
}

// Time declares a time.Time field ordered by instant.
func Time[R any](name string, get func(R) time.Time) *Accessor[R, time.Time] {
	return &Accessor[R, time.Time]{name: name, kind: KindTime, get: get, compare: time.Time.Compare}
}

// Bool declares an unordered boolean field.
func Bool[R any](name string, get func(R) bool) *Accessor[R, bool] {
	return &Accessor[R, bool]{name: name, kind: KindBool, get: get}
}

// List declares a collection field whose elements are compared with ==.
// Lists are not ordered.
func List[R any, E comparable](name string, get func(R) []E) *Accessor[R, []E] {
	return &Accessor[R, []E]{name: name, kind: KindList, elem: reflect.TypeFor[E](), get: get}
}

// Value declares a field of any other type. Use WithOrder to give it a total
// order for range queries.
func Value[R, V any](name string, get func(R) V) *Accessor[R, V] {
	return &Accessor[R, V]{name: name, kind: KindOther, get: get}
}

// WithPresence returns a copy of a whose reads fail with *NullFieldError when
// present reports false. get is not called for absent records.
func (a *Accessor[R, V]) WithPresence(present func(R) bool) *Accessor[R, V] {
	c := *a
	c.present = present
	return &c
}

// WithOrder returns a copy of a ordered by compare.
func (a *Accessor[R, V]) WithOrder(compare func(x, y V) int) *Accessor[R, V] {
	c := *a
	c.compare = compare
	return &c
}

// Name implements Field.
func (a *Accessor[R, V]) Name() string { return a.name }

// Kind implements Field.
func (a *Accessor[R, V]) Kind() Kind { return a.kind }

// Type implements Field.
func (a *Accessor[R, V]) Type() reflect.Type { return reflect.TypeFor[V]() }

// Elem implements Field.
func (a *Accessor[R, V]) Elem() reflect.Type { return a.elem }

// Ordered implements Field.
func (a *Accessor[R, V]) Ordered() bool { return a.compare != nil }

// Nullable implements Field.
func (a *Accessor[R, V]) Nullable() bool { return a.present != nil }

// Record is the name of the schema that owns a, or "" if a is unbound.
func (a *Accessor[R, V]) Record() string { return a.record }

// Compare returns the field's order, or nil if the field is unordered.
func (a *Accessor[R, V]) Compare() func(x, y V) int { return a.compare }

// Get reads the field from r.
func (a *Accessor[R, V]) Get(r R) (V, error) {
	if a.present != nil && !a.present(r) {
		var zero V
		return zero, &NullFieldError{Record: a.record, Field: a.name}
	}
	return a.get(r), nil
}

// Value implements Field.
func (a *Accessor[R, V]) Value(r R) (any, error) {
	v, err := a.Get(r)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (a *Accessor[R, V]) bind(record string) Field[R] {
	c := *a
	c.record = record
	return &c
}
