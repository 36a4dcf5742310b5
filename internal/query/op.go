package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/roach88/fieldq/internal/record"
)

// Op is a query operation selected at runtime.
//
// This is a sealed interface - only types in this package implement it.
// Filter operations (RangeOp, PrefixOp, MembershipOp, AndOp) compile to a
// Predicate with CompileFilter; ProjectOp compiles to a Projection with
// CompileProjection.
//
// Literal values must already have the field's declared Go type. Supported
// literal types are string, int, int64, float64, bool and time.Time.
type Op interface {
	opNode() // Marker method - seals interface to this package
}

// RangeOp selects records with Lower < Field < Upper.
type RangeOp struct {
	Field string
	Lower any
	Upper any
}

func (RangeOp) opNode() {}

// PrefixOp selects records whose text Field starts with Prefix.
type PrefixOp struct {
	Field  string
	Prefix string
}

func (PrefixOp) opNode() {}

// MembershipOp selects records whose collection Field contains Value.
type MembershipOp struct {
	Field string
	Value any
}

func (MembershipOp) opNode() {}

// AndOp selects records matching every operation in Ops.
// An empty AndOp matches everything.
type AndOp struct {
	Ops []Op
}

func (AndOp) opNode() {}

// ProjectOp extracts Field from each record.
type ProjectOp struct {
	Field string
}

func (ProjectOp) opNode() {}

// CompileFilter builds a predicate for a filter operation.
//
// Dispatches on the literal types to the typed compilers (Range, Prefix,
// Contains), so every check they perform applies here too. All errors are
// returned before any record is evaluated.
func CompileFilter[R any](s *record.Schema[R], op Op) (Predicate[R], error) {
	if op == nil {
		return nil, fmt.Errorf("cannot compile nil operation")
	}

	switch o := op.(type) {
	case RangeOp:
		return compileRange(s, o)
	case *RangeOp:
		return compileRange(s, *o)
	case PrefixOp:
		return Prefix(s, o.Field, o.Prefix)
	case *PrefixOp:
		return Prefix(s, o.Field, o.Prefix)
	case MembershipOp:
		return compileMembership(s, o)
	case *MembershipOp:
		return compileMembership(s, *o)
	case AndOp:
		return compileAnd(s, o)
	case *AndOp:
		return compileAnd(s, *o)
	case ProjectOp, *ProjectOp:
		return nil, fmt.Errorf("projection cannot be used as a filter")
	default:
		return nil, fmt.Errorf("unsupported operation type: %T", op)
	}
}

// CompileProjection builds a projection for a ProjectOp.
func CompileProjection[R any](s *record.Schema[R], op Op) (Projection[R, any], error) {
	switch o := op.(type) {
	case ProjectOp:
		return ProjectAny(s, o.Field)
	case *ProjectOp:
		return ProjectAny(s, o.Field)
	case nil:
		return nil, fmt.Errorf("cannot compile nil operation")
	default:
		return nil, fmt.Errorf("%T is not a projection", op)
	}
}

func compileRange[R any](s *record.Schema[R], o RangeOp) (Predicate[R], error) {
	switch lower := o.Lower.(type) {
	case string:
		return rangeOf(s, o, lower)
	case int:
		return rangeOf(s, o, lower)
	case int64:
		return rangeOf(s, o, lower)
	case float64:
		return rangeOf(s, o, lower)
	case time.Time:
		return rangeOf(s, o, lower)
	default:
		return nil, literalMismatch(s, o.Field, OpRange, fmt.Sprintf("%T", o.Lower))
	}
}

// rangeOf requires the upper bound to have the same type as the lower one.
func rangeOf[R, V any](s *record.Schema[R], o RangeOp, lower V) (Predicate[R], error) {
	upper, ok := o.Upper.(V)
	if !ok {
		return nil, literalMismatch(s, o.Field, OpRange,
			fmt.Sprintf("bounds of one type, got %T and %T", o.Lower, o.Upper))
	}
	return Range(s, o.Field, lower, upper)
}

func compileMembership[R any](s *record.Schema[R], o MembershipOp) (Predicate[R], error) {
	switch v := o.Value.(type) {
	case string:
		return Contains(s, o.Field, v)
	case int:
		return Contains(s, o.Field, v)
	case int64:
		return Contains(s, o.Field, v)
	case float64:
		return Contains(s, o.Field, v)
	case bool:
		return Contains(s, o.Field, v)
	case time.Time:
		return Contains(s, o.Field, v)
	default:
		return nil, literalMismatch(s, o.Field, OpMembership, fmt.Sprintf("%T", o.Value))
	}
}

func compileAnd[R any](s *record.Schema[R], o AndOp) (Predicate[R], error) {
	preds := make([]Predicate[R], 0, len(o.Ops))
	for i, sub := range o.Ops {
		p, err := CompileFilter(s, sub)
		if err != nil {
			return nil, fmt.Errorf("and[%d]: %w", i, err)
		}
		preds = append(preds, p)
	}
	return And(preds...), nil
}

// literalMismatch reports a literal the operation cannot use. Unknown
// fields are still reported as such.
func literalMismatch[R any](s *record.Schema[R], field, op, want string) error {
	f, err := s.Lookup(field)
	if err != nil {
		return err
	}
	return &record.TypeMismatchError{
		Record: s.Name(),
		Field:  field,
		Op:     op,
		Want:   want,
		Got:    record.TypeName(f.Type()),
	}
}

// Describe renders op for logs and diagnostics.
func Describe(op Op) string {
	switch o := op.(type) {
	case RangeOp:
		return fmt.Sprintf("range(%s, %s, %s)", o.Field, formatLiteral(o.Lower), formatLiteral(o.Upper))
	case *RangeOp:
		return Describe(*o)
	case PrefixOp:
		return fmt.Sprintf("prefix(%s, %q)", o.Field, o.Prefix)
	case *PrefixOp:
		return Describe(*o)
	case MembershipOp:
		return fmt.Sprintf("contains(%s, %s)", o.Field, formatLiteral(o.Value))
	case *MembershipOp:
		return Describe(*o)
	case AndOp:
		parts := make([]string, len(o.Ops))
		for i, sub := range o.Ops {
			parts[i] = Describe(sub)
		}
		return "and(" + strings.Join(parts, ", ") + ")"
	case *AndOp:
		return Describe(*o)
	case ProjectOp:
		return fmt.Sprintf("project(%s)", o.Field)
	case *ProjectOp:
		return Describe(*o)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("<%T>", op)
	}
}

func formatLiteral(v any) string {
	switch val := v.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}
