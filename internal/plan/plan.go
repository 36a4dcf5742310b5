package plan

import (
	"fmt"

	"cuelang.org/go/cue/token"

	"github.com/roach88/fieldq/internal/catalog"
	"github.com/roach88/fieldq/internal/query"
)

// Kind selects the operation a plan performs.
type Kind string

const (
	KindRange    Kind = "range"
	KindPrefix   Kind = "prefix"
	KindContains Kind = "contains"
	KindProject  Kind = "project"
)

// Plan is one named query over a record type.
//
// Lower and Upper are set for KindRange, Value for KindPrefix and
// KindContains. Literals hold string, int64, float64 or bool until Op
// converts them.
type Plan struct {
	Name   string
	Record string
	Field  string
	Kind   Kind
	Lower  any
	Upper  any
	Value  any
	Pos    token.Pos
}

// Op binds p to t and returns the query operation it describes.
//
// Literal conversion failures are returned as *CompileError at p.Pos.
// Unknown fields are returned unchanged so callers can tell them apart.
func (p Plan) Op(t catalog.Table) (query.Op, error) {
	if p.Kind == KindProject {
		return query.ProjectOp{Field: p.Field}, nil
	}

	f, err := t.Field(p.Field)
	if err != nil {
		return nil, err
	}

	literal := func(key string, raw any) (any, error) {
		v, err := catalog.ParseLiteral(f, raw)
		if err != nil {
			return nil, &CompileError{Field: key, Message: err.Error(), Pos: p.Pos}
		}
		return v, nil
	}

	switch p.Kind {
	case KindRange:
		lower, err := literal("range.lower", p.Lower)
		if err != nil {
			return nil, err
		}
		upper, err := literal("range.upper", p.Upper)
		if err != nil {
			return nil, err
		}
		return query.RangeOp{Field: p.Field, Lower: lower, Upper: upper}, nil
	case KindPrefix:
		prefix, ok := p.Value.(string)
		if !ok {
			return nil, &CompileError{Field: "prefix", Message: fmt.Sprintf("prefix must be a string, got %T", p.Value), Pos: p.Pos}
		}
		return query.PrefixOp{Field: p.Field, Prefix: prefix}, nil
	case KindContains:
		value, err := literal("contains", p.Value)
		if err != nil {
			return nil, err
		}
		return query.MembershipOp{Field: p.Field, Value: value}, nil
	default:
		return nil, &CompileError{Field: "query", Message: fmt.Sprintf("unknown plan kind %q", p.Kind), Pos: p.Pos}
	}
}

// CompileError represents a plan error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
