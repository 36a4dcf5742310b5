package catalog

import (
	"context"
	"fmt"
	"reflect"

	"github.com/roach88/fieldq/internal/query"
	"github.com/roach88/fieldq/internal/record"
)

// Table is a record type addressed by name.
type Table interface {
	// Name is the schema name, e.g. "person".
	Name() string

	// Fields describes the declared fields in declaration order.
	Fields() []FieldInfo

	// Field describes one field. Returns *record.UnknownFieldError if absent.
	Field(name string) (FieldInfo, error)

	// Filter compiles op and returns the matching records as Rows.
	// Construction errors are returned here; evaluation errors end a pass.
	Filter(ctx context.Context, op query.Op) (query.Seq[Row], error)

	// Project compiles a projection op and returns one value per record.
	Project(ctx context.Context, op query.Op) (query.Seq[any], error)
}

// FieldInfo describes a declared field without its record type.
type FieldInfo struct {
	Name     string
	Kind     record.Kind
	Type     reflect.Type
	Elem     reflect.Type
	Ordered  bool
	Nullable bool
}

// TypeName is the Go name of the declared value type.
func (f FieldInfo) TypeName() string { return record.TypeName(f.Type) }

// Row is one record rendered for output.
type Row struct {
	// Text is the record's String form.
	Text string

	// Fields maps every declared field to its value. Null fields map to nil.
	Fields map[string]any
}

// Source returns the records of one type. Each call to the returned
// sequence is a fresh pass.
type Source[R any] func(ctx context.Context) query.Seq[R]

type table[R fmt.Stringer] struct {
	schema *record.Schema[R]
	source Source[R]
}

// NewTable adapts a schema and a source into a Table.
func NewTable[R fmt.Stringer](s *record.Schema[R], src Source[R]) Table {
	return &table[R]{schema: s, source: src}
}

func (t *table[R]) Name() string { return t.schema.Name() }

func (t *table[R]) Fields() []FieldInfo {
	fields := t.schema.Fields()
	infos := make([]FieldInfo, len(fields))
	for i, f := range fields {
		infos[i] = describe(f)
	}
	return infos
}

func (t *table[R]) Field(name string) (FieldInfo, error) {
	f, err := t.schema.Lookup(name)
	if err != nil {
		return FieldInfo{}, err
	}
	return describe(f), nil
}

func (t *table[R]) Filter(ctx context.Context, op query.Op) (query.Seq[Row], error) {
	pred, err := query.CompileFilter(t.schema, op)
	if err != nil {
		return nil, err
	}
	return query.Map(query.Filter(t.source(ctx), pred), t.row), nil
}

func (t *table[R]) Project(ctx context.Context, op query.Op) (query.Seq[any], error) {
	proj, err := query.CompileProjection(t.schema, op)
	if err != nil {
		return nil, err
	}
	return query.Map(t.source(ctx), proj), nil
}

func (t *table[R]) row(r R) (Row, error) {
	fields := t.schema.Fields()
	row := Row{Text: r.String(), Fields: make(map[string]any, len(fields))}
	for _, f := range fields {
		v, err := f.Value(r)
		if record.IsNullField(err) {
			row.Fields[f.Name()] = nil
			continue
		}
		if err != nil {
			return Row{}, err
		}
		row.Fields[f.Name()] = v
	}
	return row, nil
}

func describe[R any](f record.Field[R]) FieldInfo {
	return FieldInfo{
		Name:     f.Name(),
		Kind:     f.Kind(),
		Type:     f.Type(),
		Elem:     f.Elem(),
		Ordered:  f.Ordered(),
		Nullable: f.Nullable(),
	}
}
