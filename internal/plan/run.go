package plan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/fieldq/internal/catalog"
	"github.com/roach88/fieldq/internal/query"
)

// Result is the output of one executed plan.
// Filters fill Rows; projections fill Values.
type Result struct {
	Name   string
	Record string
	Op     string
	Rows   []catalog.Row
	Values []any
}

// Count is the number of rows or values produced.
func (r *Result) Count() int {
	if r.Rows != nil {
		return len(r.Rows)
	}
	return len(r.Values)
}

// Projection reports whether the result holds projected values.
func (r *Result) Projection() bool { return r.Values != nil }

// Runner executes plans against a catalog.
type Runner struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(c *catalog.Catalog, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{catalog: c, logger: logger}
}

// Execute runs one plan to completion.
//
// Errors carry the plan name. Binding errors (unknown record or field, bad
// literal, type mismatch) are returned before any record is read;
// evaluation errors stop the pass at the failing record.
func (r *Runner) Execute(ctx context.Context, p Plan) (*Result, error) {
	t, err := r.catalog.Table(p.Record)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", p.Name, err)
	}

	op, err := p.Op(t)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", p.Name, err)
	}

	res := &Result{Name: p.Name, Record: p.Record, Op: query.Describe(op)}
	r.logger.Debug("running query", "name", p.Name, "record", p.Record, "op", res.Op)

	if p.Kind == KindProject {
		seq, err := t.Project(ctx, op)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", p.Name, err)
		}
		values, err := query.Collect(seq)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", p.Name, err)
		}
		res.Values = nonNil(values)
	} else {
		seq, err := t.Filter(ctx, op)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", p.Name, err)
		}
		rows, err := query.Collect(seq)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", p.Name, err)
		}
		res.Rows = nonNil(rows)
	}

	r.logger.Debug("query finished", "name", p.Name, "count", res.Count())
	return res, nil
}

// Run executes plans in order and stops at the first failure.
// Results of the plans that completed are returned along with the error.
func (r *Runner) Run(ctx context.Context, plans []Plan) ([]*Result, error) {
	results := make([]*Result, 0, len(plans))
	for _, p := range plans {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := r.Execute(ctx, p)
		if err != nil {
			r.logger.Debug("query failed", "name", p.Name, "error", err)
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
