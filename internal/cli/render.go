package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/roach88/fieldq/internal/plan"
	"github.com/roach88/fieldq/internal/sample"
)

// resultData converts a result into the structured payload:
//
//	{"name": ..., "record": ..., "op": ..., "count": N, "rows": [{field: value}]}
//
// Projections carry "values" instead of "rows".
func resultData(res *plan.Result) map[string]any {
	m := map[string]any{
		"name":   res.Name,
		"record": res.Record,
		"op":     res.Op,
		"count":  res.Count(),
	}
	if res.Projection() {
		m["values"] = res.Values
		return m
	}
	rows := make([]any, len(res.Rows))
	for i, r := range res.Rows {
		rows[i] = r.Fields
	}
	m["rows"] = rows
	return m
}

func resultsData(results []*plan.Result) map[string]any {
	out := make([]any, len(results))
	for i, res := range results {
		out[i] = resultData(res)
	}
	return map[string]any{"results": out}
}

// writeResult renders a result as a header line followed by one line per
// record or value.
func writeResult(w io.Writer, res *plan.Result) error {
	if _, err := fmt.Fprintf(w, "== %s: %s (%d)\n", res.Name, res.Op, res.Count()); err != nil {
		return err
	}
	for _, r := range res.Rows {
		if _, err := fmt.Fprintln(w, r.Text); err != nil {
			return err
		}
	}
	for _, v := range res.Values {
		if _, err := fmt.Fprintln(w, formatValue(v)); err != nil {
			return err
		}
	}
	return nil
}

func writeResults(w io.Writer, results []*plan.Result) error {
	for i, res := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeResult(w, res); err != nil {
			return err
		}
	}
	return nil
}

// formatValue renders a projected value the way the record String methods
// render fields.
func formatValue(v any) string {
	switch val := v.(type) {
	case time.Time:
		return val.Format(sample.DisplayTime)
	case []string:
		return "{ " + strings.Join(val, ", ") + " }"
	case nil:
		return "<null>"
	default:
		return fmt.Sprint(val)
	}
}
