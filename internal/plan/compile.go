package plan

import (
	"fmt"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

var (
	queryKeys = []string{"record", "field", "range", "prefix", "contains", "project"}
	rangeKeys = []string{"lower", "upper"}
	opKeys    = []Kind{KindRange, KindPrefix, KindContains, KindProject}
)

// CompileSource compiles plan source text. filename is used in positions.
func CompileSource(filename, src string) ([]Plan, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src, cue.Filename(filename))
	return CompileAll(v)
}

// CompileAll compiles every query under the top-level "query" struct.
// Plans are returned sorted by name.
func CompileAll(v cue.Value) ([]Plan, error) {
	// Validate reports conflicts anywhere below v; Err only covers v itself
	if err := v.Validate(); err != nil {
		return nil, formatCUEError(err)
	}

	queries := v.LookupPath(cue.ParsePath("query"))
	if !queries.Exists() {
		return nil, &CompileError{Field: "query", Message: "no queries defined", Pos: v.Pos()}
	}

	iter, err := queries.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var plans []Plan
	for iter.Next() {
		p, err := Compile(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	if len(plans) == 0 {
		return nil, &CompileError{Field: "query", Message: "no queries defined", Pos: queries.Pos()}
	}

	slices.SortFunc(plans, func(a, b Plan) int { return strings.Compare(a.Name, b.Name) })
	return plans, nil
}

// Compile parses one query struct into a Plan called name.
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`query: eggs: {record: "recipe", field: "Ingredients", contains: "eggs"}`)
//	p, err := Compile("eggs", v.LookupPath(cue.ParsePath("query.eggs")))
func Compile(name string, v cue.Value) (*Plan, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if err := checkKeys(v, "query."+name, queryKeys); err != nil {
		return nil, err
	}

	p := &Plan{Name: name, Pos: v.Pos()}

	var err error
	if p.Record, err = requiredString(v, "record"); err != nil {
		return nil, err
	}
	if p.Field, err = requiredString(v, "field"); err != nil {
		return nil, err
	}

	var present []Kind
	for _, k := range opKeys {
		if v.LookupPath(cue.MakePath(cue.Str(string(k)))).Exists() {
			present = append(present, k)
		}
	}
	if len(present) != 1 {
		found := "none"
		if len(present) > 0 {
			found = joinKinds(present)
		}
		return nil, &CompileError{
			Field:   "query",
			Message: fmt.Sprintf("exactly one of range, prefix, contains, project is required (found %s)", found),
			Pos:     v.Pos(),
		}
	}
	p.Kind = present[0]

	opVal := v.LookupPath(cue.MakePath(cue.Str(string(p.Kind))))
	switch p.Kind {
	case KindRange:
		if err := checkKeys(opVal, "range", rangeKeys); err != nil {
			return nil, err
		}
		if p.Lower, err = requiredLiteral(opVal, "range", "lower"); err != nil {
			return nil, err
		}
		if p.Upper, err = requiredLiteral(opVal, "range", "upper"); err != nil {
			return nil, err
		}
	case KindPrefix:
		s, err := opVal.String()
		if err != nil {
			return nil, &CompileError{Field: "prefix", Message: "prefix must be a string", Pos: opVal.Pos()}
		}
		p.Value = s
	case KindContains:
		if p.Value, err = literal(opVal, "contains"); err != nil {
			return nil, err
		}
	case KindProject:
		b, err := opVal.Bool()
		if err != nil || !b {
			return nil, &CompileError{Field: "project", Message: "project must be true", Pos: opVal.Pos()}
		}
	}

	return p, nil
}

func requiredString(v cue.Value, key string) (string, error) {
	fv := v.LookupPath(cue.MakePath(cue.Str(key)))
	if !fv.Exists() {
		return "", &CompileError{Field: key, Message: key + " is required", Pos: v.Pos()}
	}
	if err := fv.Err(); err != nil {
		return "", formatCUEError(err)
	}
	s, err := fv.String()
	if err != nil || s == "" {
		return "", &CompileError{Field: key, Message: key + " must be a non-empty string", Pos: fv.Pos()}
	}
	return s, nil
}

func requiredLiteral(v cue.Value, parent, key string) (any, error) {
	fv := v.LookupPath(cue.MakePath(cue.Str(key)))
	if !fv.Exists() {
		return nil, &CompileError{Field: parent + "." + key, Message: key + " is required", Pos: v.Pos()}
	}
	return literal(fv, parent+"."+key)
}

// literal decodes a concrete scalar. Conversion to the field type happens
// later, in Plan.Op.
func literal(v cue.Value, field string) (any, error) {
	if !v.IsConcrete() {
		return nil, &CompileError{Field: field, Message: "literal must be concrete", Pos: v.Pos()}
	}
	switch v.Kind() {
	case cue.StringKind:
		return v.String()
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, &CompileError{Field: field, Message: err.Error(), Pos: v.Pos()}
		}
		return n, nil
	case cue.FloatKind:
		return v.Float64()
	case cue.BoolKind:
		return v.Bool()
	default:
		return nil, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("literal must be a string, int, float or bool, got %v", v.Kind()),
			Pos:     v.Pos(),
		}
	}
}

func checkKeys(v cue.Value, path string, allowed []string) error {
	iter, err := v.Fields()
	if err != nil {
		return &CompileError{Field: path, Message: "must be a struct", Pos: v.Pos()}
	}
	for iter.Next() {
		if !slices.Contains(allowed, iter.Label()) {
			return &CompileError{
				Field:   path,
				Message: fmt.Sprintf("unknown key %q (allowed: %s)", iter.Label(), strings.Join(allowed, ", ")),
				Pos:     iter.Value().Pos(),
			}
		}
	}
	return nil
}

func joinKinds(kinds []Kind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
