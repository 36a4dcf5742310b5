package plan

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileBasic(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		query: adults: {
			record: "person"
			field:  "Dob"
			range: {lower: "1980-12-31", upper: "1995-01-01"}
		}
	`)
	require.NoError(t, v.Err())

	p, err := Compile("adults", v.LookupPath(cue.ParsePath("query.adults")))
	require.NoError(t, err)

	assert.Equal(t, "adults", p.Name)
	assert.Equal(t, "person", p.Record)
	assert.Equal(t, "Dob", p.Field)
	assert.Equal(t, KindRange, p.Kind)
	assert.Equal(t, "1980-12-31", p.Lower)
	assert.Equal(t, "1995-01-01", p.Upper)
	assert.True(t, p.Pos.IsValid())
}

func TestCompileAll_SortedByName(t *testing.T) {
	plans, err := CompileSource("plans.cue", `
		query: names: {record: "person", field: "Name", project: true}
		query: eggs: {record: "recipe", field: "Ingredients", contains: "eggs"}
		query: "age-band": {record: "person", field: "Age", range: {lower: 18, upper: 65}}
		query: jo: {record: "person", field: "Name", prefix: "Jo"}
	`)
	require.NoError(t, err)
	require.Len(t, plans, 4)

	assert.Equal(t, "age-band", plans[0].Name)
	assert.Equal(t, int64(18), plans[0].Lower)
	assert.Equal(t, int64(65), plans[0].Upper)

	assert.Equal(t, "eggs", plans[1].Name)
	assert.Equal(t, KindContains, plans[1].Kind)
	assert.Equal(t, "eggs", plans[1].Value)

	assert.Equal(t, "jo", plans[2].Name)
	assert.Equal(t, KindPrefix, plans[2].Kind)

	assert.Equal(t, "names", plans[3].Name)
	assert.Equal(t, KindProject, plans[3].Kind)
}

func TestCompileAll_Literals(t *testing.T) {
	plans, err := CompileSource("plans.cue", `
		query: a: {record: "r", field: "F", contains: 1.5}
		query: b: {record: "r", field: "F", contains: true}
	`)
	require.NoError(t, err)
	assert.Equal(t, 1.5, plans[0].Value)
	assert.Equal(t, true, plans[1].Value)
}

func TestCompile_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		field   string
		message string
	}{
		{
			name:    "no queries",
			src:     `other: 1`,
			field:   "query",
			message: "no queries defined",
		},
		{
			name:    "empty query struct",
			src:     `query: {}`,
			field:   "query",
			message: "no queries defined",
		},
		{
			name:    "missing record",
			src:     `query: q: {field: "Name", prefix: "J"}`,
			field:   "record",
			message: "record is required",
		},
		{
			name:    "empty field",
			src:     `query: q: {record: "person", field: "", prefix: "J"}`,
			field:   "field",
			message: "non-empty string",
		},
		{
			name:    "no operation",
			src:     `query: q: {record: "person", field: "Name"}`,
			field:   "query",
			message: "found none",
		},
		{
			name:    "two operations",
			src:     `query: q: {record: "person", field: "Name", prefix: "J", project: true}`,
			field:   "query",
			message: "found prefix, project",
		},
		{
			name:    "missing upper",
			src:     `query: q: {record: "person", field: "Age", range: {lower: 1}}`,
			field:   "range.upper",
			message: "upper is required",
		},
		{
			name:    "unknown range key",
			src:     `query: q: {record: "person", field: "Age", range: {lower: 1, upper: 2, step: 1}}`,
			field:   "range",
			message: `unknown key "step"`,
		},
		{
			name:    "unknown query key",
			src:     `query: q: {record: "person", field: "Name", prefix: "J", limit: 3}`,
			field:   "query.q",
			message: `unknown key "limit"`,
		},
		{
			name:    "prefix not a string",
			src:     `query: q: {record: "person", field: "Name", prefix: 3}`,
			field:   "prefix",
			message: "prefix must be a string",
		},
		{
			name:    "project false",
			src:     `query: q: {record: "person", field: "Name", project: false}`,
			field:   "project",
			message: "project must be true",
		},
		{
			name:    "structured literal",
			src:     `query: q: {record: "recipe", field: "Ingredients", contains: ["eggs"]}`,
			field:   "contains",
			message: "literal must be a string, int, float or bool",
		},
		{
			name:    "incomplete literal",
			src:     `query: q: {record: "person", field: "Name", contains: string}`,
			field:   "contains",
			message: "literal must be concrete",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CompileSource("bad.cue", tc.src)
			require.Error(t, err)

			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tc.field, ce.Field)
			assert.Contains(t, ce.Message, tc.message)
		})
	}
}

func TestCompile_CUEErrorHasPosition(t *testing.T) {
	_, err := CompileSource("conflict.cue", `
		query: q: record: "person"
		query: q: record: "recipe"
	`)
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "cue", ce.Field)
	assert.True(t, ce.Pos.IsValid())
	assert.Contains(t, err.Error(), "conflict.cue:")
}

func TestCompileError_Format(t *testing.T) {
	err := &CompileError{Field: "prefix", Message: "prefix must be a string"}
	assert.Equal(t, "prefix: prefix must be a string", err.Error())
}
