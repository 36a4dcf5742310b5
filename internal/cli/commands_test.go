package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fieldq/internal/sample"
)

func TestDemo_Golden(t *testing.T) {
	stdout, _, err := execute(t, "demo")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "demo_text", []byte(stdout))
}

func TestDemo_FromStoreMatchesBuiltin(t *testing.T) {
	db := filepath.Join(t.TempDir(), "records.db")

	_, _, err := execute(t, "seed", "--db", db)
	require.NoError(t, err)

	stdout, _, err := execute(t, "demo", "--db", db)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "demo_text", []byte(stdout))
}

func TestDemo_JSON(t *testing.T) {
	stdout, _, err := execute(t, "demo", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Results []struct {
				Name  string `json:"name"`
				Count int    `json:"count"`
			} `json:"results"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Results, 7)
	assert.Equal(t, "recipes-with-eggs", resp.Data.Results[6].Name)
	assert.Equal(t, 2, resp.Data.Results[6].Count)
}

func TestFields_Golden(t *testing.T) {
	stdout, _, err := execute(t, "fields", "person")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "fields_person", []byte(stdout))
}

func TestFields_UnknownRecord(t *testing.T) {
	stdout, _, err := execute(t, "fields", "car")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E101]")
}

func TestQuery_Golden(t *testing.T) {
	testCases := []struct {
		golden string
		args   []string
	}{
		{"query_prefix_json", []string{"query", "person", "--field", "Name", "--prefix", "Jo", "--format", "json"}},
		{"query_project_json", []string{"query", "document", "--field", "IssuedBy", "--project", "--format", "json"}},
	}

	for _, tc := range testCases {
		t.Run(tc.golden, func(t *testing.T) {
			stdout, _, err := execute(t, tc.args...)
			require.NoError(t, err)
			newGoldie(t).Assert(t, tc.golden, []byte(stdout))
		})
	}
}

func TestQuery_Text(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "range on time",
			args: []string{"query", "document", "--field", "IssuedBy", "--range", "1980-12-31,2005-01-01"},
			want: "== query: range(IssuedBy, 1980-12-31T00:00:00Z, 2005-01-01T00:00:00Z) (1)\n" +
				"Title: College Degree, IssuedBy: 2003-08-01 00:00:00\n",
		},
		{
			name: "range on int",
			args: []string{"query", "person", "--field", "Age", "--range", "12,42"},
			want: "== query: range(Age, 12, 42) (1)\n" +
				"Name: Jane Doe, Age: 41, Dob: 1981-01-01 00:00:00\n",
		},
		{
			name: "contains",
			args: []string{"query", "recipe", "--field", "Ingredients", "--contains", "vegetables"},
			want: "== query: contains(Ingredients, \"vegetables\") (2)\n" +
				"Fried Rice: { eggs, rice, oil, vegetables }\n" +
				"sandwich: { bread, ham, vegetables }\n",
		},
		{
			name: "empty prefix matches all",
			args: []string{"query", "recipe", "--field", "Name", "--prefix", ""},
			want: "== query: prefix(Name, \"\") (4)\n" +
				"Fried Rice: { eggs, rice, oil, vegetables }\n" +
				"Omelette: { eggs, butter, oil }\n" +
				"Pho: { pho, chicken, spice }\n" +
				"sandwich: { bread, ham, vegetables }\n",
		},
		{
			name: "project list",
			args: []string{"query", "recipe", "--field", "Ingredients", "--project"},
			want: "== query: project(Ingredients) (4)\n" +
				"{ eggs, rice, oil, vegetables }\n" +
				"{ eggs, butter, oil }\n" +
				"{ pho, chicken, spice }\n" +
				"{ bread, ham, vegetables }\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, _, err := execute(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, stdout)
		})
	}
}

func TestQuery_Errors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		code string
		exit int
	}{
		{"no operation", []string{"query", "person", "--field", "Name"}, ErrCodeUsage, ExitCommandError},
		{"two operations", []string{"query", "person", "--field", "Name", "--prefix", "J", "--project"}, ErrCodeUsage, ExitCommandError},
		{"bad range syntax", []string{"query", "person", "--field", "Age", "--range", "12"}, ErrCodeUsage, ExitCommandError},
		{"unknown record", []string{"query", "car", "--field", "Make", "--project"}, ErrCodeUnknownRecord, ExitCommandError},
		{"unknown field", []string{"query", "person", "--field", "Height", "--project"}, ErrCodeUnknownField, ExitFailure},
		{"field names are case-sensitive", []string{"query", "person", "--field", "name", "--prefix", "J"}, ErrCodeUnknownField, ExitFailure},
		{"prefix on time", []string{"query", "person", "--field", "Dob", "--prefix", "19"}, ErrCodeTypeMismatch, ExitFailure},
		{"contains on text", []string{"query", "person", "--field", "Name", "--contains", "J"}, ErrCodeTypeMismatch, ExitFailure},
		{"range on list", []string{"query", "recipe", "--field", "Ingredients", "--range", "a,b"}, ErrCodeTypeMismatch, ExitFailure},
		{"bad literal", []string{"query", "person", "--field", "Age", "--range", "young,old"}, ErrCodeInvalidPlan, ExitCommandError},
		{"data and db", []string{"query", "person", "--field", "Name", "--project", "--data", "a.yaml", "--db", "b.db"}, ErrCodeUsage, ExitCommandError},
		{"missing dataset", []string{"query", "person", "--field", "Name", "--project", "--data", "/nonexistent/people.yaml"}, ErrCodeNotFound, ExitCommandError},
		{"missing db", []string{"query", "person", "--field", "Name", "--project", "--db", "/nonexistent/records.db"}, ErrCodeNotFound, ExitCommandError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, _, err := execute(t, append(tc.args, "--format", "json")...)
			require.Error(t, err)
			assert.Equal(t, tc.exit, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
		})
	}
}

func TestQuery_NullFieldFails(t *testing.T) {
	expires := sample.Builtin().Documents[0].IssuedBy.AddDate(50, 0, 0)
	ds := &sample.Dataset{Documents: []sample.Document{
		{Title: "Passport", IssuedBy: expires.AddDate(-10, 0, 0), Expires: &expires},
		{Title: "Will", IssuedBy: expires},
	}}
	data, err := ds.Marshal()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "docs.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	stdout, _, err := execute(t, "query", "document", "--field", "Expires", "--range", "2000-01-01,2100-01-01", "--data", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E104]")
	assert.Contains(t, stdout, "document.Expires is null")
}

func TestRun_Golden(t *testing.T) {
	stdout, _, err := execute(t, "run", filepath.Join("testdata", "plans"))
	require.NoError(t, err)
	newGoldie(t).Assert(t, "run_text", []byte(stdout))
}

func TestRun_Only(t *testing.T) {
	stdout, _, err := execute(t, "run", filepath.Join("testdata", "plans"), "--only", "eggs")
	require.NoError(t, err)
	assert.Equal(t, "== eggs: contains(Ingredients, \"eggs\") (2)\n"+
		"Fried Rice: { eggs, rice, oil, vegetables }\n"+
		"Omelette: { eggs, butter, oil }\n", stdout)

	_, _, err = execute(t, "run", filepath.Join("testdata", "plans"), "--only", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRun_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		stdout, _, err := execute(t, "run", "/nonexistent/plans")
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, stdout, "Error [E005]")
	})

	t.Run("empty directory", func(t *testing.T) {
		stdout, _, err := execute(t, "run", t.TempDir())
		require.Error(t, err)
		assert.Contains(t, stdout, "Error [E003]")
	})

	t.Run("invalid plan", func(t *testing.T) {
		dir := t.TempDir()
		src := "package plans\n\nquery: q: {record: \"person\", field: \"Name\", prefix: \"J\", project: true}\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.cue"), []byte(src), 0644))

		stdout, _, err := execute(t, "run", dir)
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, stdout, "Error [E105]")
		assert.Contains(t, stdout, "bad.cue:3:")
	})

	t.Run("query failure", func(t *testing.T) {
		dir := t.TempDir()
		src := "package plans\n\nquery: a: {record: \"person\", field: \"Name\", project: true}\nquery: b: {record: \"person\", field: \"Height\", project: true}\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "plans.cue"), []byte(src), 0644))

		stdout, _, err := execute(t, "run", dir, "--format", "json")
		require.Error(t, err)
		assert.Equal(t, ExitFailure, GetExitCode(err))

		var resp struct {
			Error struct {
				Code    string         `json:"code"`
				Details map[string]any `json:"details"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
		assert.Equal(t, ErrCodeUnknownField, resp.Error.Code)
		assert.EqualValues(t, 1, resp.Error.Details["completed"])
	})
}

func TestSeed(t *testing.T) {
	db := filepath.Join(t.TempDir(), "records.db")

	stdout, _, err := execute(t, "seed", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "Seeded "+db+": 3 people, 3 documents, 4 recipes\n", stdout)
}

func TestSeed_FromDataset(t *testing.T) {
	dir := t.TempDir()
	ds := &sample.Dataset{People: sample.Builtin().People[:1]}
	data, err := ds.Marshal()
	require.NoError(t, err)
	path := filepath.Join(dir, "people.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))
	db := filepath.Join(dir, "records.db")

	stdout, _, err := execute(t, "seed", "--db", db, "--data", path, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.EqualValues(t, 1, resp.Data["people"])
	assert.EqualValues(t, 0, resp.Data["recipes"])

	stdout, _, err = execute(t, "query", "person", "--field", "Name", "--project", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "== query: project(Name) (1)\nJohn Doe\n", stdout)
}

func TestSeed_RequiresDB(t *testing.T) {
	_, _, err := execute(t, "seed")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
