package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlan(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0644))
}

func TestLoad_MultipleFiles(t *testing.T) {
	dir := t.TempDir()
	writePlan(t, dir, "people.cue", `package plans

query: adults: {
	record: "person"
	field:  "Dob"
	range: {lower: "1980-12-31", upper: "1995-01-01"}
}
`)
	writePlan(t, dir, "recipes.cue", `package plans

query: eggs: {record: "recipe", field: "Ingredients", contains: "eggs"}
`)

	plans, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "adults", plans[0].Name)
	assert.Equal(t, "eggs", plans[1].Name)
	assert.Contains(t, plans[0].Pos.Filename(), "people.cue")
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope"))
		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, StageNotFound, le.Stage)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		dir := t.TempDir()
		writePlan(t, dir, "one.cue", "package plans\n")
		_, err := Load(filepath.Join(dir, "one.cue"))
		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, StageNotFound, le.Stage)
		assert.Contains(t, le.Message, "not a directory")
	})

	t.Run("no cue files", func(t *testing.T) {
		dir := t.TempDir()
		writePlan(t, dir, "notes.txt", "nothing here")
		_, err := Load(dir)
		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, StageNoFiles, le.Stage)
	})

	t.Run("syntax error", func(t *testing.T) {
		dir := t.TempDir()
		writePlan(t, dir, "bad.cue", "package plans\n\nquery: q: {record: \n")
		_, err := Load(dir)
		var le *LoadError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, StageLoad, le.Stage)
	})

	t.Run("invalid query", func(t *testing.T) {
		dir := t.TempDir()
		writePlan(t, dir, "bad.cue", `package plans

query: q: {record: "person", field: "Name"}
`)
		_, err := Load(dir)
		var ce *CompileError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "query", ce.Field)
		assert.Contains(t, err.Error(), "bad.cue:3:")
	})
}

func TestFindCUEFiles_SkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	writePlan(t, dir, "a.cue", "package plans\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))
	writePlan(t, filepath.Join(dir, "nested"), "b.cue", "package plans\n")

	files, err := FindCUEFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.cue")}, files)
}
