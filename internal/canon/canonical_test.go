package canon

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_Scalars(t *testing.T) {
	testCases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, `null`},
		{"string", "Jane Doe", `"Jane Doe"`},
		{"no html escaping", "<a&b>", `"<a&b>"`},
		{"int", 42, `42`},
		{"int64", int64(-7), `-7`},
		{"uint", uint8(255), `255`},
		{"float", 1.5, `1.5`},
		{"bool", true, `true`},
		{"time in utc", time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC), `"1980-01-01T00:00:00Z"`},
		{"time converted to utc", time.Date(1980, 1, 1, 2, 0, 0, 0, time.FixedZone("X", 2*3600)), `"1980-01-01T00:00:00Z"`},
		{"nil pointer", (*time.Time)(nil), `null`},
		{"nil slice", []string(nil), `[]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Marshal(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestMarshal_Pointer(t *testing.T) {
	ts := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	got, err := Marshal(&ts)
	require.NoError(t, err)
	assert.Equal(t, `"2030-06-01T00:00:00Z"`, string(got))
}

func TestMarshal_ObjectKeyOrder(t *testing.T) {
	got, err := Marshal(map[string]any{
		"Name":        "Fried Rice",
		"Ingredients": []string{"eggs", "rice"},
		"Age":         3,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"Age":3,"Ingredients":["eggs","rice"],"Name":"Fried Rice"}`, string(got))
}

func TestMarshal_NestedArrays(t *testing.T) {
	got, err := Marshal([]any{map[string]any{"a": nil}, []int{1, 2}, [2]bool{true, false}})
	require.NoError(t, err)
	assert.Equal(t, `[{"a":null},[1,2],[true,false]]`, string(got))
}

func TestMarshal_NFC(t *testing.T) {
	// "e" + combining acute accent normalizes to U+00E9
	got, err := Marshal("cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, "\"caf\u00e9\"", string(got))
}

func TestMarshal_LineSeparators(t *testing.T) {
	got, err := Marshal("a\u2028b\u2029c")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\u2029c\"", string(got))

	// A literal backslash followed by the text u2028 must stay escaped
	got, err = Marshal(`x\u2028`)
	require.NoError(t, err)
	assert.Equal(t, `"x\\u2028"`, string(got))
}

func TestMarshal_Errors(t *testing.T) {
	_, err := Marshal(math.NaN())
	require.Error(t, err)

	_, err = Marshal(map[int]string{1: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "map key")

	_, err = Marshal([]any{func() {}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array[0]")

	_, err = Marshal(struct{}{})
	require.Error(t, err)
}

func TestCompareKeys_UTF16Order(t *testing.T) {
	// U+1F600 encodes as surrogates (0xD83D...), which sort before U+FB01
	// in UTF-16 but after it in UTF-8.
	emoji := "\U0001F600"
	ligature := "\uFB01"

	assert.Equal(t, -1, CompareKeys(emoji, ligature))
	assert.Equal(t, 1, CompareKeys(ligature, emoji))
	assert.Equal(t, 0, CompareKeys("a", "a"))
	assert.Equal(t, -1, CompareKeys("a", "ab"))
}
