package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountingSource_CountsPassesAndPulls(t *testing.T) {
	src := NewCountingSource("a", "b", "c")

	var got []string
	for v, err := range src.Seq() {
		assert.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 1, src.Passes())
	assert.Equal(t, 3, src.Pulls())

	for range src.Seq() {
		break
	}
	assert.Equal(t, 2, src.Passes())
	assert.Equal(t, 4, src.Pulls())

	src.Reset()
	assert.Equal(t, 0, src.Passes())
	assert.Equal(t, 0, src.Pulls())
}

func TestCountingSource_NotStartedUntilRanged(t *testing.T) {
	src := NewCountingSource(1, 2)
	_ = src.Seq()
	assert.Equal(t, 0, src.Passes())
}

func TestFailingSource(t *testing.T) {
	boom := errors.New("boom")

	var vals []int
	var gotErr error
	for v, err := range FailingSource(boom, 1, 2) {
		if err != nil {
			gotErr = err
			assert.Zero(t, v)
			continue
		}
		vals = append(vals, v)
	}
	assert.Equal(t, []int{1, 2}, vals)
	assert.ErrorIs(t, gotErr, boom)
}
