package cli

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
)

const fixedTraceID = "00000000-0000-7000-8000-000000000000"

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	opts := &RootOptions{newTraceID: func() string { return fixedTraceID }}
	cmd := newRootCommand(opts)

	outBuf, errBuf := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}
