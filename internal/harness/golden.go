package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGolden compares a normalized transcript against the golden file
// testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files store transcripts after masking, so they are the source of
// truth for what a lesson's stable output looks like: pinned lines in
// pinned positions, unordered sections sorted, nondeterministic tokens
// replaced by placeholders.
func AssertGolden(t *testing.T, name, normalized string) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(normalized))
}
