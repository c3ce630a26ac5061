package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specFromYAML(t *testing.T, body string) *LessonSpec {
	t.Helper()
	m, err := ParseManifest([]byte("lessons:\n" + body))
	require.NoError(t, err)
	return &m.Lessons[0]
}

func TestNormalize_EmptyTranscript(t *testing.T) {
	assert.Equal(t, "", Normalize("", nil))
}

func TestNormalize_FoldsCRLFAndTrailingWhitespace(t *testing.T) {
	got := Normalize("one  \r\ntwo\t\r\n", nil)
	assert.Equal(t, "one\ntwo\n", got)
}

func TestNormalize_AppliesNFC(t *testing.T) {
	// "é" as e + combining acute must compare equal to precomposed é.
	decomposed := "cafe\u0301\n"
	precomposed := "caf\u00e9\n"
	assert.Equal(t, Normalize(precomposed, nil), Normalize(decomposed, nil))
}

func TestNormalize_AppliesMasks(t *testing.T) {
	spec := specFromYAML(t, `
  - number: 1
    slug: x
    title: "X"
    masks:
      - pattern: 'took \d+ms'
        replace: 'took ***'
`)
	got := Normalize("step one took 12ms\nstep two took 7ms\n", spec)
	assert.Equal(t, "step one took ***\nstep two took ***\n", got)
}

func TestNormalize_SortPrefixRunsStayLocal(t *testing.T) {
	spec := specFromYAML(t, `
  - number: 1
    slug: x
    title: "X"
    sort_prefixes:
      - "worker "
`)

	// Two runs of worker lines around a pinned line: each run sorts
	// independently, the pinned line does not move.
	got := Normalize(
		"worker 3 arrived\nworker 1 arrived\nall arrived\nworker 2 left\nworker 1 left\n",
		spec)
	assert.Equal(t,
		"worker 1 arrived\nworker 3 arrived\nall arrived\nworker 1 left\nworker 2 left\n",
		got)
}

func TestNormalize_UnorderedSortsWholeTranscript(t *testing.T) {
	spec := specFromYAML(t, `
  - number: 1
    slug: x
    title: "X"
    unordered: true
`)
	got := Normalize("c\na\nb\n", spec)
	assert.Equal(t, "a\nb\nc\n", got)
}

// The masking has to be load-bearing: two legitimate interleavings of a
// concurrent lesson's output must normalize identically with the
// directive, and differ without it.
func TestNormalize_MaskingIsLoadBearing(t *testing.T) {
	spec := specFromYAML(t, `
  - number: 1
    slug: x
    title: "X"
    sort_prefixes:
      - "fetched "
`)

	interleavingA := "fetched alpha\nfetched beta\nfetched gamma\ngathered: done\n"
	interleavingB := "fetched gamma\nfetched alpha\nfetched beta\ngathered: done\n"

	assert.Equal(t, Normalize(interleavingA, spec), Normalize(interleavingB, spec))
	assert.NotEqual(t, Normalize(interleavingA, nil), Normalize(interleavingB, nil))
}
