package harness

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a raw transcript for comparison.
//
// Unconditionally: CRLF folds to LF, trailing whitespace is trimmed per
// line, and lines are put into Unicode NFC so visually identical output
// compares equal across platforms. With a lesson spec, the spec's masking
// directives then apply: mask rewrites first, then order-insensitive
// sorting (the whole transcript when the lesson is declared unordered,
// otherwise each contiguous run of lines sharing a sort prefix).
//
// The result always ends with a newline unless the transcript is empty.
func Normalize(transcript string, spec *LessonSpec) string {
	if transcript == "" {
		return ""
	}

	s := strings.ReplaceAll(transcript, "\r\n", "\n")
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i := range lines {
		lines[i] = norm.NFC.String(strings.TrimRight(lines[i], " \t"))
	}

	if spec != nil {
		for i := range lines {
			for _, m := range spec.compiled {
				lines[i] = m.re.ReplaceAllString(lines[i], m.replace)
			}
		}

		if spec.Unordered {
			sort.Strings(lines)
		} else {
			for _, prefix := range spec.SortPrefixes {
				sortPrefixRuns(lines, prefix)
			}
		}
	}

	return strings.Join(lines, "\n") + "\n"
}

// sortPrefixRuns sorts every maximal run of consecutive lines that share
// the prefix, leaving everything around the runs untouched.
func sortPrefixRuns(lines []string, prefix string) {
	i := 0
	for i < len(lines) {
		if !strings.HasPrefix(lines[i], prefix) {
			i++
			continue
		}
		j := i
		for j < len(lines) && strings.HasPrefix(lines[j], prefix) {
			j++
		}
		sort.Strings(lines[i:j])
		i = j
	}
}
