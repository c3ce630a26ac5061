package harness

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed lessons.yaml
var defaultManifestYAML []byte

// defaultCeiling bounds a lesson transcript's wall-clock time when the
// manifest does not say otherwise. Lessons use millisecond-scale synthetic
// delays, so anything slower than this is an accidental unbounded wait.
const defaultCeiling = 50 * time.Millisecond

// Manifest describes the lesson series to the harness: titles, timing
// ceilings, masking directives, and declarative transcript checks.
type Manifest struct {
	Lessons []LessonSpec `yaml:"lessons"`
}

// LessonSpec is the manifest entry for one lesson.
type LessonSpec struct {
	// Number is the lesson's position in the series, starting at 1.
	Number int `yaml:"number"`

	// Slug matches the lesson registry's slug.
	Slug string `yaml:"slug"`

	// Title is the human-readable lesson title.
	Title string `yaml:"title"`

	// CeilingMS bounds the transcript's wall-clock time in
	// milliseconds. Zero means the default ceiling.
	CeilingMS int `yaml:"ceiling_ms,omitempty"`

	// Unordered declares the whole transcript's line interleaving
	// scheduler-chosen; normalization sorts every line.
	Unordered bool `yaml:"unordered,omitempty"`

	// Masks rewrite nondeterministic tokens to fixed placeholders.
	Masks []Mask `yaml:"masks,omitempty"`

	// SortPrefixes sort contiguous runs of lines sharing a prefix,
	// for transcripts where only some sections are unordered.
	SortPrefixes []string `yaml:"sort_prefixes,omitempty"`

	// Checks are declarative assertions against the recorded trace.
	Checks []Check `yaml:"checks,omitempty"`

	compiled []compiledMask
}

// Mask is one token-masking directive: every match of Pattern is replaced
// with Replace before comparison.
type Mask struct {
	Pattern string `yaml:"pattern"`
	Replace string `yaml:"replace"`
}

type compiledMask struct {
	re      *regexp.Regexp
	replace string
}

// Check is a declarative assertion on a run's recorded trace.
type Check struct {
	// Type is one of transcript_contains, transcript_order,
	// transcript_count.
	Type string `yaml:"type"`

	// Line is the substring to look for (contains, count).
	Line string `yaml:"line,omitempty"`

	// Lines are substrings that must first appear in this order
	// (order).
	Lines []string `yaml:"lines,omitempty"`

	// Count is the expected number of matching lines (count).
	Count int `yaml:"count,omitempty"`
}

// Check type constants.
const (
	CheckTranscriptContains = "transcript_contains"
	CheckTranscriptOrder    = "transcript_order"
	CheckTranscriptCount    = "transcript_count"
)

// Ceiling returns the lesson's transcript time ceiling.
func (s *LessonSpec) Ceiling() time.Duration {
	if s.CeilingMS > 0 {
		return time.Duration(s.CeilingMS) * time.Millisecond
	}
	return defaultCeiling
}

// DefaultManifest parses the manifest embedded in the binary.
func DefaultManifest() (*Manifest, error) {
	return ParseManifest(defaultManifestYAML)
}

// LoadManifest reads and parses a manifest YAML file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest parses manifest YAML. Unknown fields are rejected so that
// a typo in a directive name fails loudly instead of silently masking
// nothing.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	if err := validateManifest(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	return &m, nil
}

// BySlug returns the manifest entry for a lesson slug.
func (m *Manifest) BySlug(slug string) (*LessonSpec, bool) {
	for i := range m.Lessons {
		if m.Lessons[i].Slug == slug {
			return &m.Lessons[i], true
		}
	}
	return nil, false
}

// validateManifest checks required fields and compiles mask patterns.
func validateManifest(m *Manifest) error {
	if len(m.Lessons) == 0 {
		return fmt.Errorf("lessons list is required and must be non-empty")
	}

	slugs := make(map[string]bool)
	numbers := make(map[int]bool)
	for i := range m.Lessons {
		s := &m.Lessons[i]

		if s.Number <= 0 {
			return fmt.Errorf("lessons[%d]: number must be positive", i)
		}
		if numbers[s.Number] {
			return fmt.Errorf("lessons[%d]: duplicate number %d", i, s.Number)
		}
		numbers[s.Number] = true

		if s.Slug == "" {
			return fmt.Errorf("lessons[%d]: slug is required", i)
		}
		if slugs[s.Slug] {
			return fmt.Errorf("lessons[%d]: duplicate slug %q", i, s.Slug)
		}
		slugs[s.Slug] = true

		if s.Title == "" {
			return fmt.Errorf("lessons[%d]: title is required", i)
		}
		if s.CeilingMS < 0 {
			return fmt.Errorf("lessons[%d]: ceiling_ms must be non-negative", i)
		}

		for j, mask := range s.Masks {
			re, err := regexp.Compile(mask.Pattern)
			if err != nil {
				return fmt.Errorf("lessons[%d].masks[%d]: invalid pattern: %w", i, j, err)
			}
			s.compiled = append(s.compiled, compiledMask{re: re, replace: mask.Replace})
		}

		for j, p := range s.SortPrefixes {
			if p == "" {
				return fmt.Errorf("lessons[%d].sort_prefixes[%d]: prefix must be non-empty", i, j)
			}
		}

		for j := range s.Checks {
			if err := validateCheck(&s.Checks[j]); err != nil {
				return fmt.Errorf("lessons[%d].checks[%d]: %w", i, j, err)
			}
		}
	}

	return nil
}

// validateCheck validates a single check based on its type.
func validateCheck(c *Check) error {
	switch c.Type {
	case CheckTranscriptContains:
		if c.Line == "" {
			return fmt.Errorf("line is required for %s", c.Type)
		}
	case CheckTranscriptOrder:
		if len(c.Lines) < 2 {
			return fmt.Errorf("at least two lines are required for %s", c.Type)
		}
	case CheckTranscriptCount:
		if c.Line == "" {
			return fmt.Errorf("line is required for %s", c.Type)
		}
		if c.Count < 0 {
			return fmt.Errorf("count must be non-negative for %s", c.Type)
		}
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown check type %q", c.Type)
	}
	return nil
}
