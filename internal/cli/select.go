package cli

import (
	"fmt"
	"strconv"

	"github.com/roach88/syncschool/internal/harness"
	"github.com/roach88/syncschool/internal/lessons"
)

// selectLessons resolves command arguments to lessons. Each argument may
// be a slug ("mutex") or a series number ("6"); no arguments selects the
// whole series in order.
func selectLessons(args []string) ([]lessons.Lesson, error) {
	if len(args) == 0 {
		return lessons.All(), nil
	}

	var selected []lessons.Lesson
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			l, ok := lessons.ByNumber(n)
			if !ok {
				return nil, fmt.Errorf("no lesson numbered %d", n)
			}
			selected = append(selected, l)
			continue
		}

		l, ok := lessons.BySlug(arg)
		if !ok {
			return nil, fmt.Errorf("no lesson named %q", arg)
		}
		selected = append(selected, l)
	}
	return selected, nil
}

// loadManifest returns the embedded manifest, or one loaded from an
// explicit path when the --manifest flag was set.
func loadManifest(path string) (*harness.Manifest, error) {
	if path == "" {
		return harness.DefaultManifest()
	}
	return harness.LoadManifest(path)
}
