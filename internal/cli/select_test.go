package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/syncschool/internal/lessons"
)

func TestSelectLessons_EmptySelectsAll(t *testing.T) {
	selected, err := selectLessons(nil)
	require.NoError(t, err)
	assert.Equal(t, lessons.Count(), len(selected))
}

func TestSelectLessons_BySlugAndNumber(t *testing.T) {
	selected, err := selectLessons([]string{"mutex", "8"})
	require.NoError(t, err)
	require.Len(t, selected, 2)
	assert.Equal(t, "mutex", selected[0].Slug)
	assert.Equal(t, "queue", selected[1].Slug)
}

func TestSelectLessons_UnknownSlug(t *testing.T) {
	_, err := selectLessons([]string{"spinlock"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no lesson named "spinlock"`)
}

func TestSelectLessons_UnknownNumber(t *testing.T) {
	_, err := selectLessons([]string{"99"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no lesson numbered 99")
}

func TestLoadManifest_DefaultsToEmbedded(t *testing.T) {
	m, err := loadManifest("")
	require.NoError(t, err)
	assert.Equal(t, lessons.Count(), len(m.Lessons))
}

func TestLoadManifest_MissingPath(t *testing.T) {
	_, err := loadManifest("/nonexistent/lessons.yaml")
	require.Error(t, err)
}
