package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/syncschool/internal/lessons"
)

func TestListCommand_Text(t *testing.T) {
	out, err := executeCommand(t, "list")
	require.NoError(t, err)

	for _, l := range lessons.All() {
		assert.Contains(t, out, l.Slug)
		assert.Contains(t, out, l.Title)
	}
}

func TestListCommand_JSON(t *testing.T) {
	out, err := executeCommand(t, "list", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   []lessonInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Equal(t, lessons.Count(), len(resp.Data))
	assert.Equal(t, 1, resp.Data[0].Number)
	assert.Equal(t, "hello", resp.Data[0].Slug)
}

func TestListCommand_RejectsArguments(t *testing.T) {
	_, err := executeCommand(t, "list", "extra")
	require.Error(t, err)
}
