package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyCommand_SingleLesson(t *testing.T) {
	out, err := executeCommand(t, "verify", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS hello")
}

func TestVerifyCommand_ConcurrentLessons(t *testing.T) {
	out, err := executeCommand(t, "verify", "gather", "queue", "barrier")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS gather")
	assert.Contains(t, out, "PASS queue")
	assert.Contains(t, out, "PASS barrier")
}

func TestVerifyCommand_JSON(t *testing.T) {
	out, err := executeCommand(t, "verify", "mutex", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   []verifyResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "mutex", resp.Data[0].Lesson)
	assert.True(t, resp.Data[0].Passed)
	assert.Empty(t, resp.Data[0].Mismatch)
}

func TestVerifyCommand_UnknownLessonIsCommandError(t *testing.T) {
	_, err := executeCommand(t, "verify", "spinlock")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
