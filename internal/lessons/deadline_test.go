package lessons

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardedCall_InstantOperationAlwaysWins(t *testing.T) {
	// An operation that is ready immediately must never lose to the
	// deadline, even a short one.
	for i := 0; i < 50; i++ {
		got, err := GuardedCall(context.Background(), 50*time.Millisecond, func() string {
			return "ok"
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
	}
}

func TestGuardedCall_SlowOperationHitsDeadline(t *testing.T) {
	_, err := GuardedCall(context.Background(), time.Millisecond, func() string {
		time.Sleep(100 * time.Millisecond)
		return "too late"
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunDeadline_NoOutputAfterCancellation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunDeadline(&buf))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Equal(t, []string{
		"guarded fast operation: ok",
		"slow operation: cancelled",
		"no output after cancellation",
	}, lines)

	// Exactly one line from the cancelled operation, and nothing after
	// the closing line.
	assert.Equal(t, 1, strings.Count(buf.String(), "slow operation:"))
	assert.True(t, strings.HasSuffix(buf.String(), "no output after cancellation\n"))
}

func TestCancelableSleep_FinishesWithoutCancellation(t *testing.T) {
	var buf bytes.Buffer
	CancelableSleep(context.Background(), &buf, time.Millisecond)
	assert.Equal(t, "slow operation: finished\n", buf.String())
}
