package lessons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupancyUnderSemaphore_BoundHolds(t *testing.T) {
	for i := 0; i < 20; i++ {
		peak, err := OccupancyUnderSemaphore(4, 2)
		require.NoError(t, err)
		assert.LessOrEqual(t, peak, int64(2),
			"semaphore must never admit more holders than its weight")
		assert.GreaterOrEqual(t, peak, int64(1))
	}
}

func TestOccupancyUnderSemaphore_SingleSlotSerializes(t *testing.T) {
	peak, err := OccupancyUnderSemaphore(3, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), peak)
}
