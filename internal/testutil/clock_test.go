package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepClock_StartsAtZero(t *testing.T) {
	c := NewStepClock()
	assert.Equal(t, int64(0), c.Current())
}

func TestStepClock_NextIncrements(t *testing.T) {
	c := NewStepClock()
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(3), c.Next())
	assert.Equal(t, int64(3), c.Current())
}

func TestStepClock_ResetRestartsSequence(t *testing.T) {
	c := NewStepClock()
	c.Next()
	c.Next()
	c.Reset()
	assert.Equal(t, int64(0), c.Current())
	assert.Equal(t, int64(1), c.Next())
}

func TestStepClock_ConcurrentNextIsUnique(t *testing.T) {
	c := NewStepClock()
	const workers = 8
	const perWorker = 100

	var mu sync.Mutex
	seen := make(map[int64]bool)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				seq := c.Next()
				mu.Lock()
				seen[seq] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
	assert.Equal(t, int64(workers*perWorker), c.Current())
}
