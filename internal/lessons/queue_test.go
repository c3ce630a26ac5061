package lessons

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduceAndConsume_EmissionOrderPreserved(t *testing.T) {
	// The interleaving of produced/consumed lines is free, but the
	// consumer must always see items in emission order.
	for i := 0; i < 20; i++ {
		var buf bytes.Buffer
		received := ProduceAndConsume(&buf, 3, 2)
		assert.Equal(t, []string{"item-1", "item-2", "item-3"}, received)
	}
}

func TestProduceAndConsume_ConsumedLinesOrdered(t *testing.T) {
	var buf bytes.Buffer
	ProduceAndConsume(&buf, 3, 2)

	var consumed []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "consumed ") {
			consumed = append(consumed, line)
		}
	}
	require.Len(t, consumed, 3)
	assert.Equal(t, []string{
		"consumed item-1",
		"consumed item-2",
		"consumed item-3",
	}, consumed)
}
