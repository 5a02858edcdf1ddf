package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neox5/acctstat/internal/series"
)

func TestMonitorPublishesGauges(t *testing.T) {
	reg := series.NewRegistry(nil)
	m, err := New(time.Hour, "h1", reg, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Len())

	ctx, cancel := context.WithCancel(context.Background())
	m.Run(ctx)

	key := series.NewKey("host", "h1")
	assert.Eventually(t, func() bool {
		s, ok := reg.Lookup(MetricGoroutines, key)
		return ok && s.Value() > 0
	}, 5*time.Second, 10*time.Millisecond)

	heap, ok := reg.Lookup(MetricHeapBytes, key)
	require.True(t, ok)
	assert.Greater(t, heap.Value(), 0.0)

	cancel()
	m.Wait()
}
