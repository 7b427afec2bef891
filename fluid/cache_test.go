package fluid

import (
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolatorCache_BuildsOncePerPair(t *testing.T) {
	c := NewInterpolatorCache(mustTable(t, waterRows()), defaultPriority(t), nil)

	first, err := c.Get("water", Density)
	require.NoError(t, err)
	second, err := c.Get("water", Density)
	require.NoError(t, err)

	assert.Same(t, first, second, "cached interpolator must be reused")
	assert.Equal(t, int64(1), c.Constructions())
	assert.Equal(t, 1, c.Len())
}

func TestInterpolatorCache_ConcurrentFirstQueries(t *testing.T) {
	c := NewInterpolatorCache(mustTable(t, waterRows()), defaultPriority(t), nil)

	const goroutines = 64
	results := make([]*Interpolator, goroutines)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			in, err := c.Get("water", Density)
			if err == nil {
				results[i] = in
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), c.Constructions(), "pair must be constructed at most once")
	for i, in := range results {
		require.NotNil(t, in, "goroutine %d", i)
		assert.Same(t, results[0], in)
	}
}

func TestInterpolatorCache_NegativeResultCached(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	c := NewInterpolatorCache(mustTable(t, waterRows()), defaultPriority(t), m)

	for i := 0; i < 3; i++ {
		in, err := c.Get("water", Viscosity)
		assert.Nil(t, in)
		assert.True(t, errors.Is(err, ErrInsufficientData))
	}
	assert.Equal(t, int64(1), c.Constructions(), "insufficient grids must not be retried")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.builds.WithLabelValues("insufficient")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheHits))
}
