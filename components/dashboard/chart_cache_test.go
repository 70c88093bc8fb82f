package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCacheStoresEntry(t *testing.T) {
	cache := NewChartCache(10 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}

	val1, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	val2, err := cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, "html", val1)
	assert.Equal(t, val1, val2)
	assert.Equal(t, 1, calls)
}

func TestChartCacheExpires(t *testing.T) {
	cache := NewChartCache(2 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestChartCachePurge(t *testing.T) {
	cache := NewChartCache(time.Minute)
	_, err := cache.GetOrRender("a", func() (string, error) { return "x", nil })
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())
	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}

func TestChartCacheDisabledWithZeroTTL(t *testing.T) {
	cache := NewChartCache(0)
	calls := 0
	for range 2 {
		_, err := cache.GetOrRender("k", func() (string, error) { calls++; return "x", nil })
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}

func TestContentHashIsStable(t *testing.T) {
	a := contentHash(map[string]any{"b": 1, "a": 2})
	b := contentHash(map[string]any{"a": 2, "b": 1})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, contentHash(map[string]any{"a": 3}))
	assert.Equal(t, "empty", contentHash(nil))
}

type countingObserver struct{ hits, misses int }

func (o *countingObserver) ChartCacheHit()  { o.hits++ }
func (o *countingObserver) ChartCacheMiss() { o.misses++ }

func TestChartCacheReportsLookups(t *testing.T) {
	obs := &countingObserver{}
	cache := NewChartCache(time.Minute, WithCacheObserver(obs))
	for range 3 {
		_, err := cache.GetOrRender("k", func() (string, error) { return "x", nil })
		require.NoError(t, err)
	}
	assert.Equal(t, 1, obs.misses)
	assert.Equal(t, 2, obs.hits)
}

func TestChartCachePurgesOnDatasetReplace(t *testing.T) {
	cache := NewChartCache(time.Minute)
	gen := NewGenerator(WithSeed(3))
	state := InitialState(gen.GenerateCampaigns(), gen.GenerateChartData(), ThemeLight)
	ctrl := NewController(ControllerOptions{Initial: state, Listeners: []StateListener{cache}})
	ctx := context.Background()

	fill := func() {
		_, err := cache.GetOrRender("chart", func() (string, error) { return "x", nil })
		require.NoError(t, err)
		require.Equal(t, 1, cache.Len())
	}

	fill()
	_, err := ctrl.Dispatch(ctx, ToggleSidebar{})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	_, err = ctrl.Dispatch(ctx, ReplaceChartData{Points: gen.GenerateChartData()})
	require.NoError(t, err)
	assert.Equal(t, 0, cache.Len())

	fill()
	_, err = ctrl.Dispatch(ctx, ReplaceCampaigns{Campaigns: gen.GenerateCampaigns()})
	require.NoError(t, err)
	assert.Equal(t, 0, cache.Len())
}
