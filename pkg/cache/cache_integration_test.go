//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"movie-review/pkg/metrics"
	"movie-review/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	rediscontainer "github.com/testcontainers/testcontainers-go/modules/redis"
)

type cachedMovie struct {
	Title string `json:"title"`
	Year  string `json:"year"`
}

func TestRedisCache_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	ctr, err := rediscontainer.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	endpoint, err := ctr.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := NewRedisClient(ctx, utils.RedisConfig{Addr: endpoint})
	require.NoError(t, err)

	m := metrics.NewCacheMetrics(prometheus.NewRegistry())
	c := NewRedisCache(client, "test:", m)
	t.Cleanup(func() { _ = c.Close() })

	var got cachedMovie
	found, err := c.Get(ctx, "movie:tt0078748", &got)
	require.NoError(t, err)
	assert.False(t, found)

	want := cachedMovie{Title: "Alien", Year: "1979"}
	require.NoError(t, c.Set(ctx, "movie:tt0078748", want, time.Minute))

	found, err = c.Get(ctx, "movie:tt0078748", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	ttl, err := client.TTL(ctx, "test:movie:tt0078748").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Hits.WithLabelValues("movie")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Misses.WithLabelValues("movie")))
}
