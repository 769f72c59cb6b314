package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopCache(t *testing.T) {
	c := NewNoop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "search:alien", []string{"Alien"}, time.Minute))

	var got []string
	found, err := c.Get(ctx, "search:alien", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
	assert.NoError(t, c.Close())
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "search", keyPrefix("search:the matrix"))
	assert.Equal(t, "movie", keyPrefix("movie:tt0133093"))
	assert.Equal(t, "plain", keyPrefix("plain"))
}
