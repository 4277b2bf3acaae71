package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRepository_NilReceiverIsSafe(t *testing.T) {
	var repo *CacheRepository

	val, hit, err := repo.Get(context.Background(), "key")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, val)

	require.NoError(t, repo.Set(context.Background(), "key", "value", time.Minute))
}

func TestCacheRepository_NilClientIsSafe(t *testing.T) {
	repo := NewCacheRepository(nil)

	val, hit, err := repo.Get(context.Background(), "key")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Empty(t, val)

	require.NoError(t, repo.Set(context.Background(), "key", "value", time.Minute))
}
