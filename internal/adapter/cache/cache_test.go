package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activityapp/internal/core/port"
)

func exerciseRepository(t *testing.T, repo port.CacheRepository) {
	ctx := context.Background()

	_, err := repo.Get(ctx, "activities:missing")
	assert.ErrorIs(t, err, port.ErrCacheMiss)

	require.NoError(t, repo.Set(ctx, "activities:types", []byte(`[1]`), time.Minute))
	require.NoError(t, repo.Set(ctx, "activities:other", []byte(`[2]`), time.Minute))
	require.NoError(t, repo.Set(ctx, "users:1", []byte(`{}`), time.Minute))

	value, err := repo.Get(ctx, "activities:types")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), value)

	require.NoError(t, repo.DeleteByPrefix(ctx, "activities:"))

	_, err = repo.Get(ctx, "activities:other")
	assert.ErrorIs(t, err, port.ErrCacheMiss)

	_, err = repo.Get(ctx, "users:1")
	assert.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "users:1"))

	_, err = repo.Get(ctx, "users:1")
	assert.ErrorIs(t, err, port.ErrCacheMiss)
}

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository(time.Minute)
	defer repo.Close()

	exerciseRepository(t, repo)
}

func TestMemoryRepository_Expiration(t *testing.T) {
	repo := NewMemoryRepository(time.Minute)

	require.NoError(t, repo.Set(context.Background(), "short", []byte("x"), 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, err := repo.Get(context.Background(), "short")
	assert.ErrorIs(t, err, port.ErrCacheMiss)
}

func TestRedisRepository(t *testing.T) {
	server := miniredis.RunT(t)

	repo, err := NewRedisRepository(context.Background(), "redis://"+server.Addr())
	require.NoError(t, err)
	defer repo.Close()

	exerciseRepository(t, repo)
}

func TestRedisRepository_Expiration(t *testing.T) {
	server := miniredis.RunT(t)

	repo, err := NewRedisRepository(context.Background(), "redis://"+server.Addr())
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.Set(context.Background(), "short", []byte("x"), time.Second))
	server.FastForward(2 * time.Second)

	_, err = repo.Get(context.Background(), "short")
	assert.ErrorIs(t, err, port.ErrCacheMiss)
}

func TestRedisRepository_DeleteByPrefixManyKeys(t *testing.T) {
	server := miniredis.RunT(t)

	repo, err := NewRedisRepository(context.Background(), "redis://"+server.Addr())
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()

	for i := 0; i < 250; i++ {
		require.NoError(t, repo.Set(ctx, "response:user_1:"+strconv.Itoa(i), []byte("x"), time.Minute))
	}

	require.NoError(t, repo.Set(ctx, "response:user_2:keep", []byte("x"), time.Minute))
	require.NoError(t, repo.DeleteByPrefix(ctx, "response:user_1:"))

	assert.Equal(t, []string{"response:user_2:keep"}, server.Keys())
}

func TestNewRedisRepository_Unreachable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	_, err := NewRedisRepository(context.Background(), "redis://"+addr)
	assert.Error(t, err)

	_, err = NewRedisRepository(context.Background(), "not a url")
	assert.Error(t, err)
}
