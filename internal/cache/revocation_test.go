package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRevokeToken(t *testing.T) {
	ctx := context.Background()

	var gotKey string
	var gotTTL time.Duration
	c := &FakeCache{SetNXFn: func(_ context.Context, key string, _ any, ttl time.Duration) *redis.BoolCmd {
		gotKey, gotTTL = key, ttl
		return redis.NewBoolResult(true, nil)
	}}
	require.NoError(t, RevokeToken(ctx, c, "jti", time.Minute))
	require.Equal(t, "auth:revoked:jti", gotKey)
	require.Equal(t, time.Minute, gotTTL)

	// 即將過期的 token 仍寫入最短保留時間
	require.NoError(t, RevokeToken(ctx, c, "jti", 0))
	require.Equal(t, minRevocationTTL, gotTTL)

	c.SetNXFn = func(context.Context, string, any, time.Duration) *redis.BoolCmd {
		return redis.NewBoolResult(false, nil)
	}
	require.ErrorIs(t, RevokeToken(ctx, c, "jti", time.Minute), ErrAlreadyRevoked)

	c.SetNXFn = func(context.Context, string, any, time.Duration) *redis.BoolCmd {
		return redis.NewBoolResult(false, errors.New("down"))
	}
	err := RevokeToken(ctx, c, "jti", time.Minute)
	require.ErrorContains(t, err, "down")
	require.False(t, errors.Is(err, ErrAlreadyRevoked))
}

func TestRevokeTokenOnlyFirstClaimWins(t *testing.T) {
	ctx := context.Background()
	var mu sync.Mutex
	keys := map[string]bool{}
	c := &FakeCache{SetNXFn: func(_ context.Context, key string, _ any, _ time.Duration) *redis.BoolCmd {
		mu.Lock()
		defer mu.Unlock()
		if keys[key] {
			return redis.NewBoolResult(false, nil)
		}
		keys[key] = true
		return redis.NewBoolResult(true, nil)
	}}

	const n = 8
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- RevokeToken(ctx, c, "same", time.Minute)
		}()
	}
	wg.Wait()
	close(errs)

	var won int
	for err := range errs {
		if err == nil {
			won++
			continue
		}
		require.ErrorIs(t, err, ErrAlreadyRevoked)
	}
	require.Equal(t, 1, won)
}

func TestIsTokenRevoked(t *testing.T) {
	ctx := context.Background()
	c := &FakeCache{GetFn: func(context.Context, string) *redis.StringCmd {
		return redis.NewStringResult("", redis.Nil)
	}}
	revoked, err := IsTokenRevoked(ctx, c, "a")
	require.NoError(t, err)
	require.False(t, revoked)

	c.GetFn = func(context.Context, string) *redis.StringCmd { return redis.NewStringResult("1", nil) }
	revoked, err = IsTokenRevoked(ctx, c, "a")
	require.NoError(t, err)
	require.True(t, revoked)

	c.GetFn = func(context.Context, string) *redis.StringCmd { return redis.NewStringResult("", errors.New("io")) }
	_, err = IsTokenRevoked(ctx, c, "a")
	require.Error(t, err)
}
