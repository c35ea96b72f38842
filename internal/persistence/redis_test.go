package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type mockCmdable struct {
	incr        map[string]int64
	expireCalls []expireCall
	incrErr     error
}

type expireCall struct {
	key string
	ttl time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{incr: make(map[string]int64)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Incr(_ context.Context, key string) *redis.IntCmd {
	if m.incrErr != nil {
		return redis.NewIntResult(0, m.incrErr)
	}
	m.incr[key]++
	return redis.NewIntResult(m.incr[key], nil)
}

func (m *mockCmdable) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.expireCalls = append(m.expireCalls, expireCall{key: key, ttl: expiration})
	return redis.NewBoolResult(true, nil)
}

func TestFixedWindowAllow(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Redis{store: mock}

	allowed, count, err := client.FixedWindowAllow(ctx, "quote:10.0.0.1", 2, time.Minute)
	require.NoError(t, err)
	require.True(t, allowed)
	require.Equal(t, int64(1), count)
	require.Len(t, mock.expireCalls, 1)
	require.Equal(t, "apex:rate_limit:quote:10.0.0.1", mock.expireCalls[0].key)
	require.Equal(t, time.Minute, mock.expireCalls[0].ttl)

	allowed, count, err = client.FixedWindowAllow(ctx, "quote:10.0.0.1", 2, time.Minute)
	require.NoError(t, err)
	require.True(t, allowed)
	require.Equal(t, int64(2), count)
	require.Len(t, mock.expireCalls, 1, "expire is only set on the first hit")

	allowed, _, err = client.FixedWindowAllow(ctx, "quote:10.0.0.1", 2, time.Minute)
	require.NoError(t, err)
	require.False(t, allowed)
}

func TestFixedWindowAllowPropagatesErrors(t *testing.T) {
	mock := newMockCmdable()
	mock.incrErr = errors.New("connection refused")
	client := &Redis{store: mock}

	allowed, _, err := client.FixedWindowAllow(context.Background(), "signup", 5, time.Minute)
	require.Error(t, err)
	require.False(t, allowed)
}

func TestRateLimitKeySkipsEmptyParts(t *testing.T) {
	client := &Redis{}
	require.Equal(t, "apex:rate_limit:login", client.RateLimitKey("login"))
	require.Equal(t, "apex:rate_limit", client.RateLimitKey(""))
}

func TestNilRedis(t *testing.T) {
	var client *Redis
	require.Error(t, client.Ping(context.Background()))
	require.NoError(t, client.Close())
}
