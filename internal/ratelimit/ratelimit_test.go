package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  NewRedisStore(client, "test:"),
	}
}

func TestStore_SlidingWindow(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			window := 15 * time.Minute

			for i := 1; i <= 3; i++ {
				d, err := store.Allow(ctx, "ip:1.2.3.4", 3, window, start.Add(time.Duration(i)*time.Minute))
				require.NoError(t, err)
				assert.True(t, d.Allowed)
				assert.Equal(t, i, d.Count)
			}

			d, err := store.Allow(ctx, "ip:1.2.3.4", 3, window, start.Add(5*time.Minute))
			require.NoError(t, err)
			assert.False(t, d.Allowed)
			assert.Equal(t, 3, d.Count)
			// oldest event at +1m leaves the window at +16m
			assert.Equal(t, 11*time.Minute, d.RetryAfter)

			d, err = store.Allow(ctx, "ip:1.2.3.4", 3, window, start.Add(16*time.Minute+time.Second))
			require.NoError(t, err)
			assert.True(t, d.Allowed)

			d, err = store.Allow(ctx, "ip:5.6.7.8", 3, window, start.Add(5*time.Minute))
			require.NoError(t, err)
			assert.True(t, d.Allowed, "keys are independent")
		})
	}
}

func TestStore_Reset(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now()

			_, err := store.Allow(ctx, "email:a@x.com", 1, time.Hour, now)
			require.NoError(t, err)
			d, err := store.Allow(ctx, "email:a@x.com", 1, time.Hour, now)
			require.NoError(t, err)
			require.False(t, d.Allowed)

			require.NoError(t, store.Reset(ctx, "email:a@x.com"))
			d, err = store.Allow(ctx, "email:a@x.com", 1, time.Hour, now)
			require.NoError(t, err)
			assert.True(t, d.Allowed)
		})
	}
}

func TestMemoryStore_Cleanup(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now()
	_, _ = s.Allow(context.Background(), "old", 5, time.Minute, now.Add(-time.Hour))
	_, _ = s.Allow(context.Background(), "fresh", 5, time.Minute, now)

	s.Cleanup(now, time.Minute)

	assert.NotContains(t, s.events, "old")
	assert.Contains(t, s.events, "fresh")
}
