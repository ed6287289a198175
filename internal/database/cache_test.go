package database

import (
	"context"
	"testing"
	"time"

	"github.com/Ayash-Bera/medipredict/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCache(client, logrus.New()), mr
}

func TestCache_SystemHealthRoundTrip(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	checked := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	health := []models.SystemHealth{
		{ServiceName: "mongo", Status: "healthy", ResponseTimeMs: 3, CheckedAt: checked},
		{ServiceName: "predictor", Status: "unhealthy", ErrorMessage: "timeout", CheckedAt: checked},
	}

	require.NoError(t, cache.CacheSystemHealth(ctx, health, time.Minute))
	assert.True(t, mr.Exists(SystemHealthKey))

	got, err := cache.GetCachedSystemHealth(ctx)
	require.NoError(t, err)
	assert.Equal(t, health, got)

	mr.FastForward(2 * time.Minute)
	_, err = cache.GetCachedSystemHealth(ctx)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestManager_PingWithoutStore(t *testing.T) {
	m := &Manager{Driver: DriverNone, logger: logrus.New()}
	assert.NoError(t, m.Ping(context.Background()))
	assert.Error(t, m.PingRedis(context.Background()))
	assert.NoError(t, m.Migrate())
	assert.NoError(t, m.Close(context.Background()))
}

func TestNewManager_UnknownDriver(t *testing.T) {
	_, err := NewManager(context.Background(), &Config{Driver: "cassandra"}, logrus.New())
	assert.Error(t, err)
}

func TestNewManager_NoneWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	m, err := NewManager(context.Background(), &Config{Driver: DriverNone, RedisURL: "redis://" + mr.Addr()}, logrus.New())
	require.NoError(t, err)
	defer m.Close(context.Background())

	require.NotNil(t, m.Redis)
	assert.NoError(t, m.PingRedis(context.Background()))
}
