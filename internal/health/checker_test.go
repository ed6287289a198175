package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ayash-Bera/medipredict/internal/database"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(context.Context) error { return nil }

func failing(context.Context) error { return errors.New("connection refused") }

func newTestCache(t *testing.T) *database.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return database.NewCache(client, logrus.New())
}

func TestCheckAll(t *testing.T) {
	h := newHealthChecker([]Check{
		{Name: "mongo", Fn: ok},
		{Name: "predictor", Fn: ok},
	}, nil, logrus.New())

	got := h.CheckAll(context.Background())
	assert.Equal(t, StatusHealthy, got.Status)
	require.Len(t, got.Services, 2)
	assert.Equal(t, "mongo", got.Services[0].Name)
	assert.Empty(t, got.Services[0].Error)
}

func TestCheckAll_OneFailureMakesSystemUnhealthy(t *testing.T) {
	h := newHealthChecker([]Check{
		{Name: "mongo", Fn: ok},
		{Name: "predictor", Fn: failing},
	}, nil, logrus.New())

	got := h.CheckAll(context.Background())
	assert.Equal(t, StatusUnhealthy, got.Status)
	assert.Equal(t, StatusUnhealthy, got.Services[1].Status)
	assert.Equal(t, "unavailable", got.Services[1].Error)
}

func TestCheckCached_WithoutCache(t *testing.T) {
	h := newHealthChecker(nil, nil, logrus.New())
	_, err := h.CheckCached(context.Background())
	assert.ErrorIs(t, err, ErrNoCache)
}

func TestCurrent_FallsBackToLiveCheck(t *testing.T) {
	calls := 0
	h := newHealthChecker([]Check{{Name: "predictor", Fn: func(context.Context) error {
		calls++
		return nil
	}}}, newTestCache(t), logrus.New())

	got := h.Current(context.Background())
	assert.Equal(t, StatusHealthy, got.Status)
	assert.Equal(t, 1, calls)
}

func TestPeriodicHealthCheck_FillsCache(t *testing.T) {
	h := newHealthChecker([]Check{
		{Name: "redis", Fn: ok},
		{Name: "predictor", Fn: failing},
	}, newTestCache(t), logrus.New())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.PeriodicHealthCheck(ctx, time.Hour)
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, err := h.CheckCached(context.Background())
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	cancel()
	<-done

	cached, err := h.CheckCached(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusUnhealthy, cached.Status)
	require.Len(t, cached.Services, 2)
	assert.Equal(t, "predictor", cached.Services[1].Name)
	assert.Equal(t, "unavailable", cached.Services[1].Error)

	// Cached results are served without probing again.
	h.checks = []Check{{Name: "predictor", Fn: func(context.Context) error {
		t.Fatal("probe should not run while cache is fresh")
		return nil
	}}}
	assert.Equal(t, StatusUnhealthy, h.Current(context.Background()).Status)
}

func TestPeriodicHealthCheck_NoCacheReturns(t *testing.T) {
	h := newHealthChecker([]Check{{Name: "predictor", Fn: ok}}, nil, logrus.New())
	h.PeriodicHealthCheck(context.Background(), time.Millisecond)
}
