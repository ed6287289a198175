package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ayash-Bera/medipredict/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Cache keeps short-lived operational data in Redis. Prediction results are
// never cached.
type Cache struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewCache(client *redis.Client, logger *logrus.Logger) *Cache {
	return &Cache{
		client: client,
		logger: logger,
	}
}

const SystemHealthKey = "system:health"

// CacheSystemHealth caches system health status
func (c *Cache) CacheSystemHealth(ctx context.Context, health []models.SystemHealth, expiration time.Duration) error {
	data, err := json.Marshal(health)
	if err != nil {
		return fmt.Errorf("failed to marshal system health: %w", err)
	}

	return c.client.Set(ctx, SystemHealthKey, data, expiration).Err()
}

// GetCachedSystemHealth retrieves cached system health
func (c *Cache) GetCachedSystemHealth(ctx context.Context) ([]models.SystemHealth, error) {
	data, err := c.client.Get(ctx, SystemHealthKey).Bytes()
	if err != nil {
		return nil, err
	}

	var health []models.SystemHealth
	err = json.Unmarshal(data, &health)
	return health, err
}
