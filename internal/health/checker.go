package health

import (
	"context"
	"errors"
	"time"

	"github.com/Ayash-Bera/medipredict/internal/database"
	"github.com/Ayash-Bera/medipredict/internal/models"
	"github.com/Ayash-Bera/medipredict/internal/predictor"
	"github.com/sirupsen/logrus"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// ErrNoCache is returned by CheckCached when Redis is not configured.
var ErrNoCache = errors.New("health cache not configured")

const checkTimeout = 5 * time.Second

// errUnavailableMsg is all a client sees about a failed check; the cause is
// only logged.
const errUnavailableMsg = "unavailable"

// Check is one named dependency probe.
type Check struct {
	Name string
	Fn   func(ctx context.Context) error
}

// HealthChecker manages health checks for all services
type HealthChecker struct {
	checks []Check
	cache  *database.Cache
	logger *logrus.Logger
}

// NewHealthChecker probes the configured store, Redis when present, and the
// predictor.
func NewHealthChecker(dbManager *database.Manager, p predictor.Predictor, logger *logrus.Logger) *HealthChecker {
	var checks []Check
	if dbManager.Driver != database.DriverNone {
		checks = append(checks, Check{Name: dbManager.Driver, Fn: dbManager.Ping})
	}

	var cache *database.Cache
	if dbManager.Redis != nil {
		checks = append(checks, Check{Name: "redis", Fn: dbManager.PingRedis})
		cache = database.NewCache(dbManager.Redis, logger)
	}

	checks = append(checks, Check{Name: "predictor", Fn: p.Health})

	return newHealthChecker(checks, cache, logger)
}

func newHealthChecker(checks []Check, cache *database.Cache, logger *logrus.Logger) *HealthChecker {
	return &HealthChecker{checks: checks, cache: cache, logger: logger}
}

// ServiceHealth represents the health status of a service
type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

// OverallHealth represents the overall system health
type OverallHealth struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
	Uptime   string          `json:"uptime"`
}

func (h *HealthChecker) check(ctx context.Context, c Check) ServiceHealth {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	start := time.Now()
	err := c.Fn(ctx)
	responseTime := int(time.Since(start).Milliseconds())

	status := StatusHealthy
	errorMsg := ""
	if err != nil {
		status = StatusUnhealthy
		errorMsg = errUnavailableMsg
		h.logger.WithError(err).WithField("service", c.Name).Error("Health check failed")
	}

	return ServiceHealth{
		Name:         c.Name,
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().UTC().Format(time.RFC3339),
	}
}

// CheckAll performs health checks on all services
func (h *HealthChecker) CheckAll(ctx context.Context) OverallHealth {
	services := make([]ServiceHealth, 0, len(h.checks))
	for _, c := range h.checks {
		services = append(services, h.check(ctx, c))
	}

	return OverallHealth{
		Status:   overallStatus(services),
		Services: services,
		Uptime:   getUptime(),
	}
}

// CheckCached returns cached health status if available
func (h *HealthChecker) CheckCached(ctx context.Context) (*OverallHealth, error) {
	if h.cache == nil {
		return nil, ErrNoCache
	}

	cachedHealth, err := h.cache.GetCachedSystemHealth(ctx)
	if err != nil {
		return nil, err
	}

	services := make([]ServiceHealth, len(cachedHealth))
	for i, health := range cachedHealth {
		services[i] = ServiceHealth{
			Name:         health.ServiceName,
			Status:       health.Status,
			ResponseTime: health.ResponseTimeMs,
			Error:        health.ErrorMessage,
			LastChecked:  health.CheckedAt.Format(time.RFC3339),
		}
	}

	return &OverallHealth{
		Status:   overallStatus(services),
		Services: services,
		Uptime:   getUptime(),
	}, nil
}

// Current serves the cached status when fresh and probes otherwise.
func (h *HealthChecker) Current(ctx context.Context) OverallHealth {
	if cached, err := h.CheckCached(ctx); err == nil {
		return *cached
	}
	return h.CheckAll(ctx)
}

func overallStatus(services []ServiceHealth) string {
	for _, service := range services {
		if service.Status != StatusHealthy {
			return StatusUnhealthy
		}
	}
	return StatusHealthy
}

var startTime = time.Now()

func getUptime() string {
	return time.Since(startTime).Round(time.Second).String()
}

// PeriodicHealthCheck refreshes the cached status every interval until ctx
// is done. Without a cache there is nothing to refresh and it returns.
func (h *HealthChecker) PeriodicHealthCheck(ctx context.Context, interval time.Duration) {
	if h.cache == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.refresh(ctx, interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.refresh(ctx, interval)
		}
	}
}

func (h *HealthChecker) refresh(ctx context.Context, interval time.Duration) {
	health := h.CheckAll(ctx)

	healthModels := make([]models.SystemHealth, len(health.Services))
	for i, service := range health.Services {
		checkedAt, _ := time.Parse(time.RFC3339, service.LastChecked)
		healthModels[i] = models.SystemHealth{
			ServiceName:    service.Name,
			Status:         service.Status,
			ResponseTimeMs: service.ResponseTime,
			ErrorMessage:   service.Error,
			CheckedAt:      checkedAt,
		}
	}

	cacheCtx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()
	if err := h.cache.CacheSystemHealth(cacheCtx, healthModels, 2*interval); err != nil {
		h.logger.WithError(err).Error("Failed to cache health status")
	}

	h.logger.WithField("status", health.Status).Debug("Periodic health check completed")
}
