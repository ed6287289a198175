package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Ayash-Bera/medipredict/internal/health"
	"github.com/Ayash-Bera/medipredict/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type StatusReporter interface {
	Current(ctx context.Context) health.OverallHealth
}

type HealthHandler struct {
	store    Pinger
	reporter StatusReporter
	logger   *logrus.Logger
}

func NewHealthHandler(store Pinger, reporter StatusReporter, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		store:    store,
		reporter: reporter,
		logger:   logger,
	}
}

// Liveness only: the process is serving.
func (h *HealthHandler) HandleLive(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) HandleReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.WithError(err).Warn("Readiness check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// HandleHealth reports every dependency; 503 when any is unhealthy.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	status := h.reporter.Current(c.Request.Context())

	code := http.StatusOK
	if status.Status != health.StatusHealthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

func HandleTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": models.Tools})
}
