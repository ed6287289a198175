package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ayash-Bera/medipredict/internal/api/handlers"
	"github.com/Ayash-Bera/medipredict/internal/middleware"
	"github.com/Ayash-Bera/medipredict/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RouterConfig struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
	// StaticDir, when set, holds the built single-page front end.
	StaticDir string
}

type Handlers struct {
	Predict   *handlers.PredictHandler
	Hospitals *handlers.HospitalsHandler
	Health    *handlers.HealthHandler
}

func SetupRouter(cfg RouterConfig, h Handlers, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.LimitBodySize(cfg.MaxBodyBytes),
	)

	router.GET("/healthz", h.Health.HandleLive)
	router.GET("/readyz", h.Health.HandleReady)

	api := router.Group("/api")
	{
		api.POST("/predict", h.Predict.HandlePredict)
		api.POST("/hospitals", h.Hospitals.HandleHospitals)
		api.GET("/health", h.Health.HandleHealth)
		api.GET("/tools", handlers.HandleTools)
	}

	router.NoRoute(notFound(cfg.StaticDir))

	return router
}

// notFound serves the front end for unknown GET paths outside /api, falling
// back to index.html so client-side routes survive a reload.
func notFound(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if staticDir == "" || c.Request.Method != http.MethodGet || strings.HasPrefix(path, "/api/") {
			utils.AbortWithError(c, http.StatusNotFound, "Not found")
			return
		}

		file := filepath.Join(staticDir, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	}
}
