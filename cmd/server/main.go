package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ayash-Bera/medipredict/internal/api"
	"github.com/Ayash-Bera/medipredict/internal/api/handlers"
	"github.com/Ayash-Bera/medipredict/internal/config"
	"github.com/Ayash-Bera/medipredict/internal/database"
	"github.com/Ayash-Bera/medipredict/internal/health"
	"github.com/Ayash-Bera/medipredict/internal/migration"
	"github.com/Ayash-Bera/medipredict/internal/places"
	"github.com/Ayash-Bera/medipredict/internal/predictor"
	"github.com/Ayash-Bera/medipredict/internal/repository"
	"github.com/Ayash-Bera/medipredict/internal/services"
	"github.com/Ayash-Bera/medipredict/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	healthCheckInterval = 30 * time.Second
	shutdownTimeout     = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.GetLogger().WithError(err).Fatal("Failed to load configuration")
	}

	logger := utils.NewLogger(cfg.Log.Level)
	utils.Logger = logger
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbManager, err := database.NewManager(ctx, cfg.DatabaseConfig(), logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database manager")
	}

	if err := migration.NewRunner(dbManager, logger).RunMigrations(cfg.Database.MigrationsPath); err != nil {
		logger.WithError(err).Fatal("Failed to run migrations")
	}

	pred, err := predictor.New(cfg.PredictorConfig(), logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize predictor")
	}

	repoManager := repository.NewRepositoryManager(dbManager)
	predictionService := services.NewPredictionService(pred, repoManager.Prediction, logger)
	placesClient := places.NewClient(cfg.Places.BaseURL, cfg.Places.APIKey, cfg.Places.Radius, logger)
	if cfg.Places.APIKey == "" {
		logger.Warn("GOOGLE_API_KEY not set, hospital search is disabled")
	}

	checker := health.NewHealthChecker(dbManager, pred, logger)
	go checker.PeriodicHealthCheck(ctx, healthCheckInterval)

	router := api.SetupRouter(api.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		StaticDir:      cfg.Server.StaticDir,
	}, api.Handlers{
		Predict:   handlers.NewPredictHandler(predictionService, logger),
		Hospitals: handlers.NewHospitalsHandler(placesClient, logger),
		Health:    handlers.NewHealthHandler(dbManager, checker, logger),
	}, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Leaves room for the predictor timeout.
		WriteTimeout: cfg.Predictor.Timeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server error")
		}
	}()

	logger.WithFields(logrus.Fields{
		"port":      cfg.Server.Port,
		"predictor": cfg.Predictor.Mode,
		"store":     cfg.Database.Driver,
	}).Info("Server listening")

	<-ctx.Done()
	stop()
	shutdown(server, predictionService, dbManager, logger)
}

// shutdown stops accepting requests, drains in-flight ones and pending
// prediction writes, then closes the stores.
func shutdown(server *http.Server, svc *services.PredictionService, dbManager *database.Manager, logger *logrus.Logger) {
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}

	if err := svc.Wait(ctx); err != nil {
		logger.WithError(err).Warn("Pending prediction writes were abandoned")
	}

	if err := dbManager.Close(ctx); err != nil {
		logger.WithError(err).Error("Failed to close database connections")
	}

	logger.Info("Server stopped")
}
