package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Ayash-Bera/medipredict/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverNone     = "none"
)

// Database connection manager. Only the store selected by Config.Driver is
// opened; Redis is optional.
type Manager struct {
	Driver string
	DB     *gorm.DB
	Mongo  *mongo.Database
	Redis  *redis.Client
	logger *logrus.Logger
}

// Database configuration
type Config struct {
	Driver        string
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
	RedisURL      string
	LogLevel      string
}

// NewManager opens the configured store and, when a URL is given, Redis.
func NewManager(ctx context.Context, config *Config, logger *logrus.Logger) (*Manager, error) {
	m := &Manager{Driver: config.Driver, logger: logger}

	switch config.Driver {
	case DriverPostgres:
		db, err := openPostgres(config)
		if err != nil {
			return nil, err
		}
		m.DB = db
	case DriverMongo:
		db, err := openMongo(ctx, config)
		if err != nil {
			return nil, err
		}
		m.Mongo = db
	case DriverNone:
		logger.Warn("No database configured, predictions will not be persisted")
	default:
		return nil, fmt.Errorf("unknown database driver %q", config.Driver)
	}

	if config.RedisURL != "" {
		client, err := openRedis(ctx, config.RedisURL)
		if err != nil {
			m.Close(ctx)
			return nil, err
		}
		m.Redis = client
	}

	logger.WithFields(logrus.Fields{
		"driver": config.Driver,
		"redis":  m.Redis != nil,
	}).Info("Database connections established successfully")

	return m, nil
}

func openPostgres(config *Config) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Silent)
	if config.LogLevel == "debug" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(config.DatabaseURL), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func openMongo(ctx context.Context, config *Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(config.MongoURI).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(config.MongoDatabase), nil
}

func openRedis(ctx context.Context, url string) (*redis.Client, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.PoolSize = 10
	redisOpts.MinIdleConns = 2
	redisOpts.IdleTimeout = 30 * time.Minute

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Migrate runs GORM auto-migrations for the relational store.
func (m *Manager) Migrate() error {
	if m.DB == nil {
		return nil
	}
	m.logger.Info("Running database migrations...")
	return m.DB.AutoMigrate(&models.PredictionRow{})
}

// Close closes all database connections
func (m *Manager) Close(ctx context.Context) error {
	if m.Redis != nil {
		if err := m.Redis.Close(); err != nil {
			m.logger.WithError(err).Error("Failed to close Redis connection")
		}
	}

	if m.Mongo != nil {
		if err := m.Mongo.Client().Disconnect(ctx); err != nil {
			return err
		}
	}

	if m.DB != nil {
		sqlDB, err := m.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}

// Health check methods

// Ping checks the configured store. With no store configured it succeeds.
func (m *Manager) Ping(ctx context.Context) error {
	switch {
	case m.DB != nil:
		sqlDB, err := m.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	case m.Mongo != nil:
		return m.Mongo.Client().Ping(ctx, readpref.Primary())
	default:
		return nil
	}
}

func (m *Manager) PingRedis(ctx context.Context) error {
	if m.Redis == nil {
		return fmt.Errorf("redis not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.Redis.Ping(ctx).Err()
}
