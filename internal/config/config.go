package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Ayash-Bera/medipredict/internal/database"
	"github.com/Ayash-Bera/medipredict/internal/predictor"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port           string
		GinMode        string
		AllowedOrigins []string
		StaticDir      string
		MaxBodyBytes   int64
	}
	Log struct {
		Level string
	}
	Database struct {
		Driver         string
		URL            string
		MongoURI       string
		MongoDatabase  string
		MigrationsPath string
	}
	Redis struct {
		URL string
	}
	Predictor struct {
		Mode        string
		URL         string
		Timeout     time.Duration
		Interpreter string
		Script      string
	}
	Places struct {
		APIKey  string
		BaseURL string
		Radius  int
	}
}

// env names for each key; the first name that is set wins.
var envBindings = map[string][]string{
	"server.port":             {"PORT"},
	"server.gin_mode":         {"GIN_MODE"},
	"server.allowed_origins":  {"CORS_ALLOWED_ORIGINS"},
	"server.static_dir":       {"STATIC_DIR"},
	"server.max_body_bytes":   {"MAX_BODY_BYTES"},
	"log.level":               {"LOG_LEVEL"},
	"database.driver":         {"DATABASE_DRIVER"},
	"database.url":            {"DATABASE_URL"},
	"database.mongo_uri":      {"MONGO_URI"},
	"database.mongo_database": {"MONGO_DATABASE"},
	"database.migrations":     {"MIGRATIONS_PATH"},
	"redis.url":               {"REDIS_URL"},
	"predictor.mode":          {"PREDICTOR_MODE"},
	"predictor.url":           {"ML_SERVICE_URL"},
	"predictor.timeout":       {"PREDICTOR_TIMEOUT"},
	"predictor.interpreter":   {"PREDICTOR_INTERPRETER"},
	"predictor.script":        {"PREDICTOR_SCRIPT"},
	"places.api_key":          {"GOOGLE_API_KEY", "PLACES_API_KEY"},
	"places.base_url":         {"PLACES_BASE_URL"},
	"places.radius":           {"PLACES_RADIUS"},
}

// Load reads .env (if present), an optional config.yaml and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("server.port", "5000")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("server.allowed_origins", "http://localhost:5173")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("log.level", "info")
	v.SetDefault("database.driver", database.DriverMongo)
	v.SetDefault("database.mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("database.mongo_database", "medipredict")
	v.SetDefault("predictor.mode", predictor.ModeHTTP)
	v.SetDefault("predictor.timeout", predictor.DefaultTimeout.String())
	v.SetDefault("predictor.interpreter", "python3")
	v.SetDefault("predictor.script", "ml/predict.py")

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config

	config.Server.Port = v.GetString("server.port")
	config.Server.GinMode = v.GetString("server.gin_mode")
	config.Server.AllowedOrigins = splitList(v.GetString("server.allowed_origins"))
	config.Server.StaticDir = v.GetString("server.static_dir")
	config.Server.MaxBodyBytes = v.GetInt64("server.max_body_bytes")
	config.Log.Level = v.GetString("log.level")
	config.Database.Driver = strings.ToLower(v.GetString("database.driver"))
	config.Database.URL = v.GetString("database.url")
	config.Database.MongoURI = v.GetString("database.mongo_uri")
	config.Database.MongoDatabase = v.GetString("database.mongo_database")
	config.Database.MigrationsPath = v.GetString("database.migrations")
	config.Redis.URL = v.GetString("redis.url")
	config.Predictor.Mode = strings.ToLower(v.GetString("predictor.mode"))
	config.Predictor.URL = v.GetString("predictor.url")
	timeout, err := parseTimeout(v.GetString("predictor.timeout"))
	if err != nil {
		return nil, err
	}
	config.Predictor.Timeout = timeout
	config.Predictor.Interpreter = v.GetString("predictor.interpreter")
	config.Predictor.Script = v.GetString("predictor.script")
	config.Places.APIKey = v.GetString("places.api_key")
	config.Places.BaseURL = v.GetString("places.base_url")
	config.Places.Radius = v.GetInt("places.radius")

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case database.DriverMongo:
		if c.Database.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when DATABASE_DRIVER=%s", database.DriverMongo)
		}
	case database.DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when DATABASE_DRIVER=%s", database.DriverPostgres)
		}
	case database.DriverNone:
	default:
		return fmt.Errorf("DATABASE_DRIVER must be one of mongo, postgres, none (got %q)", c.Database.Driver)
	}

	switch c.Predictor.Mode {
	case predictor.ModeHTTP:
		if c.Predictor.URL == "" {
			return fmt.Errorf("ML_SERVICE_URL is required when PREDICTOR_MODE=%s", predictor.ModeHTTP)
		}
	case predictor.ModeProcess:
		if c.Predictor.Interpreter == "" {
			return fmt.Errorf("PREDICTOR_INTERPRETER is required when PREDICTOR_MODE=%s", predictor.ModeProcess)
		}
	default:
		return fmt.Errorf("PREDICTOR_MODE must be %s or %s (got %q)", predictor.ModeHTTP, predictor.ModeProcess, c.Predictor.Mode)
	}

	if c.Predictor.Timeout < minPredictorTimeout {
		return fmt.Errorf("PREDICTOR_TIMEOUT must be at least %s (got %s)", minPredictorTimeout, c.Predictor.Timeout)
	}
	return nil
}

func (c *Config) PredictorConfig() predictor.Config {
	return predictor.Config{
		Mode:        c.Predictor.Mode,
		BaseURL:     c.Predictor.URL,
		Timeout:     c.Predictor.Timeout,
		Interpreter: c.Predictor.Interpreter,
		Script:      c.Predictor.Script,
	}
}

func (c *Config) DatabaseConfig() *database.Config {
	return &database.Config{
		Driver:        c.Database.Driver,
		DatabaseURL:   c.Database.URL,
		MongoURI:      c.Database.MongoURI,
		MongoDatabase: c.Database.MongoDatabase,
		RedisURL:      c.Redis.URL,
		LogLevel:      c.Log.Level,
	}
}

const minPredictorTimeout = time.Second

// parseTimeout reads a Go duration ("30s") or a bare number of seconds ("30").
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("PREDICTOR_TIMEOUT must be a duration like 20s: %w", err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
