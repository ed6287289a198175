package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp keeps stray config.yaml / .env files out of the test.
func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ML_SERVICE_URL", "http://ml:8000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "mongo", cfg.Database.Driver)
	assert.Equal(t, "medipredict", cfg.Database.MongoDatabase)
	assert.Equal(t, "http", cfg.Predictor.Mode)
	assert.Equal(t, 20*time.Second, cfg.Predictor.Timeout)
	assert.Empty(t, cfg.Places.APIKey)
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("PREDICTOR_MODE", "process")
	t.Setenv("PREDICTOR_TIMEOUT", "30s")
	t.Setenv("PREDICTOR_SCRIPT", "/srv/ml/predict.py")
	t.Setenv("GOOGLE_API_KEY", "server-key")
	t.Setenv("PLACES_RADIUS", "2500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "process", cfg.Predictor.Mode)
	assert.Equal(t, 30*time.Second, cfg.Predictor.Timeout)
	assert.Equal(t, "python3", cfg.Predictor.Interpreter)
	assert.Equal(t, "/srv/ml/predict.py", cfg.PredictorConfig().Script)
	assert.Equal(t, "server-key", cfg.Places.APIKey)
	assert.Equal(t, 2500, cfg.Places.Radius)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.DatabaseConfig().DatabaseURL)
}

func TestLoad_PlacesKeyFallback(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ML_SERVICE_URL", "http://ml:8000")
	t.Setenv("PLACES_API_KEY", "fallback-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fallback-key", cfg.Places.APIKey)
}

func TestLoad_PredictorTimeoutUnits(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ML_SERVICE_URL", "http://ml:8000")

	t.Setenv("PREDICTOR_TIMEOUT", "20")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 20*time.Second, cfg.Predictor.Timeout)

	t.Setenv("PREDICTOR_TIMEOUT", "1500ms")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.Predictor.Timeout)

	t.Setenv("PREDICTOR_TIMEOUT", "20ns")
	_, err = Load()
	assert.ErrorContains(t, err, "PREDICTOR_TIMEOUT")

	t.Setenv("PREDICTOR_TIMEOUT", "soon")
	_, err = Load()
	assert.ErrorContains(t, err, "PREDICTOR_TIMEOUT")
}

func TestLoad_RequiresPredictorURL(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ML_SERVICE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "ML_SERVICE_URL")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.Database.Driver = "none"
		c.Predictor.Mode = "http"
		c.Predictor.URL = "http://ml"
		c.Predictor.Timeout = time.Second
		return c
	}

	require.NoError(t, base().Validate())

	c := base()
	c.Database.Driver = "postgres"
	assert.ErrorContains(t, c.Validate(), "DATABASE_URL")

	c = base()
	c.Database.Driver = "sqlite"
	assert.Error(t, c.Validate())

	c = base()
	c.Predictor.Mode = "grpc"
	assert.Error(t, c.Validate())

	c = base()
	c.Predictor.Mode = "process"
	c.Predictor.Interpreter = ""
	assert.ErrorContains(t, c.Validate(), "PREDICTOR_INTERPRETER")

	c = base()
	c.Predictor.Timeout = 0
	assert.Error(t, c.Validate())

	c = base()
	c.Predictor.Timeout = 20 * time.Nanosecond
	assert.ErrorContains(t, c.Validate(), "at least 1s")
}
