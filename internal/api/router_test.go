package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ayash-Bera/medipredict/internal/api/handlers"
	"github.com/Ayash-Bera/medipredict/internal/health"
	"github.com/Ayash-Bera/medipredict/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubService struct{}

func (stubService) Predict(context.Context, []string, *models.Location) (*models.PredictionResult, error) {
	return &models.PredictionResult{Prediction: "Flu", Top3: []models.DiseaseScore{}}, nil
}

type stubFinder struct{}

func (stubFinder) NearbyHospitals(context.Context, float64, float64) (json.RawMessage, error) {
	return json.RawMessage(`{"results":[]}`), nil
}

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubReporter struct{}

func (stubReporter) Current(context.Context) health.OverallHealth {
	return health.OverallHealth{Status: health.StatusHealthy}
}

func setupTestRouter(t *testing.T, cfg RouterConfig) *gin.Engine {
	t.Helper()
	logger := logrus.New()
	return SetupRouter(cfg, Handlers{
		Predict:   handlers.NewPredictHandler(stubService{}, logger),
		Hospitals: handlers.NewHospitalsHandler(stubFinder{}, logger),
		Health:    handlers.NewHealthHandler(stubPinger{}, stubReporter{}, logger),
	}, logger)
}

func do(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes(t *testing.T) {
	r := setupTestRouter(t, RouterConfig{AllowedOrigins: []string{"http://localhost:5173"}, MaxBodyBytes: 1 << 20})

	w := do(r, http.MethodPost, "/api/predict", `{"symptoms":"fever"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/hospitals", `{"lat":1,"lng":2}`, nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/readyz", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/tools", "", nil).Code)

	w = do(r, http.MethodGet, "/api/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	r := setupTestRouter(t, RouterConfig{AllowedOrigins: []string{"http://localhost:5173"}})

	w := do(r, http.MethodOptions, "/api/predict", "", map[string]string{
		"Origin":                        "http://localhost:5173",
		"Access-Control-Request-Method": http.MethodPost,
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestBodyLimit(t *testing.T) {
	r := setupTestRouter(t, RouterConfig{MaxBodyBytes: 32})

	big := `{"symptoms":"` + strings.Repeat("a", 100) + `"}`
	w := do(r, http.MethodPost, "/api/predict", big, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestStaticFrontEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	r := setupTestRouter(t, RouterConfig{StaticDir: dir})

	w := do(r, http.MethodGet, "/assets/app.js", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = do(r, http.MethodGet, "/chat", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>app</html>", w.Body.String())

	w = do(r, http.MethodGet, "/../../etc/passwd", "", nil)
	assert.NotContains(t, w.Body.String(), "root:")

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/missing", "", nil).Code)
}
