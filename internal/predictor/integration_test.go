//go:build integration

package predictor

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestIntegration_RealService(t *testing.T) {
	baseURL := os.Getenv("ML_SERVICE_URL")
	if baseURL == "" {
		t.Skip("ML_SERVICE_URL required for integration tests")
	}

	client := NewClient(baseURL, 30*time.Second, logrus.New())

	require.NoError(t, client.Health(context.Background()))

	result, err := client.Predict(context.Background(), []string{"fever", "headache", "nausea"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Prediction)
	require.LessOrEqual(t, len(result.Top3), 3)
}
