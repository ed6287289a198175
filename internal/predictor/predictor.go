// Package predictor relays normalized symptom lists to the external
// disease-prediction capability.
package predictor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ayash-Bera/medipredict/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnavailable covers timeouts, transport failures, non-2xx answers and
	// crashed or noisy predictor processes.
	ErrUnavailable = errors.New("prediction service unavailable")
	// ErrInvalidResponse means the predictor answered but not with a usable
	// prediction.
	ErrInvalidResponse = errors.New("invalid response from prediction service")
)

const (
	ModeHTTP    = "http"
	ModeProcess = "process"
)

// Predictor is the single capability the gateway needs. Implementations are
// stateless per call and never retry.
type Predictor interface {
	Predict(ctx context.Context, symptoms []string) (*models.PredictionResult, error)
	Health(ctx context.Context) error
}

type Config struct {
	Mode        string
	BaseURL     string
	Timeout     time.Duration
	Interpreter string
	Script      string
}

// New builds the adapter selected by cfg.Mode.
func New(cfg Config, logger *logrus.Logger) (Predictor, error) {
	switch cfg.Mode {
	case ModeHTTP, "":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("predictor base URL is required in %s mode", ModeHTTP)
		}
		return NewClient(cfg.BaseURL, cfg.Timeout, logger), nil
	case ModeProcess:
		if cfg.Interpreter == "" {
			return nil, fmt.Errorf("predictor interpreter is required in %s mode", ModeProcess)
		}
		var args []string
		if cfg.Script != "" {
			args = append(args, cfg.Script)
		}
		return NewProcess(cfg.Interpreter, args, cfg.Timeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown predictor mode %q", cfg.Mode)
	}
}

// decodeResult parses a predictor body. The upstream reports its own
// failures as {"error": "..."} with a success status, so those are treated
// as invalid responses too.
func decodeResult(body []byte) (*models.PredictionResult, error) {
	var raw struct {
		models.PredictionResult
		Error string `json:"error"`
	}
	if err := unmarshalStrict(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if raw.Error != "" {
		return nil, fmt.Errorf("%w: predictor reported %q", ErrInvalidResponse, raw.Error)
	}
	if raw.Prediction == "" {
		return nil, fmt.Errorf("%w: missing prediction", ErrInvalidResponse)
	}
	result := raw.PredictionResult
	if result.Top3 == nil {
		result.Top3 = []models.DiseaseScore{}
	}
	return &result, nil
}
