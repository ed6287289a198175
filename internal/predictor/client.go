package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Ayash-Bera/medipredict/internal/models"
	"github.com/sirupsen/logrus"
)

const DefaultTimeout = 20 * time.Second

// Client talks to a prediction service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

type predictPayload struct {
	Symptoms []string `json:"symptoms"`
}

func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *Client) Predict(ctx context.Context, symptoms []string) (*models.PredictionResult, error) {
	body, err := c.makeRequest(ctx, http.MethodPost, "/predict", predictPayload{Symptoms: symptoms})
	if err != nil {
		return nil, err
	}
	return decodeResult(body)
}

// Health probes the service root, which the prediction service answers with
// a status document.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.makeRequest(ctx, http.MethodGet, "/", nil)
	return err
}

func (c *Client) makeRequest(ctx context.Context, method, endpoint string, payload interface{}) ([]byte, error) {
	url := c.baseURL + endpoint

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(jsonData)

		c.logger.WithFields(logrus.Fields{
			"method":       method,
			"url":          url,
			"payload_size": len(jsonData),
		}).Debug("Predictor request payload")
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, fmt.Errorf("%w: request timed out after %s: %v", ErrUnavailable, time.Since(start).Round(time.Millisecond), err)
		}
		return nil, fmt.Errorf("%w: request failed: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}

	c.logger.WithFields(logrus.Fields{
		"status_code":   resp.StatusCode,
		"method":        method,
		"url":           url,
		"response_size": len(responseBody),
		"duration_ms":   time.Since(start).Milliseconds(),
	}).Debug("Predictor response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, truncate(responseBody, 512))
	}

	return responseBody, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
