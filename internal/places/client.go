// Package places proxies nearby-hospital searches to the places API. The
// API key only ever lives here.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "https://maps.googleapis.com"
	DefaultRadius  = 4000
	nearbyPath     = "/maps/api/place/nearbysearch/json"
	placeType      = "hospital"
)

var (
	ErrNotConfigured = errors.New("places API key not configured")
	ErrUpstream      = errors.New("places API request failed")
)

type Client struct {
	baseURL    string
	apiKey     string
	radius     int
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(baseURL, apiKey string, radius int, logger *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if radius <= 0 {
		radius = DefaultRadius
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		radius:  radius,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// NearbyHospitals returns the upstream JSON document untouched.
func (c *Client) NearbyHospitals(ctx context.Context, lat, lng float64) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.nearbyURL(lat, lng), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the full URL, key included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrUpstream, err)
	}

	c.logger.WithFields(logrus.Fields{
		"status_code":   resp.StatusCode,
		"response_size": len(body),
		"duration_ms":   time.Since(start).Milliseconds(),
	}).Debug("Places API response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: response is not JSON", ErrUpstream)
	}

	return json.RawMessage(body), nil
}

func (c *Client) nearbyURL(lat, lng float64) string {
	q := url.Values{}
	q.Set("location", formatCoord(lat)+","+formatCoord(lng))
	q.Set("radius", strconv.Itoa(c.radius))
	q.Set("type", placeType)
	q.Set("key", c.apiKey)
	return c.baseURL + nearbyPath + "?" + q.Encode()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
