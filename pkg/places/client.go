package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"hearing-care-backend/config"
	"hearing-care-backend/internal/domain"
	"hearing-care-backend/pkg/logger"
)

// FieldMask selects the place fields the reviews endpoint needs.
const FieldMask = "id,displayName,rating,userRatingCount,reviews"

// maxErrorBody bounds how much of an upstream error body is read.
const maxErrorBody = 64 << 10

// ErrNotConfigured is returned when the API key or place id is missing.
var ErrNotConfigured = errors.New("places: api key or place id not configured")

// StatusError reports a non-2xx answer from the Places API.
type StatusError struct {
	StatusCode int
	Status     string // upstream error.status, e.g. PERMISSION_DENIED
	Message    string // upstream error.message
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("places: upstream status %d (%s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("places: upstream status %d", e.StatusCode)
}

// Client fetches a single place's details from the Places API (New).
type Client struct {
	baseURL    string
	apiKey     string
	placeID    string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit caps outgoing requests per second. rps <= 0 disables the cap.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewClient builds a client from cfg.
func NewClient(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		baseURL:    cfg.GooglePlacesBaseURL,
		apiKey:     cfg.GooglePlacesAPIKey,
		placeID:    cfg.GooglePlaceID,
		language:   cfg.GooglePlacesLanguage,
		httpClient: &http.Client{Timeout: cfg.GooglePlacesTimeout},
	}
	WithRateLimit(cfg.GooglePlacesRPS)(c)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsConfigured reports whether both the API key and the place id are set.
func (c *Client) IsConfigured() bool {
	return c.apiKey != "" && c.placeID != ""
}

// FetchPlaceReviews performs one upstream call for the configured place.
func (c *Client) FetchPlaceReviews(ctx context.Context) (*domain.PlaceDetails, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("places: rate limiter: %w", err)
		}
	}

	endpoint := fmt.Sprintf("%s/places/%s", c.baseURL, url.PathEscape(c.placeID))
	if c.language != "" {
		endpoint += "?languageCode=" + url.QueryEscape(c.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("places: build request: %w", err)
	}
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", FieldMask)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places: request failed: %w", err)
	}
	defer resp.Body.Close()

	logger.Log.Debug("Places API call",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", ctx.Value(domain.KeyRequestID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseStatusError(resp)
	}

	var details domain.PlaceDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("places: decode response: %w", err)
	}

	return &details, nil
}

// parseStatusError reads the Google error envelope
// {"error":{"code":403,"message":"...","status":"PERMISSION_DENIED"}}.
func parseStatusError(resp *http.Response) *StatusError {
	se := &StatusError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || !gjson.ValidBytes(body) {
		return se
	}

	parsed := gjson.ParseBytes(body)
	se.Status = parsed.Get("error.status").String()
	se.Message = parsed.Get("error.message").String()
	return se
}
