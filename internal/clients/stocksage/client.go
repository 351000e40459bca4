// Package stocksage provides a client for the StockSage prediction service
package stocksage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/stocksage/internal/common"
	"github.com/bobmcallan/stocksage/internal/interfaces"
	"github.com/bobmcallan/stocksage/internal/models"
	"github.com/bobmcallan/stocksage/internal/trace"
)

const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second

	priceDataPath  = "/price-data"
	predictionPath = "/predict"
)

// Client implements the StockSageClient interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

var _ interfaces.StockSageClient = (*Client)(nil)

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new StockSage client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a non-2xx response from the service
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// GetPriceData retrieves the historical price series. An empty array is a valid answer.
func (c *Client) GetPriceData(ctx context.Context, ticker string) ([]models.PricePoint, error) {
	ctx, span := trace.StartSpan(ctx, "stocksage.GetPriceData", ticker)
	defer span.End()

	var points []models.PricePoint
	if err := c.get(ctx, priceDataPath, ticker, &points); err != nil {
		trace.RecordError(span, err)
		return nil, err
	}
	if points == nil {
		points = []models.PricePoint{}
	}
	return points, nil
}

// GetPrediction retrieves the prediction and scored news for a ticker
func (c *Client) GetPrediction(ctx context.Context, ticker string) (*models.Prediction, error) {
	ctx, span := trace.StartSpan(ctx, "stocksage.GetPrediction", ticker)
	defer span.End()

	var prediction *models.Prediction
	if err := c.get(ctx, predictionPath, ticker, &prediction); err != nil {
		trace.RecordError(span, err)
		return nil, err
	}
	return prediction, nil
}

// get performs a rate-limited GET of path?ticker=... and decodes the JSON body into result
func (c *Client) get(ctx context.Context, path, ticker string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("ticker", ticker)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	c.logger.Debug().Str("path", path).Str("ticker", ticker).Msg("StockSage API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("server request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn().
			Str("path", path).
			Str("ticker", ticker).
			Int("status", resp.StatusCode).
			Msg("StockSage API error response")
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug().
		Str("path", path).
		Str("ticker", ticker).
		Dur("elapsed", time.Since(start)).
		Msg("StockSage API response")
	return nil
}

// errorMessage extracts {"detail": "..."} or {"error": "..."} from an error body
func errorMessage(body []byte) string {
	var errResp struct {
		Detail interface{} `json:"detail"`
		Error  string      `json:"error"`
	}
	if json.Unmarshal(body, &errResp) != nil {
		return ""
	}
	if s, ok := errResp.Detail.(string); ok && s != "" {
		return s
	}
	return errResp.Error
}
