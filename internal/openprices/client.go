package openprices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Open Prices endpoint.
const DefaultBaseURL = "https://prices.openfoodfacts.org/api/v1/prices"

// DefaultPageSize is how many recent observations one fetch requests.
const DefaultPageSize = 50

// HTTPClient matches net/http.Client Do signature for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Location is the nested OSM address block on a raw price item.
type Location struct {
	Country string `json:"osm_address_country"`
	City    string `json:"osm_address_city"`
}

// Item is one raw price observation as returned by the API. Price is left
// untyped because the upstream sometimes serializes it as a string; numeric
// coercion happens during extraction.
type Item struct {
	Price    any       `json:"price"`
	Currency string    `json:"currency"`
	Date     string    `json:"date"`
	Location *Location `json:"location"`
}

// PriceValue attempts numeric coercion of the raw price field.
func (i Item) PriceValue() (float64, bool) {
	switch v := i.Price.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Page is the envelope the API wraps items in.
type Page struct {
	Items []Item `json:"items"`
	Total int    `json:"total"`
}

// Client wraps the Open Prices API with rate limiting and bounded retries.
type Client struct {
	baseURL     string
	pageSize    int
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	maxRetries  int
	retryDelay  time.Duration
	logger      *logrus.Logger
}

// Config defines settings for the Open Prices client.
type Config struct {
	BaseURL    string
	PageSize   int
	RateLimit  float64 // requests per second against the public API
	MaxRetries int
	RetryDelay time.Duration // initial backoff, doubled per attempt
}

// NewClient creates an Open Prices client.
func NewClient(httpClient HTTPClient, cfg Config, logger *logrus.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 1 // one request per second against the public API
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		pageSize:    cfg.PageSize,
		httpClient:  httpClient,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
		logger:      logger,
	}
}

// FetchPrices retrieves the most recent price observations whose product name
// matches the given keyword. Transport errors and 5xx responses are retried
// with exponential backoff; 4xx responses fail immediately.
func (c *Client) FetchPrices(ctx context.Context, keyword string) (*Page, error) {
	if keyword == "" {
		return nil, fmt.Errorf("fetch prices: keyword is required")
	}

	params := url.Values{}
	params.Set("product_name__like", keyword)
	params.Set("size", strconv.Itoa(c.pageSize))
	params.Set("sort", "-date")
	reqURL := c.baseURL + "?" + params.Encode()

	var lastErr error
	delay := c.retryDelay
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		page, retryable, err := c.fetchOnce(ctx, reqURL)
		if err == nil {
			return page, nil
		}
		lastErr = err
		if !retryable {
			break
		}

		if attempt < c.maxRetries {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"keyword": keyword,
				"attempt": attempt,
			}).Warn("price fetch failed, retrying")
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			delay *= 2
		}
	}

	return nil, fmt.Errorf("fetch prices for %q: %w", keyword, lastErr)
}

// fetchOnce performs a single request. The second return value reports
// whether the failure is worth retrying.
func (c *Client) fetchOnce(ctx context.Context, reqURL string) (*Page, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		io.Copy(io.Discard, resp.Body)
		return nil, true, fmt.Errorf("server error: status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var page Page
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&page); err != nil {
		return nil, false, fmt.Errorf("decode response: %w", err)
	}
	return &page, false, nil
}
