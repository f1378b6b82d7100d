// Package scryfall is a small Scryfall API client for bulk card metadata.
package scryfall

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.scryfall.com"
	rateLimitDelay = 100 * time.Millisecond // 100ms between requests (10 req/sec)
	requestTimeout = 30 * time.Second
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second
)

// ClientOptions configures a Client.
type ClientOptions struct {
	// BaseURL of the API. Defaults to https://api.scryfall.com.
	BaseURL string

	// UserAgent sent with every request. Scryfall requires one.
	UserAgent string

	// MaxRetries is how many times an API call is retried on network errors
	// and HTTP 429. Bulk downloads are never retried.
	MaxRetries int

	// Timeout bounds API calls. Bulk downloads are bounded by their context only.
	Timeout time.Duration
}

// DefaultClientOptions returns the options used by NewClient.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		BaseURL:    defaultBaseURL,
		UserAgent:  "topcards/1.0",
		MaxRetries: 3,
		Timeout:    requestTimeout,
	}
}

// Client represents a Scryfall API client with rate limiting.
type Client struct {
	httpClient     *http.Client
	downloadClient *http.Client
	rateLimiter    *rate.Limiter
	baseURL        string
	userAgent      string
	maxRetries     int
}

// NewClient creates a new Scryfall API client with default options.
func NewClient() *Client {
	return NewClientWithOptions(DefaultClientOptions())
}

// NewClientWithOptions creates a client; empty string and zero duration
// options fall back to their defaults.
func NewClientWithOptions(opts ClientOptions) *Client {
	defaults := DefaultClientOptions()
	if opts.BaseURL == "" {
		opts.BaseURL = defaults.BaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaults.UserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}

	return &Client{
		httpClient:     &http.Client{Timeout: opts.Timeout},
		downloadClient: &http.Client{},
		// Rate limiter: 1 request per 100ms = 10 req/sec
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		baseURL:     opts.BaseURL,
		userAgent:   opts.UserAgent,
		maxRetries:  opts.MaxRetries,
	}
}

// GetBulkData retrieves bulk data download information.
func (c *Client) GetBulkData(ctx context.Context) (*BulkDataList, error) {
	url := fmt.Sprintf("%s/bulk-data", c.baseURL)

	var bulkData BulkDataList
	if err := c.doRequest(ctx, url, &bulkData); err != nil {
		return nil, fmt.Errorf("failed to get bulk data: %w", err)
	}

	return &bulkData, nil
}

// FindBulkData returns the bulk data entry of the given type.
func (c *Client) FindBulkData(ctx context.Context, bulkType string) (*BulkData, error) {
	list, err := c.GetBulkData(ctx)
	if err != nil {
		return nil, err
	}

	bulk := list.Find(bulkType)
	if bulk == nil {
		return nil, fmt.Errorf("%s bulk data not found", bulkType)
	}
	return bulk, nil
}

// StreamBulkCards downloads a bulk file, a JSON array of card objects, and
// calls fn for each card as it is decoded. Returning an error from fn stops
// the download.
func (c *Client) StreamBulkCards(ctx context.Context, downloadURI string, fn func(*Card) error) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURI, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.downloadClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download bulk file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read bulk file: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return fmt.Errorf("bulk file is not a JSON array")
	}

	for dec.More() {
		var card Card
		if err := dec.Decode(&card); err != nil {
			return fmt.Errorf("failed to decode card: %w", err)
		}
		if err := fn(&card); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read bulk file: %w", err)
	}
	return nil
}

// doRequest performs an HTTP request with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, url string, result interface{}) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)

			// Retry on network errors
			if attempt < c.maxRetries {
				if err := sleep(ctx, backoff); err != nil {
					return err
				}
				backoff = min(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		retry, err := c.handleResponse(resp, url, result)
		if !retry {
			return err
		}
		lastErr = err

		if attempt < c.maxRetries {
			wait := backoff
			if secs, convErr := strconv.Atoi(resp.Header.Get("Retry-After")); convErr == nil {
				wait = time.Duration(secs) * time.Second
			}
			if err := sleep(ctx, wait); err != nil {
				return err
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}
		return lastErr
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// handleResponse decodes resp into result. The boolean reports whether the
// request may be retried.
func (c *Client) handleResponse(resp *http.Response, url string, result interface{}) (bool, error) {
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return false, fmt.Errorf("failed to read response body: %w", err)
		}
		if err := json.Unmarshal(body, result); err != nil {
			return false, fmt.Errorf("failed to parse JSON response: %w", err)
		}
		return false, nil

	case http.StatusTooManyRequests:
		return true, fmt.Errorf("rate limited (HTTP 429)")

	case http.StatusNotFound:
		return false, &NotFoundError{URL: url}

	default:
		body, _ := io.ReadAll(resp.Body)

		var apiErr APIError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Details != "" {
			return false, &apiErr
		}
		return false, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
