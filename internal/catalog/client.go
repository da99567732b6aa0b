package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrEmptyQuery is returned by Search for a blank query. No request is made.
var ErrEmptyQuery = errors.New("empty search query")

const (
	userAgent       = "ripple-music-player/1.0 (https://github.com/llehouerou/ripple)"
	defaultPageSize = 20
	maxAttempts     = 3
	baseRetryWait   = 500 * time.Millisecond
)

// APIError is returned when the catalog answers with a non-success status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog API error %d", e.Status)
	}
	return fmt.Sprintf("catalog API error %d: %s", e.Status, e.Message)
}

// Temporary reports whether retrying the request may succeed.
func (e *APIError) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// Page is one page of search results.
type Page struct {
	Songs []Song
	Total int
	Page  int
}

// Client is a thin REST client for the remote song catalog.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageSize   int
	retryWait  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPageSize sets the number of results requested per page.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithRetryWait sets the base delay between retries of transient failures.
func WithRetryWait(d time.Duration) Option {
	return func(c *Client) { c.retryWait = d }
}

// New creates a catalog client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		pageSize:   defaultPageSize,
		retryWait:  baseRetryWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Total   int    `json:"total"`
		Results []Song `json:"results"`
	} `json:"data"`
}

// Search returns the given page (1-based) of songs matching query.
func (c *Client) Search(ctx context.Context, query string, page int) (*Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(c.pageSize))
	reqURL := fmt.Sprintf("%s/search/songs?%s", c.baseURL, params.Encode())

	var lastErr error
	for attempt := range maxAttempts {
		if attempt > 0 {
			wait := c.retryWait * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		result, err := c.get(ctx, reqURL)
		if err == nil {
			return &Page{Songs: result.Data.Results, Total: result.Data.Total, Page: page}, nil
		}
		lastErr = err
		if !retryable(ctx, err) {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) get(ctx context.Context, reqURL string) (*searchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !result.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: result.Message}
	}
	return &result, nil
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	// Transport failures are worth another try; decode failures are not.
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
