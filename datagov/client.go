// Package datagov is a client for the data.gov.sg v2 dataset API, which hosts
// the MAS and MAS-sourced datasets this connector ingests.
//
// API docs: https://guide.data.gov.sg/developer-guide/dataset-apis
package datagov

import (
	"log/slog"
	"net/http"
	"time"
)

const (
	// BaseURL is the public dataset API endpoint. No authentication is required.
	BaseURL = "https://api-production.data.gov.sg/v2/public/api/datasets"

	userAgent = "mas-connector/1.0 (+https://github.com/subsets-io/mas-connector)"
)

// Client provides access to the data.gov.sg dataset API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	maxAttempts uint
	retryDelay  time.Duration
	pageDelay   time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new dataset API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: BaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger:      slog.Default(),
		maxAttempts: 4,
		retryDelay:  2 * time.Second,
		pageDelay:   200 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry configuration.
func WithRetries(attempts uint, delay time.Duration) ClientOption {
	return func(c *Client) {
		c.maxAttempts = attempts
		c.retryDelay = delay
	}
}

// WithPageDelay sets the politeness delay between row pages.
func WithPageDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.pageDelay = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}
