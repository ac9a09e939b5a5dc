package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the site URL used when none is configured.
const DefaultBaseURL = "http://localhost:8080"

// restPrefix is the REST API root below the site URL.
const restPrefix = "/wp-json"

// Client is a WordPress REST API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authHeader string
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL sets the site URL (without the /wp-json suffix).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		baseURL = strings.TrimSuffix(baseURL, "/")
		c.baseURL = strings.TrimSuffix(baseURL, restPrefix)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBasicAuth authenticates with a username and application password.
func WithBasicAuth(username, appPassword string) Option {
	return func(c *Client) {
		if username == "" {
			return
		}
		req := &http.Request{Header: make(http.Header)}
		req.SetBasicAuth(username, appPassword)
		c.authHeader = req.Header.Get("Authorization")
	}
}

// WithBearerToken authenticates with a JWT or OAuth bearer token.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		if token == "" {
			return
		}
		c.authHeader = "Bearer " + token
	}
}

// New creates a new WordPress API client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured site URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes one call made through do.
type request struct {
	method      string
	url         string
	query       url.Values
	body        io.Reader
	contentType string
	auth        string
}

// get performs a GET against the REST API and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) (http.Header, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodGet,
		url:    c.baseURL + restPrefix + path,
		query:  query,
		auth:   c.authHeader,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return resp.Header, nil
}

// do executes r and returns the response when the status is below 400.
// The caller closes the body.
func (c *Client) do(ctx context.Context, r request) (*http.Response, error) {
	start := time.Now()

	u, err := url.Parse(r.url)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), r.body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.auth != "" {
		req.Header.Set("Authorization", r.auth)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("HTTP request failed",
			slog.String("method", r.method),
			slog.String("path", u.Path),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, fmt.Errorf("executing request: %w", err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		apiErr := parseError(resp)
		slog.Debug("HTTP request returned error",
			slog.String("method", r.method),
			slog.String("path", u.Path),
			slog.Int("status", resp.StatusCode),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, apiErr
	}

	slog.Debug("HTTP request completed",
		slog.String("method", r.method),
		slog.String("path", u.Path),
		slog.Int("status", resp.StatusCode),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return resp, nil
}

// parseError extracts an APIError from an error response.
func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var errResp errorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Code: errResp.Code, Message: errResp.Message}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
}
