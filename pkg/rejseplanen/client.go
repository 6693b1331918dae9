// Package rejseplanen is a thin client for the Rejseplanen.dk REST API.
// It validates query arguments, forwards them as query parameters and
// returns the decoded JSON body untouched.
package rejseplanen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NERVsystems/rejseplanenmcp/pkg/version"
)

const (
	// DefaultBaseURL is the public Rejseplanen REST endpoint
	DefaultBaseURL = "https://xmlopen.rejseplanen.dk/bin/rest.exe"

	// DefaultTimeout bounds every upstream request
	DefaultTimeout = 30 * time.Second
)

// Upstream endpoints
const (
	EndpointLocation       = "location"
	EndpointTrip           = "trip"
	EndpointDepartureBoard = "departureBoard"
	EndpointStopsNearby    = "stopsNearby"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the upstream base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header sent upstream.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithRateLimiter makes every request wait on rl before it is sent.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(c *Client) { c.limiter = rl }
}

// WithLogger sets the logger for the client
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// Client issues requests against the Rejseplanen API. It holds no
// per-call state and is safe for concurrent use.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	userAgent  string
	limiter    *RateLimiter
	logger     *slog.Logger
}

// NewClient creates a client with connection pooling and the default
// base URL and timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: version.UserAgent(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the upstream base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Request performs one GET against endpoint with params and returns the
// decoded JSON body. format=json is always sent, replacing any value in
// params; params itself is not modified. Failures are reported as
// *TimeoutError, *ConnectionError, *HTTPError or *ParseError.
func (c *Client) Request(ctx context.Context, endpoint string, params map[string]string) (any, error) {
	reqURL, err := url.Parse(c.baseURL + "/" + strings.TrimLeft(endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("build url for %s: %w", endpoint, err)
	}

	q := reqURL.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("format", "json")
	reqURL.RawQuery = q.Encode()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &ConnectionError{Endpoint: endpoint, Err: err}
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(endpoint, start, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(endpoint, start, err)
	}

	c.logger.Debug("rejseplanen request",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &HTTPError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	result, err := decodeJSON(body)
	if err != nil {
		return nil, &ParseError{Endpoint: endpoint, Err: err}
	}
	return result, nil
}

// transportError classifies a failed exchange. Only failures that took at
// least the configured timeout count as timeouts; an earlier deadline set
// by the caller is a connection failure.
func (c *Client) transportError(endpoint string, start time.Time, err error) error {
	if isTimeout(err) && time.Since(start) >= c.timeout {
		return &TimeoutError{Endpoint: endpoint, Timeout: c.timeout, Err: err}
	}
	return &ConnectionError{Endpoint: endpoint, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// decodeJSON decodes exactly one JSON value. Numbers stay json.Number so
// they are relayed with their original text.
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty response body")
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}
