// Package twitter is a read-only client for the Twitter API v2.
//
// The client issues bearer-authenticated GET requests, detects upstream
// error envelopes (including missing resources reported inside 200
// responses), and normalizes raw records into the stable Tweet and User
// shapes consumed by the tool layer. Failures carry a tagged *Error so
// callers can branch on kind instead of matching message text. Nothing
// is retried; the first failure fails the call.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// DefaultBaseURL is the production Twitter API v2 root.
	DefaultBaseURL = "https://api.twitter.com/2"

	defaultTimeout = 30 * time.Second

	// Field selections requested on every relevant endpoint.
	tweetFields = "author_id,created_at,public_metrics"
	userFields  = "name,username,description,created_at,public_metrics"
)

// Client is a lightweight Twitter API v2 client.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root (tests, proxies). A trailing
// slash is trimmed so path joining stays predictable.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger replaces the client's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the given bearer token. The default HTTP
// client carries an otelhttp transport so outbound calls appear as
// spans when tracing is enabled.
func New(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("twitter bearer token is required")
	}

	c := &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetMe returns the account bound to the configured credential.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	q := url.Values{"user.fields": {userFields}}

	var env userEnvelope
	if err := c.get(ctx, "/users/me", q, &env); err != nil {
		return nil, err
	}
	return userFromEnvelope(env)
}

// GetUserByUsername resolves a handle to an account summary. A missing
// account fails with a not-found error.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	q := url.Values{"user.fields": {userFields}}

	var env userEnvelope
	if err := c.get(ctx, "/users/by/username/"+url.PathEscape(username), q, &env); err != nil {
		return nil, err
	}
	return userFromEnvelope(env)
}

// SearchTweets runs a full-text query over the upstream's recency
// window, preserving upstream order. The limit passes through as
// max_results; bounds are enforced by the calling tool, not here.
func (c *Client) SearchTweets(ctx context.Context, query string, limit int) ([]Tweet, error) {
	q := url.Values{
		"query":        {query},
		"max_results":  {strconv.Itoa(limit)},
		"tweet.fields": {tweetFields},
		"expansions":   {"author_id"},
		"user.fields":  {userFields},
	}

	var env tweetsEnvelope
	if err := c.get(ctx, "/tweets/search/recent", q, &env); err != nil {
		return nil, err
	}
	return tweetsFromEnvelope(env)
}

// GetUserTweets returns an account's tweets, newest first as upstream
// returns them.
func (c *Client) GetUserTweets(ctx context.Context, userID string, limit int) ([]Tweet, error) {
	q := url.Values{
		"max_results":  {strconv.Itoa(limit)},
		"tweet.fields": {tweetFields},
		"expansions":   {"author_id"},
		"user.fields":  {userFields},
	}

	var env tweetsEnvelope
	if err := c.get(ctx, "/users/"+url.PathEscape(userID)+"/tweets", q, &env); err != nil {
		return nil, err
	}
	return tweetsFromEnvelope(env)
}

// GetTweet fetches a single tweet with its author expanded. A missing
// tweet fails with a not-found error.
func (c *Client) GetTweet(ctx context.Context, id string) (*Tweet, error) {
	q := url.Values{
		"tweet.fields": {tweetFields},
		"expansions":   {"author_id"},
		"user.fields":  {userFields},
	}

	var env tweetEnvelope
	if err := c.get(ctx, "/tweets/"+url.PathEscape(id), q, &env); err != nil {
		return nil, err
	}
	if err := envelopeError(env.Errors); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, &Error{Kind: KindUpstream, Message: "response contained no data"}
	}

	t := normalizeTweet(*env.Data, authorIndex(env.Includes))
	return &t, nil
}

// SearchUsers matches accounts against a query.
func (c *Client) SearchUsers(ctx context.Context, query string, limit int) ([]User, error) {
	q := url.Values{
		"query":       {query},
		"max_results": {strconv.Itoa(limit)},
		"user.fields": {userFields},
	}

	var env usersEnvelope
	if err := c.get(ctx, "/users/search", q, &env); err != nil {
		return nil, err
	}
	if err := envelopeError(env.Errors); err != nil {
		return nil, err
	}

	users := make([]User, 0, len(env.Data))
	for _, raw := range env.Data {
		users = append(users, normalizeUser(raw))
	}
	return users, nil
}

func userFromEnvelope(env userEnvelope) (*User, error) {
	if err := envelopeError(env.Errors); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, &Error{Kind: KindUpstream, Message: "response contained no data"}
	}
	u := normalizeUser(*env.Data)
	return &u, nil
}

func tweetsFromEnvelope(env tweetsEnvelope) ([]Tweet, error) {
	if err := envelopeError(env.Errors); err != nil {
		return nil, err
	}

	authors := authorIndex(env.Includes)
	tweets := make([]Tweet, 0, len(env.Data))
	for _, raw := range env.Data {
		tweets = append(tweets, normalizeTweet(raw, authors))
	}
	return tweets, nil
}

// get issues an authenticated GET and decodes the response into
// result. Non-2xx statuses and undecodable bodies become tagged
// errors.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	c.logger.Debug("twitter API request",
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &Error{
			Kind:       KindMalformed,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("invalid JSON in response body: %v", err),
		}
	}
	return nil
}

// statusError maps a non-2xx response to a tagged error, pulling the
// most specific message out of the body.
func statusError(status int, body []byte) *Error {
	msg := upstreamMessage(body)
	kind := KindHTTP

	switch status {
	case http.StatusTooManyRequests:
		kind = KindRateLimited
		if msg == "" {
			msg = "rate limit exceeded"
		}
	case http.StatusNotFound:
		kind = KindNotFound
		if msg == "" {
			msg = "not found"
		}
	default:
		if msg == "" {
			msg = http.StatusText(status)
		}
	}

	return &Error{Kind: kind, StatusCode: status, Message: msg}
}

// upstreamMessage picks the most specific message from an error body,
// falling through detail, then title, then the raw body text.
func upstreamMessage(body []byte) string {
	var payload struct {
		Detail string     `json:"detail"`
		Title  string     `json:"title"`
		Errors []apiError `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if len(payload.Errors) > 0 {
			if payload.Errors[0].Detail != "" {
				return payload.Errors[0].Detail
			}
			if payload.Errors[0].Title != "" {
				return payload.Errors[0].Title
			}
		}
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Title != "" {
			return payload.Title
		}
	}
	return strings.TrimSpace(string(body))
}
