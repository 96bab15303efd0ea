// Package client is the Session & Task Client for the todo API. It keeps the
// bearer token in a session.Session, attaches it to task requests, and turns
// non-success responses into *Error values.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redmonkez12/go-todo-client/internal/config"
	"github.com/redmonkez12/go-todo-client/internal/logging"
	"github.com/redmonkez12/go-todo-client/internal/session"
)

// DefaultBaseURL is used when New is given an empty base URL
const DefaultBaseURL = config.DefaultAPIURL

// Client is safe for concurrent use. Concurrent calls are not ordered with
// respect to each other.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	logger     *logging.Logger
	timeout    time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. Its transport is wrapped
// with request logging.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request logging and session warnings
func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a Client for baseURL that keeps its token in sess
func New(baseURL string, sess *session.Session, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: sess,
		logger:  logging.Discard(),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	for _, opt := range opts {
		opt(c)
	}

	base := &http.Client{}
	if c.httpClient != nil {
		copied := *c.httpClient
		base = &copied
	}
	base.Transport = logging.NewTransport(base.Transport, c.logger)
	c.httpClient = base

	return c
}

// BaseURL returns the API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns the session holding the token
func (c *Client) Session() *session.Session {
	return c.session
}

// taskPath builds /users/tasks/{id}[/suffix] with the id escaped
func taskPath(id string, suffix ...string) string {
	p := "/users/tasks/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// newRequest builds a request against the base URL. Content-Type is always
// JSON unless the caller overrides it.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// authorize attaches the bearer token when one is stored
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	token, err := c.session.Token(ctx)
	if err != nil {
		// Send without a token; the server will answer 401
		c.logger.Warn("failed to read session token", "error", err.Error())
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// do sends req, applying the configured timeout
func (c *Client) do(req *http.Request) (*http.Response, context.CancelFunc, error) {
	ctx, cancel := req.Context(), context.CancelFunc(func() {})
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		req = req.WithContext(ctx)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return resp, cancel, nil
}

// drain discards the rest of the body so the connection can be reused
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func decodeJSON(r io.Reader, out any) error {
	return json.NewDecoder(r).Decode(out)
}
