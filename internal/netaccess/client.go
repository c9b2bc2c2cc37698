// Package netaccess provides the HTTP client used for metadata and cover
// lookups. Every request carries a User-Agent, POST bodies default to form
// encoding and redirects never downgrade from https to http.
package netaccess

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Request defaults
const (
	DefaultTimeout  = 30 * time.Second
	FormContentType = "application/x-www-form-urlencoded"
	MaxRedirects    = 10
)

// ErrInsecureRedirect is returned when a server redirects an https request
// to plain http
var ErrInsecureRedirect = errors.New("refusing redirect from https to http")

// UserAgent formats the default User-Agent from application name and
// version
func UserAgent(app, version string) string {
	return app + " " + version
}

// Client wraps an http.Client with player-wide request defaults
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a client sending userAgent unless a request sets its
// own. A zero timeout selects DefaultTimeout.
func NewClient(userAgent string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{userAgent: userAgent}
	c.httpClient = &http.Client{
		Timeout:       timeout,
		Transport:     &defaultsTransport{base: http.DefaultTransport, userAgent: userAgent},
		CheckRedirect: checkRedirect,
	}
	return c
}

// SetTransport replaces the underlying round tripper, e.g. for a proxy or a
// test server
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.httpClient.Transport = &defaultsTransport{base: rt, userAgent: c.userAgent}
}

// Do sends req with the client defaults applied
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// Get performs a GET request and returns the response body
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return c.readBody(req)
}

// Post performs a POST request. An empty contentType defaults to form
// encoding.
func (c *Client) Post(ctx context.Context, rawURL, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return c.readBody(req)
}

// PostForm performs a form-encoded POST request
func (c *Client) PostForm(ctx context.Context, rawURL string, values url.Values) ([]byte, error) {
	return c.Post(ctx, rawURL, FormContentType, strings.NewReader(values.Encode()))
}

func (c *Client) readBody(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= MaxRedirects {
		return fmt.Errorf("stopped after %d redirects", MaxRedirects)
	}
	if via[len(via)-1].URL.Scheme == "https" && req.URL.Scheme == "http" {
		return fmt.Errorf("%s: %w", req.URL, ErrInsecureRedirect)
	}
	return nil
}

// defaultsTransport fills in headers the caller left unset
type defaultsTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *defaultsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	needUA := req.Header.Get("User-Agent") == "" && t.userAgent != ""
	needType := req.Method == http.MethodPost && req.Header.Get("Content-Type") == ""
	if needUA || needType {
		// RoundTrippers must not modify the caller's request
		req = req.Clone(req.Context())
		if needUA {
			req.Header.Set("User-Agent", t.userAgent)
		}
		if needType {
			req.Header.Set("Content-Type", FormContentType)
		}
	}
	return t.base.RoundTrip(req)
}
