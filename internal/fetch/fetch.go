// Package fetch wraps net/http for the small set of GET requests the mirror
// issues: stylesheets from the fonts API and the font files they reference.
package fetch

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
)

// DefaultUserAgent is sent when no user agent is configured.
// The fonts API selects the font format from the user agent; a modern
// browser string yields woff2 files.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// MaxBodySize caps a single decoded response body (default 32MB).
var MaxBodySize int64 = 32 << 20

// Sentinel errors for fetch operations.
var (
	ErrRequest      = errors.New("request failed")
	ErrHTTPStatus   = errors.New("unexpected HTTP status")
	ErrBodyTooLarge = errors.New("response body exceeds maximum size")
	ErrEncoding     = errors.New("unsupported content encoding")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s (%s)", ErrHTTPStatus, e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Unwrap lets errors.Is match ErrHTTPStatus.
func (e *StatusError) Unwrap() error {
	return ErrHTTPStatus
}

// Client performs GET requests with content decoding and status checks.
type Client struct {
	http      *http.Client
	userAgent string
	timeout   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (tests use httptest clients).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent sets the User-Agent header. Empty keeps the default.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout bounds each request. Zero means no timeout beyond the context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a Client. The default http.Client follows up to 10 redirects.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches url and returns the decoded body.
// Transport failures wrap ErrRequest; non-2xx responses return *StatusError.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Encoding", "br, gzip")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := decodeBody(resp)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body of %s: %v", ErrRequest, url, err)
	}
	if int64(len(data)) > MaxBodySize {
		return nil, fmt.Errorf("%w: %s (max %d bytes)", ErrBodyTooLarge, url, MaxBodySize)
	}
	return data, nil
}

// decodeBody wraps the response body according to Content-Encoding.
// Setting Accept-Encoding by hand disables net/http's transparent gzip,
// so both encodings are handled here.
func decodeBody(resp *http.Response) (io.Reader, error) {
	switch enc := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))); enc {
	case "", "identity":
		return resp.Body, nil
	case "br":
		return brotli.NewReader(resp.Body), nil
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip: %v", ErrRequest, err)
		}
		return zr, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrEncoding, enc)
	}
}
