package httputil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/siderail/pkg/buildinfo"
	"github.com/matzehuels/siderail/pkg/cache"
	"github.com/matzehuels/siderail/pkg/errors"
	"github.com/matzehuels/siderail/pkg/observability"
	"github.com/matzehuels/siderail/pkg/page"
)

const (
	// DefaultTTL is how long fetched documents are cached.
	DefaultTTL = time.Hour

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	// MaxBodyBytes is the largest document accepted.
	MaxBodyBytes = 4 << 20
)

// Client fetches remote documents.
type Client struct {
	HTTP   *http.Client
	Cache  cache.Cache
	TTL    time.Duration
	Logger *log.Logger
}

// NewClient creates a client caching into c. A nil cache disables caching.
func NewClient(c cache.Cache, logger *log.Logger) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		HTTP:   &http.Client{Timeout: DefaultTimeout},
		Cache:  c,
		TTL:    DefaultTTL,
		Logger: logger,
	}
}

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Document fetches, decodes and validates the page document at rawURL.
func (c *Client) Document(ctx context.Context, rawURL string, refresh bool) (*page.Document, error) {
	u, err := parseURL(rawURL)
	if err != nil {
		return nil, err
	}
	format, err := page.FormatFromPath(u.Path)
	if err != nil {
		return nil, err
	}
	data, err := c.Get(ctx, rawURL, refresh)
	if err != nil {
		return nil, err
	}
	return page.Decode(bytes.NewReader(data), format)
}

// Get returns the body at rawURL, from cache unless refresh is set.
func (c *Client) Get(ctx context.Context, rawURL string, refresh bool) ([]byte, error) {
	if _, err := parseURL(rawURL); err != nil {
		return nil, err
	}
	key := "fetch:" + cache.Hash([]byte(rawURL))

	if !refresh {
		if data, hit, err := c.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "fetch")
			c.Logger.Debug("fetch cache hit", "url", rawURL)
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "fetch")
	}

	var body []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		body, err = c.fetch(ctx, rawURL)
		if err != nil && cache.IsRetryable(err) {
			c.Logger.Debug("fetch failed, retrying", "url", rawURL, "err", err)
		}
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", rawURL)
		}
		return nil, err
	}

	if err := c.Cache.Set(ctx, key, body, c.TTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "fetch", len(body))
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "%s: not found", rawURL)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, cache.Retryable(errors.New(errors.ErrCodeNetwork, "%s: %s", rawURL, resp.Status))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, errors.New(errors.ErrCodeNetwork, "%s: %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", rawURL))
	}
	if len(body) > MaxBodyBytes {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "%s: document larger than %d bytes", rawURL, MaxBodyBytes)
	}
	return body, nil
}

func parseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "not an http(s) URL: %q", rawURL)
	}
	return u, nil
}
