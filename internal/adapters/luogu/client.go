// Package luogu is the outbound client for the judge site: user search,
// profile and practice-detail JSON endpoints.
package luogu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tabriszx/algoassist/internal/domain/model"
	"github.com/tabriszx/algoassist/pkg/logger"
	"github.com/tabriszx/algoassist/pkg/metrics"
)

const requestTimeout = 10 * time.Second

// Client queries the judge site.
type Client struct {
	http    *http.Client
	baseURL string
	log     logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL sets the judge site root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a Client with default configuration.
func New(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: requestTimeout},
		baseURL: "https://www.luogu.com.cn",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveUser turns a numeric id or a free-text name into a judge uid.
// An unmatched name returns ErrUserNotFound, never a transport error.
func (c *Client) ResolveUser(ctx context.Context, nameOrID string) (int64, error) {
	if uid, err := strconv.ParseInt(nameOrID, 10, 64); err == nil {
		return uid, nil
	}
	return c.searchUser(ctx, nameOrID)
}

// searchUser takes the first hit of the user search endpoint.
func (c *Client) searchUser(ctx context.Context, keyword string) (int64, error) {
	target := fmt.Sprintf("%s/api/user/search?keyword=%s", c.baseURL, url.QueryEscape(keyword))

	var result model.SearchResult
	if err := c.fetchJSON(ctx, "luogu_search", target, "", &result); err != nil {
		return 0, ErrUserNotFound
	}
	if len(result.Users) == 0 {
		return 0, ErrUserNotFound
	}
	return int64(result.Users[0].UID), nil
}

// Profile fetches the user document, then the practice detail with a referer
// derived from the profile URL, and merges the solved list in. Either half
// missing fails the whole fetch; partial data is not accepted.
func (c *Client) Profile(ctx context.Context, uid int64) (*model.Profile, error) {
	profileURL := fmt.Sprintf("%s/user/%d", c.baseURL, uid)

	var profile model.Profile
	if err := c.fetchJSON(ctx, "luogu_user", profileURL, "", &profile); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}

	practiceURL := profileURL + "/practice"
	var practice model.Practice
	if err := c.fetchJSON(ctx, "luogu_practice", practiceURL, profileURL, &practice); err != nil {
		if c.log != nil {
			c.log.Error(ctx, "practice detail fetch failed", logger.Int64("uid", uid), logger.Error(err))
		}
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}

	profile.Data.Passed = practice.Data.Passed
	return &profile, nil
}

// fetchJSON GETs target with the judge's content-only headers and decodes
// the body into v.
func (c *Client) fetchJSON(ctx context.Context, endpoint, target, referer string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}
	req.Header.Set("User-Agent", "")
	req.Header.Set("X-Lentille-Request", "content-only")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordAPIRequest(endpoint, "transport")
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordAPIRequest(endpoint, "status")
		return fmt.Errorf("%w: status %d", ErrRequest, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordAPIRequest(endpoint, "transport")
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		metrics.RecordAPIRequest(endpoint, "transport")
		return fmt.Errorf("%w: decode: %w", ErrRequest, err)
	}
	metrics.RecordAPIRequest(endpoint, "ok")
	return nil
}
