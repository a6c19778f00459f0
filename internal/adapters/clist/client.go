// Package clist is the outbound client for the contest aggregation API.
//
// Conventions:
// - All fetches take context.Context and honor a per-attempt timeout.
// - Failures never escape untyped: every path returns a *FetchError.
package clist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/tabriszx/algoassist/internal/domain/model"
	"github.com/tabriszx/algoassist/pkg/logger"
	"github.com/tabriszx/algoassist/pkg/metrics"
)

const (
	requestTimeout = 10 * time.Second
	maxAttempts    = 3
	maxBackoff     = 5 * time.Second
)

// Client queries the contest aggregation API.
type Client struct {
	http    *http.Client
	baseURL string

	username string
	apiKey   string
	orderBy  string
	limit    int

	sleep func(time.Duration)
	log   logger.Logger
}

// New creates a Client with default configuration.
func New(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: requestTimeout},
		baseURL: "https://clist.by/api/v4",
		orderBy: "start",
		limit:   20,
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Contests fetches contests starting within the next days, optionally
// filtered to one platform.
func (c *Client) Contests(ctx context.Context, days int, resourceID *int) ([]model.Contest, error) {
	params := c.ContestParams(time.Now(), days, resourceID)
	raw, err := c.fetchObjects(ctx, "contest", params)
	if err != nil {
		return nil, err
	}
	var contests []model.Contest
	if err := json.Unmarshal(raw, &contests); err != nil {
		return nil, &FetchError{Reason: ReasonTransport, Err: fmt.Errorf("decode contests: %w", err)}
	}
	return contests, nil
}

// Problems fetches the problem list of one contest, sorted by rating.
func (c *Client) Problems(ctx context.Context, contestID int64) ([]model.Problem, error) {
	params := c.ProblemParams(contestID)
	raw, err := c.fetchObjects(ctx, "problem", params)
	if err != nil {
		return nil, err
	}
	var problems []model.Problem
	if err := json.Unmarshal(raw, &problems); err != nil {
		return nil, &FetchError{Reason: ReasonTransport, Err: fmt.Errorf("decode problems: %w", err)}
	}
	return problems, nil
}

// envelope is the aggregation API response wrapper.
type envelope struct {
	Objects json.RawMessage `json:"objects"`
}

// fetchObjects GETs endpoint with params and returns the raw objects list.
// Retry policy: up to maxAttempts total. A timed-out attempt backs off
// min(2^attempt, 5)s and retries. A non-2xx status backs off 2^attempt
// seconds, except on the final attempt where the status becomes the failure.
// Any other transport failure fails immediately.
func (c *Client) fetchObjects(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	target := fmt.Sprintf("%s/%s/?%s", c.baseURL, endpoint, params.Encode())
	started := time.Now()
	defer func() {
		metrics.ObserveFetchDuration(endpoint, time.Since(started).Seconds())
	}()

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			metrics.RecordAPIRetry(endpoint)
		}

		body, ferr := c.doAttempt(ctx, target)
		if ferr == nil {
			var env envelope
			if err := json.Unmarshal(body, &env); err != nil {
				metrics.RecordAPIRequest(endpoint, "transport")
				return nil, &FetchError{Reason: ReasonTransport, Err: fmt.Errorf("decode envelope: %w", err)}
			}
			metrics.RecordAPIRequest(endpoint, "ok")
			if len(env.Objects) == 0 {
				return json.RawMessage("[]"), nil
			}
			return env.Objects, nil
		}

		switch ferr.Reason {
		case ReasonTimeout:
			if c.log != nil {
				c.log.Warn(ctx, "fetch timed out, backing off",
					logger.String("endpoint", endpoint),
					logger.Int("attempt", attempt+1))
			}
			if attempt < maxAttempts-1 {
				c.sleep(backoff(attempt, maxBackoff))
				continue
			}
			metrics.RecordAPIRequest(endpoint, "timeout")
			return nil, ferr

		case ReasonStatus:
			if attempt == maxAttempts-1 {
				if c.log != nil {
					c.log.Error(ctx, "fetch failed with HTTP status",
						logger.String("endpoint", endpoint),
						logger.Int("status", ferr.Status))
				}
				metrics.RecordAPIRequest(endpoint, "status")
				return nil, ferr
			}
			c.sleep(backoff(attempt, 0))
			continue

		default:
			if c.log != nil {
				c.log.Error(ctx, "fetch failed",
					logger.String("endpoint", endpoint),
					logger.Error(ferr.Err))
			}
			metrics.RecordAPIRequest(endpoint, "transport")
			return nil, ferr
		}
	}

	metrics.RecordAPIRequest(endpoint, "timeout")
	return nil, &FetchError{Reason: ReasonTimeout}
}

// doAttempt performs one GET and classifies its failure.
func (c *Client) doAttempt(ctx context.Context, target string) ([]byte, *FetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{Reason: ReasonTransport, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &FetchError{Reason: ReasonTimeout, Err: err}
		}
		return nil, &FetchError{Reason: ReasonTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &FetchError{Reason: ReasonStatus, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, &FetchError{Reason: ReasonTimeout, Err: err}
		}
		return nil, &FetchError{Reason: ReasonTransport, Err: err}
	}
	return body, nil
}

// backoff returns 2^attempt seconds, capped when cap is positive.
func backoff(attempt int, limit time.Duration) time.Duration {
	d := time.Duration(1<<uint(attempt)) * time.Second
	if limit > 0 && d > limit {
		return limit
	}
	return d
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
