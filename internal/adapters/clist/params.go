package clist

import (
	"net/url"
	"strconv"
	"time"
)

// isoSecond renders a UTC instant at second precision the way the
// aggregation API expects its time bounds.
const isoSecond = "2006-01-02T15:04:05"

// ContestParams builds the query parameters for a contest window search:
// lower bound is now, upper bound is now plus the window truncated to
// midnight. A nil resourceID is omitted entirely; no parameter is ever
// serialized with an empty value.
func (c *Client) ContestParams(now time.Time, days int, resourceID *int) url.Values {
	now = now.UTC()
	last := now.AddDate(0, 0, days)
	last = time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)

	params := c.defaultParams()
	params.Set("start__gte", now.Format(isoSecond))
	params.Set("start__lte", last.Format(isoSecond))
	if resourceID != nil {
		params.Set("resource_id", strconv.Itoa(*resourceID))
	}
	return params
}

// ProblemParams builds the query parameters for a contest's problem list,
// sorted by difficulty rating.
func (c *Client) ProblemParams(contestID int64) url.Values {
	params := c.defaultParams()
	params.Set("contest_ids", strconv.FormatInt(contestID, 10))
	params.Set("order_by", "rating")
	return params
}

// defaultParams holds the account and pagination defaults shared by every
// query. Absent credentials are dropped rather than sent empty.
func (c *Client) defaultParams() url.Values {
	params := url.Values{}
	if c.username != "" {
		params.Set("username", c.username)
	}
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	if c.orderBy != "" {
		params.Set("order_by", c.orderBy)
	}
	if c.limit > 0 {
		params.Set("limit", strconv.Itoa(c.limit))
	}
	return params
}
