// Package model contains domain models passed between layers.
package model

// Contest is one contest record from the aggregation API.
// Fields mirror the /contest/ payload; only what the formatter needs is kept.
type Contest struct {
	ID         int64  `json:"id"`
	Event      string `json:"event"`
	Start      string `json:"start"` // ISO-8601, UTC
	Href       string `json:"href"`
	ResourceID int    `json:"resource_id"`
}

// Problem is one problem record from the aggregation API.
type Problem struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	URL    string  `json:"url"`
}
