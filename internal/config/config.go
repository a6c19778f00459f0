// Package config defines assistant configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env on top.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"path/filepath"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// ClistUsername and ClistAPIKey authenticate against the contest
	// aggregation API (query-string credentials).
	ClistUsername string `koanf:"clist_username"`
	ClistAPIKey   string `koanf:"clist_api_key"`

	// ClistBaseURL points at the aggregation API root.
	ClistBaseURL string `koanf:"clist_base_url"`

	// LuoguBaseURL points at the judge site root.
	LuoguBaseURL string `koanf:"luogu_base_url"`

	// Days is the default contest query window in days.
	Days int `koanf:"days"`

	// Limit caps the number of records per query.
	Limit int `koanf:"limit"`

	// RemindLeadMinutes is how long before contest start a reminder fires.
	// Carried for subscription tooling; unused by the query pipelines.
	RemindLeadMinutes int `koanf:"remind_lead_minutes"`

	// OrderBy is the contest result sort field.
	OrderBy string `koanf:"order_by"`

	// DataDir holds the binding store and rendered cards.
	DataDir string `koanf:"data_dir"`

	// CardWidth is the rasterization viewport width in pixels.
	CardWidth int `koanf:"card_width"`

	// CardScale is the device scale factor for rasterization.
	CardScale float64 `koanf:"card_scale"`

	// MetricsAddr, when non-empty, serves Prometheus metrics on this address.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		ClistUsername:     "",
		ClistAPIKey:       "",
		ClistBaseURL:      "https://clist.by/api/v4",
		LuoguBaseURL:      "https://www.luogu.com.cn",
		Days:              7,
		Limit:             20,
		RemindLeadMinutes: 30,
		OrderBy:           "start",
		DataDir:           "data",
		CardWidth:         1170,
		CardScale:         2,
		MetricsAddr:       "",
	}
}

// BindingPath returns the location of the user binding document.
func (c *Config) BindingPath() string {
	return filepath.Join(c.DataDir, "luogu", "users.json")
}

// CardDir returns the directory holding rendered profile cards.
func (c *Config) CardDir() string {
	return filepath.Join(c.DataDir, "luogu", "cards")
}
