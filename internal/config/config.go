// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// BaseURL is the league platform's export API base.
	BaseURL string `koanf:"base_url"`

	// LeagueIDs lists the leagues this instance serves. The first entry
	// is the default league for unqualified requests; the whole list is
	// the contract-action allow-list.
	LeagueIDs []string `koanf:"league_ids"`

	// SeasonYear is the season whose picks and standings are computed.
	SeasonYear int `koanf:"season_year"`

	// FranchiseCount is the league size; draft rounds have this many
	// regular picks.
	FranchiseCount int `koanf:"franchise_count"`

	// TimeZone is the league-local zone used for contract windows.
	TimeZone string `koanf:"time_zone"`

	// RefreshQueueSize bounds the in-memory refresh job queue.
	RefreshQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of refresh workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the in-flight refresh tracker.
	DedupeSize int `koanf:"dedupe_size"`

	// FetchTimeoutMS bounds each upstream export request.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// FetchDelayMS is the polite delay between upstream requests.
	FetchDelayMS int `koanf:"fetch_delay_ms"`

	// RefreshIntervalMS is the period of the background refresh loop.
	// Zero disables periodic refresh; snapshots then update only via
	// POST /refresh.
	RefreshIntervalMS int `koanf:"refresh_interval_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		BaseURL:           "https://api.myfantasyleague.com/2026",
		LeagueIDs:         nil,
		SeasonYear:        2026,
		FranchiseCount:    16,
		TimeZone:          "America/New_York",
		RefreshQueueSize:  1024,
		WorkerCount:       runtime.NumCPU(),
		DedupeSize:        4096,
		FetchTimeoutMS:    20_000,
		FetchDelayMS:      250,
		RefreshIntervalMS: 0,
	}
}
