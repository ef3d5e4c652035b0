package config

import "time"

// Config holds runtime settings for the Shareling CLI.
//
// Fields:
//   - BrokerBaseURL: base URL of the broker API (scheme://host[:port]).
//   - ShareBaseURL: prefix used to render public share links
//     (the frontend's /d/<fileId> route).
//   - RequestTimeout: per-request deadline the CLI layers on top of broker
//     calls. The orchestration core itself specifies no timeouts.
type Config struct {
	BrokerBaseURL  string
	ShareBaseURL   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BrokerBaseURL = "http://127.0.0.1:8080"
	c.ShareBaseURL = "http://127.0.0.1:8080/d"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
