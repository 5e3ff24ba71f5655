package config

import "time"

// Config holds runtime settings for the catalog console.
//
// Fields:
//   - RecordAPIBaseURL: base URL of the record API (collections live under it).
//   - StorageAPIBaseURL: base URL of the binary-asset storage service.
//   - AuthAPIBaseURL: base URL of the authentication endpoint.
//   - LocalDBPath: path of the sqlite file holding the persisted session token.
//   - RequestTimeout: per-request timeout for record and auth calls.
//   - UploadTimeout: timeout for asset uploads, which can be long-running.
type Config struct {
	RecordAPIBaseURL  string
	StorageAPIBaseURL string
	AuthAPIBaseURL    string
	LocalDBPath       string
	RequestTimeout    time.Duration
	UploadTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RecordAPIBaseURL = "https://api.arcdatum.com/api"
	c.StorageAPIBaseURL = "https://ftp.arcdatum.com/api"
	c.AuthAPIBaseURL = "https://api.arcdatum.com/api"
	c.LocalDBPath = "console.db"
	c.RequestTimeout = 30 * time.Second
	c.UploadTimeout = 10 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
