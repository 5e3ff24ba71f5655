package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envConfig mirrors Config for environment parsing. Variables are prefixed
// with ARC, e.g. ARC_RECORD_API_BASE_URL.
type envConfig struct {
	RecordAPIBaseURL  string        `envconfig:"RECORD_API_BASE_URL"`
	StorageAPIBaseURL string        `envconfig:"STORAGE_API_BASE_URL"`
	AuthAPIBaseURL    string        `envconfig:"AUTH_API_BASE_URL"`
	LocalDBPath       string        `envconfig:"LOCAL_DB_PATH"`
	RequestTimeout    time.Duration `envconfig:"REQUEST_TIMEOUT"`
	UploadTimeout     time.Duration `envconfig:"UPLOAD_TIMEOUT"`
}

// parseEnv overlays Config with values from the environment. Unset variables
// leave the corresponding Config field untouched.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := envconfig.Process("arc", &ec); err != nil {
		panic(err)
	}

	if ec.RecordAPIBaseURL != "" {
		cfg.RecordAPIBaseURL = ec.RecordAPIBaseURL
	}
	if ec.StorageAPIBaseURL != "" {
		cfg.StorageAPIBaseURL = ec.StorageAPIBaseURL
	}
	if ec.AuthAPIBaseURL != "" {
		cfg.AuthAPIBaseURL = ec.AuthAPIBaseURL
	}
	if ec.LocalDBPath != "" {
		cfg.LocalDBPath = ec.LocalDBPath
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.UploadTimeout != 0 {
		cfg.UploadTimeout = ec.UploadTimeout
	}
}
