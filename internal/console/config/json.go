package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/TheCasperSolangi/arc-fun-front/internal/flagx"
	"github.com/TheCasperSolangi/arc-fun-front/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify timeouts either as strings like "30s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	RecordAPIBaseURL  string         `json:"record_api_base_url"`
	StorageAPIBaseURL string         `json:"storage_api_base_url"`
	AuthAPIBaseURL    string         `json:"auth_api_base_url"`
	LocalDBPath       string         `json:"local_db_path"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	UploadTimeout     timex.Duration `json:"upload_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// is given via the -c or -config flags. When no path is given, nothing is
// loaded. Empty JSON fields do not overwrite existing values, so the file
// may specify only the settings it cares about.
//
// Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.RecordAPIBaseURL != "" {
		cfg.RecordAPIBaseURL = jc.RecordAPIBaseURL
	}
	if jc.StorageAPIBaseURL != "" {
		cfg.StorageAPIBaseURL = jc.StorageAPIBaseURL
	}
	if jc.AuthAPIBaseURL != "" {
		cfg.AuthAPIBaseURL = jc.AuthAPIBaseURL
	}
	if jc.LocalDBPath != "" {
		cfg.LocalDBPath = jc.LocalDBPath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.UploadTimeout.Duration != 0 {
		cfg.UploadTimeout = time.Duration(jc.UploadTimeout.Duration)
	}
}
