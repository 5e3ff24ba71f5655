package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	data := `{
		"record_api_base_url": "http://localhost:5000/api",
		"request_timeout": "5s"
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd", "-config", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "http://localhost:5000/api", c.RecordAPIBaseURL)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "console.db", c.LocalDBPath)
	assert.Equal(t, 10*time.Minute, c.UploadTimeout)
}

func TestParseJson_NoFile(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd"}

	var c Config
	c.LoadDefaults()
	require.NotPanics(t, func() { parseJson(&c) })
	assert.Equal(t, "https://api.arcdatum.com/api", c.RecordAPIBaseURL)
}
