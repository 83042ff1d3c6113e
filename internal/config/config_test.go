package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 95, cfg.Site.MaxPages)
	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout())
	assert.Equal(t, 2*time.Second, cfg.Logic.PageDelay())
	assert.True(t, cfg.Logic.GateWebsiteOnEmail)
	assert.Equal(t, DefaultUserAgent, cfg.Fetch.Headers["User-Agent"])
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
site:
  search_url: "https://example.com/q/electricians/"
  max_pages: 3
fetch:
  engine: colly
logic:
  detail_delay_ms: 0
  gate_website_on_email: false
output:
  csv_file: out.csv
  csv_mode: append
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/q/electricians/", cfg.Site.SearchURL)
	assert.Equal(t, "https://www.goldenpages.ie", cfg.Site.SiteURL)
	assert.Equal(t, 3, cfg.Site.MaxPages)
	assert.Equal(t, EngineColly, cfg.Fetch.Engine)
	assert.Equal(t, 10, cfg.Fetch.TimeoutSec)
	assert.Equal(t, 0, cfg.Logic.DetailDelayMS)
	assert.Equal(t, 2000, cfg.Logic.PageDelayMS)
	assert.False(t, cfg.Logic.GateWebsiteOnEmail)
	assert.Equal(t, "out.csv", cfg.Output.CSVFile)
	assert.Equal(t, CSVModeAppend, cfg.Output.CSVMode)
	assert.Equal(t, "golden_pages_data.json", cfg.Output.JSONFile)
	assert.Equal(t, "div.listing_container", cfg.Selectors.ListingContainer)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero pages", "site:\n  max_pages: 0\n"},
		{"relative search url", "site:\n  search_url: /q/plumbers/\n"},
		{"unknown engine", "fetch:\n  engine: chrome\n"},
		{"zero timeout", "fetch:\n  timeout_sec: 0\n"},
		{"negative delay", "logic:\n  page_delay_ms: -5\n"},
		{"unknown csv mode", "output:\n  csv_mode: merge\n"},
		{"empty json file", "output:\n  json_file: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "site: [unterminated"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}
