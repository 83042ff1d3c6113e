package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golden_pages/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(CLI{})
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site:\n  max_pages: 10\nlog_level: warn\n"), 0644))

	cfg, err := loadConfig(CLI{
		Config:   path,
		MaxPages: 3,
		Engine:   config.EngineColly,
		CSV:      "out.csv",
		Append:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Site.MaxPages)
	assert.Equal(t, config.EngineColly, cfg.Fetch.Engine)
	assert.Equal(t, "out.csv", cfg.Output.CSVFile)
	assert.Equal(t, config.CSVModeAppend, cfg.Output.CSVMode)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfigInvalidOverride(t *testing.T) {
	_, err := loadConfig(CLI{MaxPages: -1})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
