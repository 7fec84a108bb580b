// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 30, cfg.Backend.TimeoutSeconds)
	assert.Equal(t, 120, cfg.Backend.EnhancedTimeoutSeconds)
	assert.Equal(t, 1, cfg.UserID)
	assert.True(t, cfg.Cache.Enabled)
	assert.False(t, cfg.Offline)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigOverlaysFile(t *testing.T) {
	t.Chdir(t.TempDir())
	content := []byte(`
backend:
  base_url: "https://desk.example.com"
  timeout_seconds: 10
user_id: 42
offline: true
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile("config.yaml", content, 0644))

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://desk.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 10, cfg.Backend.TimeoutSeconds)
	assert.Equal(t, 42, cfg.UserID)
	assert.True(t, cfg.Offline)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Untouched keys keep their defaults.
	assert.Equal(t, 120, cfg.Backend.EnhancedTimeoutSeconds)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoadConfigMalformedFileIsError(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("config.yaml", []byte("backend: [not: a map"), 0644))

	_, err := loadConfig()
	require.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home+"/.deskctl/cache", expandHome("~/.deskctl/cache"))
	assert.Equal(t, "/var/cache/deskctl", expandHome("/var/cache/deskctl"))
	assert.Equal(t, "relative/path", expandHome("relative/path"))
}
