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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the deskctl configuration, loaded from config.yaml when one
// exists next to the binary or at ~/.deskctl/config.yaml. Every field has
// a working default so the file is optional.
type Config struct {
	Backend struct {
		// BaseURL is the desk backend root, e.g. "http://localhost:8000".
		BaseURL string `yaml:"base_url"`

		// TimeoutSeconds applies to standard endpoints.
		TimeoutSeconds int `yaml:"timeout_seconds"`

		// EnhancedTimeoutSeconds applies to assistant/export endpoints.
		EnhancedTimeoutSeconds int `yaml:"enhanced_timeout_seconds"`
	} `yaml:"backend"`

	// UserID identifies the operator for chat sessions.
	UserID int `yaml:"user_id"`

	// Offline enables the demo data path (no backend required).
	Offline bool `yaml:"offline"`

	Cache struct {
		// Enabled turns on the last-known-good snapshot cache.
		Enabled bool `yaml:"enabled"`

		// Path is the BadgerDB directory. Supports ~ expansion.
		Path string `yaml:"path"`
	} `yaml:"cache"`

	Logging struct {
		// Level is debug, info, warn, or error.
		Level string `yaml:"level"`

		// Dir enables file logging when set. Supports ~ expansion.
		Dir string `yaml:"dir"`

		// JSON switches stderr logs to JSON.
		JSON bool `yaml:"json"`
	} `yaml:"logging"`

	// Personality is the output styling level
	// (full/standard/minimal/machine).
	Personality string `yaml:"personality"`
}

// defaultConfig returns the configuration used when no file is present.
func defaultConfig() Config {
	var cfg Config
	cfg.Backend.BaseURL = "http://localhost:8000"
	cfg.Backend.TimeoutSeconds = 30
	cfg.Backend.EnhancedTimeoutSeconds = 120
	cfg.UserID = 1
	cfg.Cache.Enabled = true
	cfg.Cache.Path = "~/.deskctl/cache"
	cfg.Logging.Level = "info"
	return cfg
}

// loadConfig reads the first config file found and overlays it on the
// defaults. A missing file is not an error; a malformed one is.
func loadConfig() (Config, error) {
	cfg := defaultConfig()

	for _, path := range configSearchPaths() {
		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		return cfg, nil
	}
	return cfg, nil
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	}
	return path
}

func configSearchPaths() []string {
	paths := []string{"config.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home+"/.deskctl/config.yaml")
	}
	return paths
}
