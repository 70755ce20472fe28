// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides functionality for working with the zg config.toml
// file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/googleapis/zygen/internal/discovery"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	configName = "config.toml"
	appName    = "zg"

	defaultLogLevel = "info"
	defaultTimeout  = "30s"
)

// Config holds the user settings of zg.
type Config struct {
	// CacheDir holds downloaded discovery documents and rebuilt trees.
	CacheDir string `toml:"cache-dir,omitempty"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log-level,omitempty"`
	// APIKey is required to download the documents of standalone services.
	APIKey       string `toml:"api-key,omitempty"`
	DiscoveryURL string `toml:"discovery-url,omitempty"`
	// Timeout bounds each download, as a Go duration string.
	Timeout string `toml:"timeout,omitempty"`
}

// Dir returns the directory holding config.toml and, by default, the cache.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate the home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// DefaultPath returns the path of the default config.toml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName), nil
}

// Default returns the configuration used when no file is present.
func Default() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return &Config{
		CacheDir:     dir,
		LogLevel:     defaultLogLevel,
		DiscoveryURL: discovery.DirectoryURL,
		Timeout:      defaultTimeout,
	}, nil
}

// Load reads filename and merges it over the defaults. A missing file yields
// the defaults, a malformed one is an error.
func Load(filename string) (*Config, error) {
	defaults, err := Default()
	if err != nil {
		return nil, err
	}
	contents, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return defaults, nil
	}
	if err != nil {
		return nil, err
	}
	var local Config
	if err := toml.Unmarshal(contents, &local); err != nil {
		return nil, fmt.Errorf("error reading configuration %s: %w", filename, err)
	}
	merged := Merge(defaults, &local)
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", filename, err)
	}
	return merged, nil
}

// Merge returns root with every non-empty field of local applied over it.
func Merge(root, local *Config) *Config {
	merged := *root
	if local.CacheDir != "" {
		merged.CacheDir = local.CacheDir
	}
	if local.LogLevel != "" {
		merged.LogLevel = local.LogLevel
	}
	if local.APIKey != "" {
		merged.APIKey = local.APIKey
	}
	if local.DiscoveryURL != "" {
		merged.DiscoveryURL = local.DiscoveryURL
	}
	if local.Timeout != "" {
		merged.Timeout = local.Timeout
	}
	return &merged
}

// Validate checks the values that need parsing.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.FetchTimeout(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("bad log-level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// FetchTimeout returns the download timeout, zero means no timeout.
func (c *Config) FetchTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("bad timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

// Write writes cfg to filename, creating its directory if needed.
func Write(filename string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, "# zg configuration")
	fmt.Fprintln(f, "")
	t := toml.NewEncoder(f)
	if err := t.Encode(cfg); err != nil {
		return err
	}
	return f.Close()
}
