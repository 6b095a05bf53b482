// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the queue tracker.
//
// Configuration is loaded from a single YAML file specified by:
//   - ANTRIAN_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery beyond the built-in
// defaults, which keep the tool usable with no config file at all.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for the queue tracker.
type Config struct {
	// Storage configures where the flat-file stores live.
	Storage StorageConfig `yaml:"storage"`

	// Queue configures the ticket lifecycle.
	Queue QueueConfig `yaml:"queue"`

	// Dashboard configures the interactive dashboard.
	Dashboard DashboardConfig `yaml:"dashboard"`

	// Departments is the list of clinic departments a ticket may be
	// filed under. Empty means the built-in default list.
	Departments []string `yaml:"departments"`
}

// StorageConfig configures the data files.
type StorageConfig struct {
	// Root is the base directory for data files.
	Root string `yaml:"root"`

	// UsersFile is the account store, relative to Root unless absolute.
	UsersFile string `yaml:"users_file"`

	// TicketsFile is the queue store, relative to Root unless absolute.
	TicketsFile string `yaml:"tickets_file"`
}

// QueueConfig configures the ticket lifecycle.
type QueueConfig struct {
	// PromoteAfter is how long a ticket stays in Baru before it is
	// promoted to Sedang Berlangsung on read. Default: 60s.
	PromoteAfter string `yaml:"promote_after"`
}

// DashboardConfig configures the interactive dashboard.
type DashboardConfig struct {
	// RefreshInterval is how often the dashboard reloads the queue.
	// Default: 5s.
	RefreshInterval string `yaml:"refresh_interval"`
}

// Default returns the default configuration. The defaults are complete
// enough that no config file is required.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Storage: StorageConfig{
			Root:        filepath.Join(homeDir, ".local", "share", "antrian"),
			UsersFile:   "users.txt",
			TicketsFile: "antrian.txt",
		},
		Queue: QueueConfig{
			PromoteAfter: "60s",
		},
		Dashboard: DashboardConfig{
			RefreshInterval: "5s",
		},
	}
}

// Load loads configuration from the ANTRIAN_CONFIG environment
// variable, falling back to defaults when it is not set.
func Load() (*Config, error) {
	configPath := os.Getenv("ANTRIAN_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merged over
// the defaults. The only expansion performed is ${HOME} and similar
// path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Storage.Root = expandVars(c.Storage.Root, vars)
	vars["ANTRIAN_ROOT"] = c.Storage.Root

	c.Storage.UsersFile = expandVars(c.Storage.UsersFile, vars)
	c.Storage.TicketsFile = expandVars(c.Storage.TicketsFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// UsersPath returns the absolute path of the account store.
func (c *Config) UsersPath() string {
	return c.resolve(c.Storage.UsersFile)
}

// TicketsPath returns the absolute path of the queue store.
func (c *Config) TicketsPath() string {
	return c.resolve(c.Storage.TicketsFile)
}

func (c *Config) resolve(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(c.Storage.Root, file)
}

// PromoteAfter returns the parsed promotion threshold. Call Validate
// first; an unparseable value falls back to the default here.
func (c *Config) PromoteAfter() time.Duration {
	d, err := time.ParseDuration(c.Queue.PromoteAfter)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// RefreshInterval returns the parsed dashboard refresh interval. Call
// Validate first; an unparseable value falls back to the default here.
func (c *Config) RefreshInterval() time.Duration {
	d, err := time.ParseDuration(c.Dashboard.RefreshInterval)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Storage.Root == "" {
		errs = append(errs, fmt.Errorf("storage.root is required"))
	}
	if c.Storage.UsersFile == "" {
		errs = append(errs, fmt.Errorf("storage.users_file is required"))
	}
	if c.Storage.TicketsFile == "" {
		errs = append(errs, fmt.Errorf("storage.tickets_file is required"))
	}
	if c.Storage.UsersFile != "" && c.Storage.TicketsFile != "" &&
		c.UsersPath() == c.TicketsPath() {
		errs = append(errs, fmt.Errorf("storage.users_file and storage.tickets_file resolve to the same path"))
	}

	if d, err := time.ParseDuration(c.Queue.PromoteAfter); err != nil {
		errs = append(errs, fmt.Errorf("queue.promote_after: %w", err))
	} else if d <= 0 {
		errs = append(errs, fmt.Errorf("queue.promote_after must be positive"))
	}

	if d, err := time.ParseDuration(c.Dashboard.RefreshInterval); err != nil {
		errs = append(errs, fmt.Errorf("dashboard.refresh_interval: %w", err))
	} else if d <= 0 {
		errs = append(errs, fmt.Errorf("dashboard.refresh_interval must be positive"))
	}

	for i, dept := range c.Departments {
		if dept == "" {
			errs = append(errs, fmt.Errorf("departments[%d] is empty", i))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsurePaths creates the data directory if it doesn't exist.
func (c *Config) EnsurePaths() error {
	dirs := map[string]bool{
		c.Storage.Root:                true,
		filepath.Dir(c.UsersPath()):   true,
		filepath.Dir(c.TicketsPath()): true,
	}
	for dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}
