// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Storage.UsersFile != "users.txt" {
		t.Errorf("expected users_file=users.txt, got %s", cfg.Storage.UsersFile)
	}
	if cfg.Storage.TicketsFile != "antrian.txt" {
		t.Errorf("expected tickets_file=antrian.txt, got %s", cfg.Storage.TicketsFile)
	}
	if got := cfg.PromoteAfter(); got != 60*time.Second {
		t.Errorf("expected promote_after=60s, got %s", got)
	}
	if got := cfg.RefreshInterval(); got != 5*time.Second {
		t.Errorf("expected refresh_interval=5s, got %s", got)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad_WithoutAntrianConfig(t *testing.T) {
	t.Setenv("ANTRIAN_CONFIG", "")
	os.Unsetenv("ANTRIAN_CONFIG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without ANTRIAN_CONFIG failed: %v", err)
	}
	if cfg.Storage.UsersFile != "users.txt" {
		t.Errorf("expected default users_file, got %s", cfg.Storage.UsersFile)
	}
}

func TestLoad_WithAntrianConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "antrian.yaml")

	configContent := `
storage:
  root: /test/data
queue:
  promote_after: 2m
departments:
  - Poli Umum
  - Poli Mata
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("ANTRIAN_CONFIG", configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Storage.Root != "/test/data" {
		t.Errorf("expected root=/test/data, got %s", cfg.Storage.Root)
	}
	// Unset fields keep their defaults.
	if cfg.Storage.UsersFile != "users.txt" {
		t.Errorf("expected default users_file, got %s", cfg.Storage.UsersFile)
	}
	if got := cfg.PromoteAfter(); got != 2*time.Minute {
		t.Errorf("expected promote_after=2m, got %s", got)
	}
	if len(cfg.Departments) != 2 || cfg.Departments[1] != "Poli Mata" {
		t.Errorf("unexpected departments: %v", cfg.Departments)
	}
}

func TestPathResolution(t *testing.T) {
	cfg := Default()
	cfg.Storage.Root = "/data/antrian"
	cfg.Storage.TicketsFile = "/var/lib/antrian/queue.txt"

	if got := cfg.UsersPath(); got != "/data/antrian/users.txt" {
		t.Errorf("relative file not joined to root: %s", got)
	}
	if got := cfg.TicketsPath(); got != "/var/lib/antrian/queue.txt" {
		t.Errorf("absolute file altered: %s", got)
	}
}

func TestExpandVariables(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "antrian.yaml")

	configContent := `
storage:
  root: ${HOME}/antrian-data
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("HOME", "/home/tester")

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Storage.Root != "/home/tester/antrian-data" {
		t.Errorf("expected ${HOME} expanded, got %s", cfg.Storage.Root)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Storage.Root = ""
	cfg.Queue.PromoteAfter = "soon"
	cfg.Dashboard.RefreshInterval = "-5s"
	cfg.Departments = []string{"Poli Umum", ""}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors, got nil")
	}
	for _, want := range []string{
		"storage.root is required",
		"queue.promote_after",
		"refresh_interval must be positive",
		"departments[1] is empty",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %q, got %q", want, err.Error())
		}
	}
}

func TestValidateRejectsSharedPath(t *testing.T) {
	cfg := Default()
	cfg.Storage.UsersFile = "data.txt"
	cfg.Storage.TicketsFile = "data.txt"

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "same path") {
		t.Fatalf("expected shared-path error, got %v", err)
	}
}

func TestEnsurePaths(t *testing.T) {
	cfg := Default()
	cfg.Storage.Root = filepath.Join(t.TempDir(), "nested", "antrian")

	if err := cfg.EnsurePaths(); err != nil {
		t.Fatalf("EnsurePaths() failed: %v", err)
	}
	info, err := os.Stat(cfg.Storage.Root)
	if err != nil || !info.IsDir() {
		t.Fatalf("root not created: %v", err)
	}
}
