// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klinikmitra/antrian/lib/record"
	"github.com/klinikmitra/antrian/lib/service"
)

// StoredSession holds the logged-in account's identity. Stored at the
// well-known path returned by SessionFilePath and loaded automatically
// by commands that need to know who is acting. Set up once via
// "antrian user login", then transparent.
type StoredSession struct {
	// NIK is the account's national identity number, the primary key
	// of the account store.
	NIK string `json:"nik"`

	// Nama is the account's display name.
	Nama string `json:"nama"`

	// Email is the account's email address.
	Email string `json:"email"`

	// Role is "admin" or "pasien".
	Role string `json:"role"`
}

// SessionFilePath returns the path to the session file. Checks the
// ANTRIAN_SESSION_FILE environment variable first, then falls back to
// ~/.config/antrian/session.json.
func SessionFilePath() string {
	if envPath := os.Getenv("ANTRIAN_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("/tmp", "antrian-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "antrian", "session.json")
}

// LoadSession reads the session from the well-known path. Returns a
// clear error message directing the user to "antrian user login" if
// no session exists.
func LoadSession() (service.Session, error) {
	path := SessionFilePath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return service.Session{}, fmt.Errorf("no session found at %s — run \"antrian user login\" first", path)
		}
		return service.Session{}, fmt.Errorf("reading session file %s: %w", path, err)
	}

	var stored StoredSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return service.Session{}, fmt.Errorf("parsing session file %s: %w", path, err)
	}
	if stored.NIK == "" {
		return service.Session{}, fmt.Errorf("session file %s has no nik", path)
	}
	if stored.Role != string(record.RoleAdmin) && stored.Role != string(record.RolePatient) {
		return service.Session{}, fmt.Errorf("session file %s has unknown role %q", path, stored.Role)
	}

	return service.Session{User: record.User{
		NIK:   stored.NIK,
		Nama:  stored.Nama,
		Email: stored.Email,
		Role:  record.Role(stored.Role),
	}}, nil
}

// SaveSession writes the session to the well-known path.
func SaveSession(session service.Session) error {
	path := SessionFilePath()

	data, err := json.MarshalIndent(StoredSession{
		NIK:   session.User.NIK,
		Nama:  session.User.Nama,
		Email: session.User.Email,
		Role:  string(session.User.Role),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", path, err)
	}
	return nil
}

// ClearSession removes the session file. Missing file is not an error.
func ClearSession() error {
	err := os.Remove(SessionFilePath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
