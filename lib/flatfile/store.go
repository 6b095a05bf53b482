// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

package flatfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store is a whole-file line store bound to one path. Records live one
// per line; the store neither parses nor interprets them.
//
// All operations serialize on the store's mutex, so concurrent
// in-process callers cannot interleave a load-modify-save cycle's
// write with another write to the same store. Cross-process
// coordination is explicitly not provided — the deployment model is
// single-process.
type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a Store for the given file path. The file need not
// exist yet; mutating operations create the parent directory on
// demand.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the file path the store is bound to.
func (s *Store) Path() string { return s.path }

// LoadLines reads every line of the file. A missing file is an empty
// store, not an error.
func (s *Store) LoadLines() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	content := strings.TrimSuffix(string(data), "\n")
	if content == "" {
		return nil, nil
	}
	return strings.Split(content, "\n"), nil
}

// SaveLines replaces the file content with exactly the given lines in
// the given order, one record per line with a trailing newline each.
//
// The write goes to a temp file in the same directory followed by a
// rename, so a crash mid-write leaves the previous content intact
// instead of a truncated file. Either all lines land or none do.
func (s *Store) SaveLines(lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	directory := filepath.Dir(s.path)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", directory, err)
	}

	tmpFile, err := os.CreateTemp(directory, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	for _, line := range lines {
		if _, err := tmpFile.WriteString(line + "\n"); err != nil {
			tmpFile.Close()
			return fmt.Errorf("writing %s: %w", tmpPath, err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", tmpPath, s.path, err)
	}

	success = true
	return nil
}

// AppendLine adds a single record line without rewriting the rest of
// the file.
func (s *Store) AppendLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	directory := filepath.Dir(s.path)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", directory, err)
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s for append: %w", s.path, err)
	}
	if _, err := file.WriteString(line + "\n"); err != nil {
		file.Close()
		return fmt.Errorf("appending to %s: %w", s.path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", s.path, err)
	}
	return nil
}

// Clear truncates the file to zero length, creating it (and its
// directory) if missing.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	directory := filepath.Dir(s.path)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", directory, err)
	}
	if err := os.WriteFile(s.path, nil, 0o644); err != nil {
		return fmt.Errorf("truncating %s: %w", s.path, err)
	}
	return nil
}
