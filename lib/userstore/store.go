// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

// Package userstore is the user repository: it loads and saves
// [record.User] rows from the flat user file and answers the two
// queries the application needs, credential lookup and duplicate
// detection.
//
// The on-disk file is the sole source of truth. Loaded slices are
// snapshots; mutating a returned user changes nothing until the whole
// list is saved back.
package userstore

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/klinikmitra/antrian/lib/flatfile"
	"github.com/klinikmitra/antrian/lib/record"
)

// Store is the user repository.
type Store struct {
	file   *flatfile.Store
	logger *slog.Logger
}

// New returns a Store over the given file. If logger is nil,
// slog.Default() is used.
func New(file *flatfile.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{file: file, logger: logger}
}

// Load reads every user from the file. Rows that fail to decode are
// skipped and logged; a corrupt row never fails the load. A missing
// file yields an empty list.
func (s *Store) Load() ([]record.User, error) {
	lines, err := s.file.LoadLines()
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}

	users := make([]record.User, 0, len(lines))
	for _, line := range lines {
		user, err := record.DecodeUser(line)
		if err != nil {
			s.logger.Warn("skipping undecodable user row", "file", s.file.Path(), "error", err)
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// Save rewrites the file with exactly the given users, in order.
func (s *Store) Save(users []record.User) error {
	lines := make([]string, len(users))
	for i, user := range users {
		lines[i] = record.EncodeUser(user)
	}
	if err := s.file.SaveLines(lines); err != nil {
		return fmt.Errorf("saving users: %w", err)
	}
	return nil
}

// FindByCredential returns the first user, in file order, whose email
// or name matches identifier case-insensitively and whose password
// matches exactly. No match is an absence, not an error.
func (s *Store) FindByCredential(identifier, password string) (record.User, bool, error) {
	users, err := s.Load()
	if err != nil {
		return record.User{}, false, err
	}
	for _, user := range users {
		identifierMatches := strings.EqualFold(user.Email, identifier) ||
			strings.EqualFold(user.Nama, identifier)
		if identifierMatches && user.Password == password {
			return user, true, nil
		}
	}
	return record.User{}, false, nil
}

// ExistsByNIKOrEmail reports whether any stored user carries the given
// NIK or email. Used to reject duplicate registration before anything
// is written.
func (s *Store) ExistsByNIKOrEmail(nik, email string) (bool, error) {
	users, err := s.Load()
	if err != nil {
		return false, err
	}
	for _, user := range users {
		if user.NIK == nik || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}
