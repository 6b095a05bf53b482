// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

package queue

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/klinikmitra/antrian/lib/clock"
	"github.com/klinikmitra/antrian/lib/flatfile"
	"github.com/klinikmitra/antrian/lib/record"
)

// DefaultPromoteAfter is how long a ticket stays in status Baru before
// LoadAndPromoteStale moves it to Sedang Berlangsung.
const DefaultPromoteAfter = 60 * time.Second

// Config configures a ticket Store. Zero-valued fields get defaults.
type Config struct {
	// File is the backing line store. Required.
	File *flatfile.Store

	// Clock drives the stale-ticket promotion rule. Nil means
	// clock.Real().
	Clock clock.Clock

	// Logger receives decode-skip diagnostics. Nil means
	// slog.Default().
	Logger *slog.Logger

	// PromoteAfter is the promotion threshold. Zero means
	// DefaultPromoteAfter.
	PromoteAfter time.Duration
}

// Store is the ticket repository. The on-disk file is the sole source
// of truth; every returned slice is a snapshot, and callers that
// mutate a ticket and want it persisted must save the full list back.
type Store struct {
	file         *flatfile.Store
	clk          clock.Clock
	logger       *slog.Logger
	promoteAfter time.Duration
}

// New returns a ticket Store.
func New(cfg Config) *Store {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.PromoteAfter == 0 {
		cfg.PromoteAfter = DefaultPromoteAfter
	}
	return &Store{
		file:         cfg.File,
		clk:          cfg.Clock,
		logger:       cfg.Logger,
		promoteAfter: cfg.PromoteAfter,
	}
}

// Load reads every ticket from the file. Rows that fail to decode are
// skipped and logged, never fatal to the batch. Legacy 9-column rows
// come back migrated in memory; the file is untouched until the next
// explicit save.
func (s *Store) Load() ([]record.Ticket, error) {
	lines, err := s.file.LoadLines()
	if err != nil {
		return nil, fmt.Errorf("loading tickets: %w", err)
	}

	tickets := make([]record.Ticket, 0, len(lines))
	for _, line := range lines {
		ticket, err := record.DecodeTicket(line)
		if err != nil {
			s.logger.Warn("skipping undecodable ticket row", "file", s.file.Path(), "error", err)
			continue
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

// Save rewrites the file with exactly the given tickets, in order.
func (s *Store) Save(tickets []record.Ticket) error {
	lines := make([]string, len(tickets))
	for i, ticket := range tickets {
		lines[i] = record.EncodeTicket(ticket)
	}
	if err := s.file.SaveLines(lines); err != nil {
		return fmt.Errorf("saving tickets: %w", err)
	}
	return nil
}

// NextID returns max(existing ids) + 1, or 1 for an empty store. It
// re-reads the authoritative on-disk state on every call — another
// session may have appended tickets since the last load, so a cached
// counter would hand out duplicates.
func (s *Store) NextID() (int, error) {
	tickets, err := s.Load()
	if err != nil {
		return 0, err
	}
	highest := 0
	for _, ticket := range tickets {
		if ticket.ID > highest {
			highest = ticket.ID
		}
	}
	return highest + 1, nil
}

// AppendOne adds a single ticket without rewriting the rest of the
// file. The caller obtains the id from NextID first, then appends.
func (s *Store) AppendOne(ticket record.Ticket) error {
	if err := s.file.AppendLine(record.EncodeTicket(ticket)); err != nil {
		return fmt.Errorf("appending ticket %d: %w", ticket.ID, err)
	}
	return nil
}

// RemoveByID deletes the ticket with the given id, rewriting the file
// without it. A non-existent id leaves the stored list unchanged.
func (s *Store) RemoveByID(id int) error {
	tickets, err := s.Load()
	if err != nil {
		return err
	}

	kept := tickets[:0]
	for _, ticket := range tickets {
		if ticket.ID != id {
			kept = append(kept, ticket)
		}
	}
	if len(kept) == len(tickets) {
		return nil
	}
	return s.Save(kept)
}

// UpdateStatus sets the status of the ticket with the given id and
// rewrites the file. A non-existent id is a no-op, not an error.
func (s *Store) UpdateStatus(id int, status record.Status) error {
	tickets, err := s.Load()
	if err != nil {
		return err
	}

	changed := false
	for i := range tickets {
		if tickets[i].ID == id {
			tickets[i].Status = status
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}
	return s.Save(tickets)
}

// Clear truncates the ticket file to empty.
func (s *Store) Clear() error {
	if err := s.file.Clear(); err != nil {
		return fmt.Errorf("clearing tickets: %w", err)
	}
	return nil
}

// LoadAndPromoteStale loads all tickets and applies the one automatic
// lifecycle transition: any ticket still in status Baru whose age has
// reached the promotion threshold moves to Sedang Berlangsung. If
// anything changed, the full updated list is persisted before
// returning.
//
// This is the only place auto-promotion happens; there is no
// background scheduler, so staleness is corrected on the next read.
// Viewing the list is therefore an operation with a side effect. A
// second call immediately after the first finds nothing left to
// promote and performs no further write.
func (s *Store) LoadAndPromoteStale() ([]record.Ticket, error) {
	tickets, err := s.Load()
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	promoted := 0
	for i := range tickets {
		if tickets[i].Status != record.StatusNew {
			continue
		}
		if tickets[i].Age(now) >= s.promoteAfter {
			tickets[i].Status = record.StatusInProgress
			promoted++
		}
	}

	if promoted > 0 {
		if err := s.Save(tickets); err != nil {
			return nil, fmt.Errorf("persisting %d promoted tickets: %w", promoted, err)
		}
		s.logger.Info("promoted stale tickets", "count", promoted, "threshold", s.promoteAfter)
	}
	return tickets, nil
}
