// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for wiring the
// tracker's stores and service against a temporary directory and a
// fake clock.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/klinikmitra/antrian/lib/clock"
	"github.com/klinikmitra/antrian/lib/flatfile"
	"github.com/klinikmitra/antrian/lib/queue"
	"github.com/klinikmitra/antrian/lib/record"
	"github.com/klinikmitra/antrian/lib/service"
	"github.com/klinikmitra/antrian/lib/userstore"
)

// Epoch is the fake clock's starting instant.
var Epoch = time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)

// Fixture is a fully wired tracker backed by a temp directory. Time
// is controlled through Clock.
type Fixture struct {
	Dir     string
	Clock   *clock.FakeClock
	Users   *userstore.Store
	Tickets *queue.Store
	Service *service.Service
}

// NewFixture builds a Fixture rooted in t.TempDir().
func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	dir := t.TempDir()
	fake := clock.Fake(Epoch)
	users := userstore.New(flatfile.New(filepath.Join(dir, "users.txt")), nil)
	tickets := queue.New(queue.Config{
		File:  flatfile.New(filepath.Join(dir, "antrian.txt")),
		Clock: fake,
	})

	return &Fixture{
		Dir:     dir,
		Clock:   fake,
		Users:   users,
		Tickets: tickets,
		Service: service.New(service.Config{
			Users:   users,
			Tickets: tickets,
			Clock:   fake,
		}),
	}
}

// UsersPath returns the account store path.
func (f *Fixture) UsersPath() string { return filepath.Join(f.Dir, "users.txt") }

// TicketsPath returns the queue store path.
func (f *Fixture) TicketsPath() string { return filepath.Join(f.Dir, "antrian.txt") }

// SeedAdmin writes an admin account and returns its session.
func (f *Fixture) SeedAdmin(t *testing.T) service.Session {
	t.Helper()

	admin := record.User{
		NIK:      "100",
		Nama:     "Petugas",
		Email:    "admin@klinik.test",
		Password: "admin",
		Role:     record.RoleAdmin,
		Jabatan:  "Administrator",
	}
	created, err := f.Service.SeedAdmin(admin)
	if err != nil {
		t.Fatalf("seeding admin: %v", err)
	}
	if !created {
		t.Fatal("admin already seeded")
	}
	return service.Session{User: admin}
}

// RegisterPatient registers a patient account and returns its session.
func (f *Fixture) RegisterPatient(t *testing.T, nik, nama string) service.Session {
	t.Helper()

	user, err := f.Service.Register(service.Registration{
		NIK:      nik,
		Nama:     nama,
		Email:    nama + "@mail.test",
		Password: "rahasia",
	})
	if err != nil {
		t.Fatalf("registering patient %s: %v", nik, err)
	}
	return service.Session{User: user}
}

// CreateTicket files a ticket for the session's own NIK.
func (f *Fixture) CreateTicket(t *testing.T, session service.Session, department, complaint string) record.Ticket {
	t.Helper()

	ticket, err := f.Service.CreateTicket(session, service.TicketDraft{
		PatientNIK:  session.User.NIK,
		PatientName: session.User.Nama,
		Department:  department,
		Complaint:   complaint,
	})
	if err != nil {
		t.Fatalf("creating ticket: %v", err)
	}
	return ticket
}
