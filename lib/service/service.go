// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

// Package service exposes the queue tracker's collaborator-facing
// operations — the calls a front end (CLI, dashboard) makes: account
// registration and authentication, ticket creation, listing, triage,
// and removal. Each operation is a thin call into the repositories.
//
// The caller's identity travels as an explicit [Session] value rather
// than process-wide mutable state, so any component that needs to know
// who is acting receives it as an argument.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/klinikmitra/antrian/lib/clock"
	"github.com/klinikmitra/antrian/lib/queue"
	"github.com/klinikmitra/antrian/lib/record"
	"github.com/klinikmitra/antrian/lib/userstore"
)

// ErrInvalidCredential is returned by Authenticate when no stored user
// matches the identifier and password pair.
var ErrInvalidCredential = errors.New("invalid credential")

// ErrDuplicateUser is returned by Register when the NIK or email is
// already registered. Nothing is written when this is returned.
var ErrDuplicateUser = errors.New("nik or email already registered")

// ErrNotAuthorized is returned when a staff-only operation is invoked
// with a patient session.
var ErrNotAuthorized = errors.New("staff privileges required")

// ValidationError reports caller input that fails a precondition:
// a missing required field, an unknown department, an invalid status
// value, or a transition out of a terminal state.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

func validation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// DefaultDepartments is the clinic's department list used when the
// configuration does not supply one.
var DefaultDepartments = []string{"Poli Umum", "Poli Gigi", "Poli Anak", "Poli Jantung"}

// Session identifies the authenticated caller of an operation.
type Session struct {
	User record.User
}

// IsAdmin reports whether the session belongs to a staff account.
func (s Session) IsAdmin() bool { return s.User.Role == record.RoleAdmin }

// Config configures a Service. Zero-valued fields get defaults.
type Config struct {
	Users   *userstore.Store
	Tickets *queue.Store

	// Clock stamps ticket creation times. Nil means clock.Real().
	Clock clock.Clock

	// Logger receives operation diagnostics. Nil means slog.Default().
	Logger *slog.Logger

	// Departments is the valid department list. Nil means
	// DefaultDepartments.
	Departments []string
}

// Service wires the repositories into the operations the application
// layer consumes.
type Service struct {
	users       *userstore.Store
	tickets     *queue.Store
	clk         clock.Clock
	logger      *slog.Logger
	departments []string
}

// New returns a Service.
func New(cfg Config) *Service {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Departments == nil {
		cfg.Departments = DefaultDepartments
	}
	return &Service{
		users:       cfg.Users,
		tickets:     cfg.Tickets,
		clk:         cfg.Clock,
		logger:      cfg.Logger,
		departments: cfg.Departments,
	}
}

// Departments returns the configured department list.
func (s *Service) Departments() []string {
	return slices.Clone(s.departments)
}

// Authenticate resolves an identifier (email or name,
// case-insensitive) and clear-text password to a Session. A failed
// match returns ErrInvalidCredential.
func (s *Service) Authenticate(identifier, password string) (Session, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return Session{}, validation("identifier and password are required")
	}

	user, found, err := s.users.FindByCredential(identifier, password)
	if err != nil {
		return Session{}, err
	}
	if !found {
		return Session{}, ErrInvalidCredential
	}

	s.logger.Info("authenticated", "nik", user.NIK, "role", user.Role)
	return Session{User: user}, nil
}

// Registration carries the fields a new patient account needs. The
// role is fixed to patient; admin accounts are seeded, not registered.
type Registration struct {
	NIK          string
	Nama         string
	Alamat       string
	NoTelepon    string
	Email        string
	TanggalLahir string
	Password     string
}

// Register creates a patient account. A duplicate NIK or email is
// rejected with ErrDuplicateUser before anything is written.
func (s *Service) Register(reg Registration) (record.User, error) {
	required := []struct{ name, value string }{
		{"nik", reg.NIK},
		{"nama", reg.Nama},
		{"email", reg.Email},
		{"password", reg.Password},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return record.User{}, validation("%s is required", field.name)
		}
	}

	exists, err := s.users.ExistsByNIKOrEmail(reg.NIK, reg.Email)
	if err != nil {
		return record.User{}, err
	}
	if exists {
		return record.User{}, ErrDuplicateUser
	}

	user := record.NewPatient(reg.NIK, reg.Nama, reg.Alamat, reg.NoTelepon,
		reg.Email, reg.TanggalLahir, reg.Password)

	users, err := s.users.Load()
	if err != nil {
		return record.User{}, err
	}
	users = append(users, user)
	if err := s.users.Save(users); err != nil {
		return record.User{}, err
	}

	s.logger.Info("registered patient", "nik", user.NIK)
	return user, nil
}

// SeedAdmin writes an admin account unless one already exists. Returns
// true if the account was created.
func (s *Service) SeedAdmin(admin record.User) (bool, error) {
	admin.Role = record.RoleAdmin
	if admin.Jabatan == "" {
		admin.Jabatan = "Administrator"
	}

	users, err := s.users.Load()
	if err != nil {
		return false, err
	}
	for _, user := range users {
		if user.Role == record.RoleAdmin {
			return false, nil
		}
	}

	users = append(users, admin)
	if err := s.users.Save(users); err != nil {
		return false, err
	}
	s.logger.Info("seeded admin account", "nik", admin.NIK)
	return true, nil
}

// ListAllTickets returns every ticket, applying the stale-ticket
// promotion rule as part of the read. Staff only.
func (s *Service) ListAllTickets(session Session) ([]record.Ticket, error) {
	if !session.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	return s.tickets.LoadAndPromoteStale()
}

// ListTicketsForOwner returns the tickets created by the given NIK,
// applying the stale-ticket promotion rule as part of the read.
func (s *Service) ListTicketsForOwner(nik string) ([]record.Ticket, error) {
	tickets, err := s.tickets.LoadAndPromoteStale()
	if err != nil {
		return nil, err
	}

	owned := tickets[:0]
	for _, ticket := range tickets {
		if ticket.CreatorNIK == nik {
			owned = append(owned, ticket)
		}
	}
	return owned, nil
}

// TicketDraft carries the fields a new ticket needs. The patient
// fields are snapshotted into the ticket; they are not a reference to
// a User record.
type TicketDraft struct {
	PatientNIK     string
	PatientName    string
	PatientAddress string
	PatientPhone   string
	Department     string
	Complaint      string
}

// CreateTicket allocates the next id and appends a new ticket in
// status Baru, stamped with the current time at second precision. The
// session's NIK is recorded as the creator, which may differ from the
// patient when staff file on a patient's behalf.
func (s *Service) CreateTicket(session Session, draft TicketDraft) (record.Ticket, error) {
	required := []struct{ name, value string }{
		{"patient nik", draft.PatientNIK},
		{"patient name", draft.PatientName},
		{"department", draft.Department},
		{"complaint", draft.Complaint},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return record.Ticket{}, validation("%s is required", field.name)
		}
	}
	if !slices.Contains(s.departments, draft.Department) {
		return record.Ticket{}, validation("unknown department %q", draft.Department)
	}

	id, err := s.tickets.NextID()
	if err != nil {
		return record.Ticket{}, err
	}

	ticket := record.Ticket{
		ID:             id,
		CreatorNIK:     session.User.NIK,
		PatientNIK:     draft.PatientNIK,
		PatientName:    draft.PatientName,
		PatientAddress: draft.PatientAddress,
		PatientPhone:   draft.PatientPhone,
		Department:     draft.Department,
		Complaint:      draft.Complaint,
		Status:         record.StatusNew,
		CreatedAt:      s.clk.Now().Truncate(time.Second),
	}
	if err := s.tickets.AppendOne(ticket); err != nil {
		return record.Ticket{}, err
	}

	s.logger.Info("created ticket", "id", ticket.ID, "department", ticket.Department,
		"creator", ticket.CreatorNIK)
	return ticket, nil
}

// SetTicketStatus sets a ticket's status. Staff only. The status must
// be a valid lifecycle state, and a ticket already in a terminal state
// (Selesai, Batal) cannot leave it. A non-existent id is a no-op.
func (s *Service) SetTicketStatus(session Session, id int, status record.Status) error {
	if !session.IsAdmin() {
		return ErrNotAuthorized
	}
	if !status.Valid() {
		return validation("unknown status %q", status)
	}

	tickets, err := s.tickets.Load()
	if err != nil {
		return err
	}
	for _, ticket := range tickets {
		if ticket.ID != id {
			continue
		}
		if ticket.Status.Terminal() && ticket.Status != status {
			return validation("ticket %d is already %s", id, ticket.Status)
		}
		break
	}

	if err := s.tickets.UpdateStatus(id, status); err != nil {
		return err
	}
	s.logger.Info("updated ticket status", "id", id, "status", status)
	return nil
}

// DeleteTicket removes a ticket by id. Staff only. A non-existent id
// leaves the store unchanged.
func (s *Service) DeleteTicket(session Session, id int) error {
	if !session.IsAdmin() {
		return ErrNotAuthorized
	}
	if err := s.tickets.RemoveByID(id); err != nil {
		return err
	}
	s.logger.Info("deleted ticket", "id", id)
	return nil
}

// ResetAllTickets clears the entire ticket store. Staff only.
func (s *Service) ResetAllTickets(session Session) error {
	if !session.IsAdmin() {
		return ErrNotAuthorized
	}
	if err := s.tickets.Clear(); err != nil {
		return err
	}
	s.logger.Warn("reset ticket store")
	return nil
}
