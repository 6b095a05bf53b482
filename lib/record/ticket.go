// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status is a ticket's position in its lifecycle:
//
//	Baru → Sedang Berlangsung → Selesai | Batal
//
// The only automatic transition is Baru → Sedang Berlangsung, applied
// by the queue's stale-ticket promotion. The terminal states are set
// by staff, never automatically.
type Status string

const (
	// StatusNew is the state of a freshly created ticket.
	StatusNew Status = "Baru"

	// StatusInProgress means the ticket is being handled. Tickets age
	// into this state automatically once they have been new for the
	// promotion threshold.
	StatusInProgress Status = "Sedang Berlangsung"

	// StatusDone is terminal: the visit completed.
	StatusDone Status = "Selesai"

	// StatusCancelled is terminal: the ticket was withdrawn.
	StatusCancelled Status = "Batal"
)

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusNew, StatusInProgress, StatusDone, StatusCancelled}
}

// Valid reports whether s is one of the four lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s is an end state that staff set
// explicitly.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// TimestampLayout is the on-disk ticket timestamp format: ISO local
// date-time at second precision, locale-independent and
// round-trippable.
const TimestampLayout = "2006-01-02T15:04:05"

// timestampLayoutMinutes is accepted on decode only. The original
// system's formatter omitted the seconds component when it was zero,
// so minute-precision rows exist in old files.
const timestampLayoutMinutes = "2006-01-02T15:04"

// fieldSeparator delimits record fields within a line. Field values
// are stored verbatim, so a literal semicolon inside a value is not
// representable — the same constraint the original files carry.
const fieldSeparator = ";"

// Ticket is one queue entry ("antrian") for a department visit. The
// patient fields are a snapshot taken at creation time, not a live
// reference to the User record.
type Ticket struct {
	// ID is unique and monotonically assigned; IDs are never reused.
	ID int

	// CreatorNIK is the NIK of the account that created the ticket.
	// It differs from PatientNIK when staff file a ticket on a
	// patient's behalf.
	CreatorNIK string

	PatientNIK     string
	PatientName    string
	PatientAddress string
	PatientPhone   string

	// Department is the clinic section ("poli") the ticket targets.
	Department string

	// Complaint is free text and may contain embedded newlines; the
	// codec escapes them so a ticket never spans multiple physical
	// lines.
	Complaint string

	Status Status

	// CreatedAt has second precision on disk.
	CreatedAt time.Time
}

// Age returns how long the ticket has existed as of now.
func (t Ticket) Age(now time.Time) time.Duration {
	return now.Sub(t.CreatedAt)
}

// ticketFieldCount is the canonical on-disk column count:
// id;creatorNik;patientNik;name;address;phone;dept;complaint;status;timestamp
const ticketFieldCount = 10

// ticketFieldCountLegacy is the pre-creator-field column count.
const ticketFieldCountLegacy = 9

// escapeComplaint maps literal newlines to the two-character sequence
// \n; unescapeComplaint reverses it.
func escapeComplaint(complaint string) string {
	return strings.ReplaceAll(complaint, "\n", `\n`)
}

func unescapeComplaint(complaint string) string {
	return strings.ReplaceAll(complaint, `\n`, "\n")
}

// EncodeTicket serializes a ticket to one canonical 10-column line.
func EncodeTicket(ticket Ticket) string {
	return strings.Join([]string{
		strconv.Itoa(ticket.ID),
		ticket.CreatorNIK,
		ticket.PatientNIK,
		ticket.PatientName,
		ticket.PatientAddress,
		ticket.PatientPhone,
		ticket.Department,
		escapeComplaint(ticket.Complaint),
		string(ticket.Status),
		ticket.CreatedAt.Format(TimestampLayout),
	}, fieldSeparator)
}

// DecodeTicket parses one ticket line. Two shapes are supported:
//
//   - 10 columns (canonical): id;creatorNik;patientNik;name;address;
//     phone;dept;complaint;status;timestamp
//   - 9 columns (legacy): the creator column is missing. The decoder
//     synthesizes CreatorNIK = PatientNIK — under the old schema the
//     patient always created their own ticket. This is a forward-only
//     migration: the in-memory ticket is promoted to the canonical
//     shape and nothing is written back until an explicit save.
//
// Any other column count, a non-numeric id, or an unparseable
// timestamp yields a *DecodeError.
func DecodeTicket(line string) (Ticket, error) {
	fields := strings.Split(line, fieldSeparator)

	var ticket Ticket
	switch len(fields) {
	case ticketFieldCount:
		ticket = Ticket{
			CreatorNIK:     fields[1],
			PatientNIK:     fields[2],
			PatientName:    fields[3],
			PatientAddress: fields[4],
			PatientPhone:   fields[5],
			Department:     fields[6],
			Complaint:      unescapeComplaint(fields[7]),
			Status:         Status(fields[8]),
		}
	case ticketFieldCountLegacy:
		ticket = Ticket{
			CreatorNIK:     fields[1],
			PatientNIK:     fields[1],
			PatientName:    fields[2],
			PatientAddress: fields[3],
			PatientPhone:   fields[4],
			Department:     fields[5],
			Complaint:      unescapeComplaint(fields[6]),
			Status:         Status(fields[7]),
		}
	default:
		return Ticket{}, &DecodeError{
			Record: "ticket",
			Line:   line,
			Reason: fmt.Sprintf("%d fields, need %d or %d", len(fields), ticketFieldCount, ticketFieldCountLegacy),
		}
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return Ticket{}, &DecodeError{
			Record: "ticket",
			Line:   line,
			Reason: fmt.Sprintf("bad id %q", fields[0]),
		}
	}
	ticket.ID = id

	createdAt, err := parseTimestamp(fields[len(fields)-1])
	if err != nil {
		return Ticket{}, &DecodeError{
			Record: "ticket",
			Line:   line,
			Reason: fmt.Sprintf("bad timestamp %q", fields[len(fields)-1]),
		}
	}
	ticket.CreatedAt = createdAt

	return ticket, nil
}

// parseTimestamp parses the canonical second-precision layout, falling
// back to the minute-precision variant found in old files. Timestamps
// are encoded as zoneless wall-clock time, so decoding must pin the
// same location the encoder observed; parsing in UTC would shift every
// ticket's absolute creation instant by the local UTC offset and break
// age computation.
func parseTimestamp(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(TimestampLayout, value, time.Local)
	if err == nil {
		return parsed, nil
	}
	return time.ParseInLocation(timestampLayoutMinutes, value, time.Local)
}
