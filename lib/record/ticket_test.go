// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// makeTicket returns a valid ticket with sensible defaults. Override
// fields after construction as needed.
func makeTicket(id int) Ticket {
	return Ticket{
		ID:             id,
		CreatorNIK:     "3201011503990001",
		PatientNIK:     "3201011503990001",
		PatientName:    "Budi Santoso",
		PatientAddress: "Jl. Merdeka No. 4",
		PatientPhone:   "081234567890",
		Department:     "Poli Umum",
		Complaint:      "Demam tinggi sejak kemarin",
		Status:         StatusNew,
		CreatedAt:      time.Date(2026, 2, 10, 8, 30, 0, 0, time.Local),
	}
}

func TestTicketRoundTrip(t *testing.T) {
	original := makeTicket(7)
	decoded, err := DecodeTicket(EncodeTicket(original))
	if err != nil {
		t.Fatalf("DecodeTicket: %v", err)
	}
	if decoded != original {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestTicketRoundTripMultilineComplaint(t *testing.T) {
	original := makeTicket(12)
	original.Complaint = "Nyeri dada\nsesak napas\nsejak dua hari"

	line := EncodeTicket(original)
	if strings.Count(line, "\n") != 0 {
		t.Fatalf("encoded line spans multiple physical lines: %q", line)
	}
	if !strings.Contains(line, `Nyeri dada\nsesak napas`) {
		t.Fatalf("newlines not escaped to literal \\n: %q", line)
	}

	decoded, err := DecodeTicket(line)
	if err != nil {
		t.Fatalf("DecodeTicket: %v", err)
	}
	if decoded.Complaint != original.Complaint {
		t.Fatalf("Complaint = %q, want %q", decoded.Complaint, original.Complaint)
	}
}

func TestTicketRoundTripCreatorDiffersFromPatient(t *testing.T) {
	original := makeTicket(3)
	original.CreatorNIK = "3201010101010001" // staff filing on the patient's behalf

	decoded, err := DecodeTicket(EncodeTicket(original))
	if err != nil {
		t.Fatalf("DecodeTicket: %v", err)
	}
	if decoded.CreatorNIK != "3201010101010001" {
		t.Fatalf("CreatorNIK = %q, want %q", decoded.CreatorNIK, "3201010101010001")
	}
	if decoded.PatientNIK != original.PatientNIK {
		t.Fatalf("PatientNIK = %q, want %q", decoded.PatientNIK, original.PatientNIK)
	}
}

func TestDecodeTicketLegacyNineColumns(t *testing.T) {
	// The 9-column shape predates the creator column; the patient NIK
	// doubles as the creator.
	line := "5;111;Budi;Jl. A;0812;Poli Umum;Demam;Baru;2024-01-01T10:00:00"

	ticket, err := DecodeTicket(line)
	if err != nil {
		t.Fatalf("DecodeTicket: %v", err)
	}
	if ticket.ID != 5 {
		t.Errorf("ID = %d, want 5", ticket.ID)
	}
	if ticket.CreatorNIK != "111" {
		t.Errorf("CreatorNIK = %q, want %q", ticket.CreatorNIK, "111")
	}
	if ticket.PatientNIK != "111" {
		t.Errorf("PatientNIK = %q, want %q", ticket.PatientNIK, "111")
	}
	if ticket.Status != StatusNew {
		t.Errorf("Status = %q, want %q", ticket.Status, StatusNew)
	}
	want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	if !ticket.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", ticket.CreatedAt, want)
	}
}

func TestDecodeTicketLegacyMigrationIsCanonicalOnReencode(t *testing.T) {
	legacy := "5;111;Budi;Jl. A;0812;Poli Umum;Demam;Baru;2024-01-01T10:00:00"
	ticket, err := DecodeTicket(legacy)
	if err != nil {
		t.Fatalf("DecodeTicket: %v", err)
	}

	reencoded := EncodeTicket(ticket)
	if got := len(strings.Split(reencoded, ";")); got != 10 {
		t.Fatalf("re-encoded legacy ticket has %d columns, want 10: %q", got, reencoded)
	}
}

// inZone pins time.Local to a fixed offset for the duration of the
// test. Timestamps are stored zoneless, so the codec's behavior in a
// non-UTC locale only shows up when the process zone actually differs
// from UTC.
func inZone(t *testing.T, offsetHours int) {
	t.Helper()
	saved := time.Local
	time.Local = time.FixedZone("", offsetHours*60*60)
	t.Cleanup(func() { time.Local = saved })
}

func TestTicketRoundTripKeepsInstantInNonUTCZone(t *testing.T) {
	inZone(t, 7) // WIB, the clinic's own offset

	original := makeTicket(9)
	original.CreatedAt = time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)

	decoded, err := DecodeTicket(EncodeTicket(original))
	if err != nil {
		t.Fatalf("DecodeTicket: %v", err)
	}
	if !decoded.CreatedAt.Equal(original.CreatedAt) {
		t.Fatalf("CreatedAt shifted across round trip: got %v, want %v",
			decoded.CreatedAt, original.CreatedAt)
	}
	now := original.CreatedAt.Add(61 * time.Second)
	if got := decoded.Age(now); got != 61*time.Second {
		t.Fatalf("Age after round trip = %v, want 61s", got)
	}
}

func TestDecodeTicketMinutePrecisionTimestamp(t *testing.T) {
	// The original formatter dropped the seconds component when zero.
	line := "8;111;222;Siti;Jl. B;0813;Poli Gigi;Sakit gigi;Baru;2024-06-01T09:15"
	ticket, err := DecodeTicket(line)
	if err != nil {
		t.Fatalf("DecodeTicket: %v", err)
	}
	want := time.Date(2024, 6, 1, 9, 15, 0, 0, time.Local)
	if !ticket.CreatedAt.Equal(want) {
		t.Fatalf("CreatedAt = %v, want %v", ticket.CreatedAt, want)
	}
}

func TestDecodeTicketRejectsMalformedLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "1;2;3"},
		{"eleven fields", "1;a;b;c;d;e;f;g;h;2024-01-01T10:00:00;extra"},
		{"non-numeric id", "x;111;222;Budi;Jl. A;0812;Poli Umum;Demam;Baru;2024-01-01T10:00:00"},
		{"bad timestamp", "1;111;222;Budi;Jl. A;0812;Poli Umum;Demam;Baru;yesterday"},
		{"empty line", ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodeTicket(test.line)
			if err == nil {
				t.Fatalf("DecodeTicket(%q) succeeded, want error", test.line)
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("error type = %T, want *DecodeError", err)
			}
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, status := range Statuses() {
		if !status.Valid() {
			t.Errorf("Statuses() entry %q not Valid()", status)
		}
	}
	if Status("Menunggu").Valid() {
		t.Error(`Valid("Menunggu") = true, want false`)
	}
}

func TestStatusTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusNew, false},
		{StatusInProgress, false},
		{StatusDone, true},
		{StatusCancelled, true},
	}
	for _, test := range tests {
		if got := test.status.Terminal(); got != test.want {
			t.Errorf("Terminal(%q) = %v, want %v", test.status, got, test.want)
		}
	}
}

func TestTicketAge(t *testing.T) {
	ticket := makeTicket(1)
	now := ticket.CreatedAt.Add(61 * time.Second)
	if got := ticket.Age(now); got != 61*time.Second {
		t.Fatalf("Age = %v, want 61s", got)
	}
}
