// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		CreatedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		Users: []string{
			"3101;Budi;Jl. A;0812;budi@mail.test;1990-01-01;rahasia;RM-3101;role=pasien",
		},
		Tickets: []string{
			"1;3101;3101;Budi;Jl. A;0812;Poli Umum;Demam;Baru;2024-06-01T08:59:00",
			"5;111;Budi;Jl. A;0812;Poli Umum;Demam;Baru;2024-01-01T10:00:00",
		},
	}
}

func TestRoundtrip(t *testing.T) {
	original := sampleSnapshot()

	var buf bytes.Buffer
	if err := Write(&buf, original); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if !got.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, original.CreatedAt)
	}
	if len(got.Users) != 1 || got.Users[0] != original.Users[0] {
		t.Errorf("Users = %v", got.Users)
	}
	if len(got.Tickets) != 2 || got.Tickets[1] != original.Tickets[1] {
		t.Errorf("Tickets = %v", got.Tickets)
	}
}

func TestRoundtripEmptyStores(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Snapshot{CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Users) != 0 || len(got.Tickets) != 0 {
		t.Errorf("expected empty stores, got %+v", got)
	}
}

func TestDeterministicBytes(t *testing.T) {
	snap := sampleSnapshot()

	var first, second bytes.Buffer
	if err := Write(&first, snap); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if err := Write(&second, snap); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("same snapshot produced different bytes")
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	if _, err := Read(bytes.NewReader([]byte("not a snapshot at all, just text"))); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("err = %v, want ErrBadMagic", err)
	}
	// Truncated input is also rejected, not misread.
	if _, err := Read(bytes.NewReader([]byte("ANTRSNP1"))); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("truncated: err = %v, want ErrBadMagic", err)
	}
}

func TestReadRejectsFlippedBit(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleSnapshot()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0x01

	if _, err := Read(bytes.NewReader(corrupted)); !errors.Is(err, ErrDigestMismatch) {
		t.Fatalf("err = %v, want ErrDigestMismatch", err)
	}
}

func TestReadRejectsForgedDigest(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleSnapshot()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	forged := buf.Bytes()
	forged[8] ^= 0xFF

	if _, err := Read(bytes.NewReader(forged)); !errors.Is(err, ErrDigestMismatch) {
		t.Fatalf("err = %v, want ErrDigestMismatch", err)
	}
}

func TestWriteFileReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backups", "klinik.snap")

	snap := sampleSnapshot()
	if err := WriteFile(path, snap); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got.Tickets) != 2 {
		t.Errorf("Tickets = %v", got.Tickets)
	}

	// No temp files may remain next to the snapshot.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.snap"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}
