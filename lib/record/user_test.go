// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"errors"
	"strings"
	"testing"
)

func makeAdmin() User {
	return User{
		NIK:          "3201010101010001",
		Nama:         "Dewi Lestari",
		Alamat:       "Jl. Sudirman No. 10",
		NoTelepon:    "081200001111",
		Email:        "dewi@klinik.example",
		TanggalLahir: "1990-05-17",
		Password:     "rahasia",
		Role:         RoleAdmin,
		Jabatan:      "Kepala Administrasi",
	}
}

func TestUserRoundTripAdmin(t *testing.T) {
	original := makeAdmin()
	decoded, err := DecodeUser(EncodeUser(original))
	if err != nil {
		t.Fatalf("DecodeUser: %v", err)
	}
	if decoded != original {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestUserRoundTripPatient(t *testing.T) {
	original := NewPatient("3201011503990001", "Budi Santoso", "Jl. Merdeka No. 4",
		"081234567890", "budi@mail.example", "1999-03-15", "kata-sandi")
	if original.NoRekamMedis != "RM-3201011503990001" {
		t.Fatalf("NoRekamMedis = %q, want synthesized RM number", original.NoRekamMedis)
	}

	decoded, err := DecodeUser(EncodeUser(original))
	if err != nil {
		t.Fatalf("DecodeUser: %v", err)
	}
	if decoded != original {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestEncodeUserCanonicalShape(t *testing.T) {
	line := EncodeUser(makeAdmin())
	fields := strings.Split(line, ";")
	if len(fields) != 9 {
		t.Fatalf("encoded user has %d columns, want 9: %q", len(fields), line)
	}
	if fields[8] != "role=admin" {
		t.Fatalf("trailing field = %q, want explicit role marker", fields[8])
	}
}

func TestDecodeUserMarkerVariants(t *testing.T) {
	base := "111;Budi;Jl. A;0812;budi@mail.example;1999-03-15;pw"
	tests := []struct {
		name     string
		line     string
		wantRole Role
	}{
		{"canonical admin", base + ";Kepala;role=admin", RoleAdmin},
		{"canonical patient", base + ";RM-111;role=pasien", RolePatient},
		{"uppercase marker", base + ";Kepala;ROLE=ADMIN", RoleAdmin},
		// The original encoder wrote a bare role word in the trailing
		// column; those rows still exist.
		{"bare admin marker", base + ";admin", RoleAdmin},
		{"bare patient marker", base + ";pasien", RolePatient},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			user, err := DecodeUser(test.line)
			if err != nil {
				t.Fatalf("DecodeUser: %v", err)
			}
			if user.Role != test.wantRole {
				t.Fatalf("Role = %q, want %q", user.Role, test.wantRole)
			}
		})
	}
}

func TestDecodeUserLegacySevenColumns(t *testing.T) {
	user, err := DecodeUser("111;Budi;Jl. A;0812;budi@mail.example;1999-03-15;pw")
	if err != nil {
		t.Fatalf("DecodeUser: %v", err)
	}
	if user.Role != RolePatient {
		t.Fatalf("Role = %q, want patient fallback", user.Role)
	}
	if user.NoRekamMedis != "RM-111" {
		t.Fatalf("NoRekamMedis = %q, want %q", user.NoRekamMedis, "RM-111")
	}
}

func TestDecodeUserUnrecognizedMarkerFallsBackToPatient(t *testing.T) {
	// Eight columns whose trailing field is not a role marker: treated
	// as a patient row, medical-record number synthesized.
	user, err := DecodeUser("111;Budi;Jl. A;0812;budi@mail.example;1999-03-15;pw;dokter")
	if err != nil {
		t.Fatalf("DecodeUser: %v", err)
	}
	if user.Role != RolePatient {
		t.Fatalf("Role = %q, want patient fallback", user.Role)
	}
	if user.NoRekamMedis != "RM-111" {
		t.Fatalf("NoRekamMedis = %q, want synthesized", user.NoRekamMedis)
	}
}

func TestDecodeUserMarkerOnlyDefaultsExtraField(t *testing.T) {
	admin, err := DecodeUser("111;Budi;Jl. A;0812;budi@mail.example;1999-03-15;pw;role=admin")
	if err != nil {
		t.Fatalf("DecodeUser: %v", err)
	}
	if admin.Jabatan != "Administrator" {
		t.Fatalf("Jabatan = %q, want default", admin.Jabatan)
	}

	patient, err := DecodeUser("111;Budi;Jl. A;0812;budi@mail.example;1999-03-15;pw;role=pasien")
	if err != nil {
		t.Fatalf("DecodeUser: %v", err)
	}
	if patient.NoRekamMedis != "RM-111" {
		t.Fatalf("NoRekamMedis = %q, want synthesized", patient.NoRekamMedis)
	}
}

func TestDecodeUserTooFewFields(t *testing.T) {
	_, err := DecodeUser("111;Budi;Jl. A")
	if err == nil {
		t.Fatal("DecodeUser succeeded on a 3-field line, want error")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error type = %T, want *DecodeError", err)
	}
	if decodeErr.Record != "user" {
		t.Fatalf("DecodeError.Record = %q, want %q", decodeErr.Record, "user")
	}
}
