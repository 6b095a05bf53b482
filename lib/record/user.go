// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"fmt"
	"strings"
)

// Role distinguishes staff accounts from patient accounts. The only
// behavioral difference between the roles is which extra field the
// record carries: Jabatan for admins, NoRekamMedis for patients.
type Role string

const (
	// RoleAdmin is a staff account. Admins triage tickets across all
	// departments.
	RoleAdmin Role = "admin"

	// RolePatient is a patient account, the role assigned at
	// registration.
	RolePatient Role = "pasien"
)

// User is one identity record from the user file. NIK (the national
// ID number) is the primary key; passwords are stored and compared in
// clear text — hardening them is explicitly out of scope for this
// system.
type User struct {
	NIK          string
	Nama         string
	Alamat       string
	NoTelepon    string
	Email        string
	TanggalLahir string
	Password     string

	Role Role

	// Jabatan is the admin's position title. Set only when Role is
	// RoleAdmin.
	Jabatan string

	// NoRekamMedis is the patient's medical-record number,
	// conventionally "RM-" + NIK. Set only when Role is RolePatient.
	NoRekamMedis string
}

// NewPatient returns a patient User with the conventional synthesized
// medical-record number.
func NewPatient(nik, nama, alamat, noTelepon, email, tanggalLahir, password string) User {
	return User{
		NIK:          nik,
		Nama:         nama,
		Alamat:       alamat,
		NoTelepon:    noTelepon,
		Email:        email,
		TanggalLahir: tanggalLahir,
		Password:     password,
		Role:         RolePatient,
		NoRekamMedis: MedicalRecordNumber(nik),
	}
}

// MedicalRecordNumber returns the conventional medical-record number
// for a patient NIK.
func MedicalRecordNumber(nik string) string { return "RM-" + nik }

// roleMarker is the trailing-field tag that disambiguates the two row
// shapes. Decoding is driven by this marker, never by counting columns
// alone: a 7-field legacy row and an 8-field role-tagged row would
// otherwise be ambiguous.
func roleMarker(role Role) string { return "role=" + string(role) }

// parseRoleMarker recognizes a role marker field, case-insensitively.
// Both the canonical "role=admin" form and the bare "admin" form are
// accepted; the original system's encoder and decoder disagreed on
// which to write, so rows of both kinds exist in the wild.
func parseRoleMarker(field string) (Role, bool) {
	marker := strings.ToLower(strings.TrimSpace(field))
	marker = strings.TrimPrefix(marker, "role=")
	switch marker {
	case string(RoleAdmin):
		return RoleAdmin, true
	case string(RolePatient):
		return RolePatient, true
	}
	return "", false
}

// userFieldCount is the canonical on-disk column count:
// nik;nama;alamat;noTelepon;email;tanggalLahir;password;extra;role=<role>
const userFieldCount = 9

// EncodeUser serializes a user to one canonical 9-column line. The
// eighth column carries the role-specific extra field and the ninth
// the explicit role marker.
func EncodeUser(user User) string {
	extra := user.NoRekamMedis
	if user.Role == RoleAdmin {
		extra = user.Jabatan
	}
	return strings.Join([]string{
		user.NIK,
		user.Nama,
		user.Alamat,
		user.NoTelepon,
		user.Email,
		user.TanggalLahir,
		user.Password,
		extra,
		roleMarker(user.Role),
	}, fieldSeparator)
}

// DecodeUser parses one user line. At least the seven base fields are
// required. Role detection is marker-driven: if the trailing field
// carries a recognizable role marker the row decodes with that role
// and its extra field; rows without a recognizable marker decode as
// patients with a synthesized medical-record number, which covers both
// the 7-column legacy shape and hand-edited rows.
func DecodeUser(line string) (User, error) {
	fields := strings.Split(line, fieldSeparator)
	if len(fields) < 7 {
		return User{}, &DecodeError{
			Record: "user",
			Line:   line,
			Reason: fmt.Sprintf("%d fields, need at least 7", len(fields)),
		}
	}

	user := User{
		NIK:          fields[0],
		Nama:         fields[1],
		Alamat:       fields[2],
		NoTelepon:    fields[3],
		Email:        fields[4],
		TanggalLahir: fields[5],
		Password:     fields[6],
	}

	role, tagged := Role(""), false
	if len(fields) >= 8 {
		role, tagged = parseRoleMarker(fields[len(fields)-1])
	}
	if !tagged {
		// Unrecognized or missing marker: legacy patient row.
		user.Role = RolePatient
		user.NoRekamMedis = MedicalRecordNumber(user.NIK)
		return user, nil
	}

	// The extra field sits between the password and the marker when
	// present (9+ columns); an 8-column row is marker-only.
	extra := ""
	if len(fields) >= userFieldCount {
		extra = fields[7]
	}

	user.Role = role
	switch role {
	case RoleAdmin:
		user.Jabatan = extra
		if user.Jabatan == "" {
			user.Jabatan = "Administrator"
		}
	case RolePatient:
		user.NoRekamMedis = extra
		if user.NoRekamMedis == "" {
			user.NoRekamMedis = MedicalRecordNumber(user.NIK)
		}
	}
	return user, nil
}
