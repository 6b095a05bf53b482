// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

// Package record defines the persistent record types of the queue
// tracker — [User] and [Ticket] — and the line codec that maps each
// record to and from one semicolon-delimited line of the flat storage
// files.
//
// The codec owns the on-disk schema. Two ticket shapes are accepted on
// decode: the canonical 10-column shape and a 9-column legacy shape
// predating the separate creator-NIK field. Legacy rows are promoted
// in memory (creator = patient); nothing is rewritten on disk until a
// caller performs an explicit save. Encoding always emits the
// canonical shape.
//
// Decoding a malformed line yields a [*DecodeError]. Batch loaders
// skip such lines and log them; a corrupt row never fails a load.
package record
