// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the tracker's standard CBOR encoding
// configuration.
//
// The flat text stores remain the source of truth; CBOR is used for
// the binary snapshot format produced by backup and consumed by
// restore. This package provides the shared encoding and decoding
// modes so every consumer encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding
// (RFC 8949 §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces identical
// bytes, so a snapshot's content digest is reproducible.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
package codec
