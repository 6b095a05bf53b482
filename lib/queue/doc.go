// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

// Package queue is the ticket repository. On top of the flat-file
// store it owns the two pieces of genuine queue logic: monotonic id
// allocation computed from the authoritative on-disk state, and the
// time-driven status promotion that ages new tickets into Sedang
// Berlangsung on read.
//
// Every mutating operation is a read-entire-file, mutate-in-memory,
// write-entire-file cycle. In-process writers are serialized by the
// underlying [flatfile.Store]; across processes the design accepts
// last-write-wins at file granularity.
package queue
