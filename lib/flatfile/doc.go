// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

// Package flatfile implements the durable storage primitive of the
// queue tracker: a whole-file line store with load-all, save-all,
// append-one, and clear operations.
//
// The persistence model is deliberately primitive — two flat text
// files read and rewritten wholesale on every mutation, no index, no
// transaction log. What the package does guarantee is that a rewrite
// is all-or-nothing (temp file plus rename) and that in-process
// writers to the same [Store] are serialized. Last-write-wins races
// between whole-file snapshots remain possible across stores and are
// an accepted property of the design.
package flatfile
