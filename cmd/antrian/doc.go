// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

// Antrian is the CLI for the clinic patient queue tracker. It provides
// subcommands for account management (user), ticket management
// (queue), a live terminal dashboard (dashboard), and store snapshots
// (backup).
package main
