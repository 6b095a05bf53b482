// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command framework for the antrian binary:
// the [Command] tree with dispatch, help, and typo suggestions; the
// shared application environment ([Env]); persistent login state
// ([StoredSession]); and terminal helpers for logging and password
// prompts.
package cli
