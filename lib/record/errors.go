// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

package record

import "fmt"

// DecodeError reports a single line that could not be decoded into a
// record. Loaders treat it as a per-row skip, never as a batch
// failure.
type DecodeError struct {
	// Record is the record kind being decoded: "user" or "ticket".
	Record string

	// Line is the raw offending line.
	Line string

	// Reason describes why the line was rejected.
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s line %q: %s", e.Record, e.Line, e.Reason)
}
