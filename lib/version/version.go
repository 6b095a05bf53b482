// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the build provenance of the antrian binary.
//
// The values are stamped at build time:
//
//	go build -ldflags "-X github.com/klinikmitra/antrian/lib/version.Commit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"
	"runtime"
)

// Stamped via -ldflags. The defaults describe an unstamped local build.
var (
	// Release is the semantic version, set manually for tagged releases.
	Release = "0.1.0-dev"

	// Commit is the short git SHA the binary was built from.
	Commit = "unknown"

	// Dirty is "true" when the working tree had uncommitted changes.
	Dirty = "false"

	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)

// String renders the one-line version report used by "antrian version".
func String() string {
	commit := Commit
	if Dirty == "true" {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (commit %s, built %s, %s %s/%s)",
		Release, commit, BuildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
