// Copyright 2026 The Antrian Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// [Real] returns a Clock backed by the time package for production
// use. [Fake] returns a deterministic Clock whose time only moves when
// [FakeClock.Advance] is called, so tests of time-driven behavior
// (the queue's stale-ticket promotion, the dashboard's refresh tick)
// run instantly and without flakes.
package clock
