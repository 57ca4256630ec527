// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package clock abstracts wall-clock access so time-window math and cache
// behavior are deterministic under test.
package clock

import "time"

// Clock provides an abstraction over time.Now for testability.
type Clock interface {
	Now() time.Time
}

// System is the production clock backed by time.Now.
type System struct{}

// Now returns the current system time.
func (System) Now() time.Time { return time.Now() }

// Fixed is a settable clock for tests.
type Fixed struct {
	T time.Time
}

// Now returns the configured instant.
func (f *Fixed) Now() time.Time { return f.T }

// Set moves the fake clock to t.
func (f *Fixed) Set(t time.Time) { f.T = t }

// Advance moves the fake clock forward by d.
func (f *Fixed) Advance(d time.Duration) { f.T = f.T.Add(d) }
