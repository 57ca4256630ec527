// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the core data models used across Credmaster. These are
// simple structs that represent store entities and are intentionally minimal
// to keep serialization and persistence adapters straightforward.
package model

import "time"

// Account is a stored credential. An account may carry an optional TOTP
// secret; an empty TOTPSecret means 2FA is disabled for the entry.
type Account struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Password   string    `json:"password"`
	TOTPSecret string    `json:"totp_secret,omitempty"`
	Extras     []string  `json:"extras,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Completed  bool      `json:"completed"`
	Favorite   bool      `json:"favorite"`
	Order      int       `json:"order"`
	AddedAt    time.Time `json:"added_at"`
	LastUsed   time.Time `json:"last_used,omitempty"`
}

// String returns the email, which is how accounts are addressed in the UI.
func (a Account) String() string { return a.Email }

// HasTOTP reports whether the account has a TOTP secret configured.
func (a Account) HasTOTP() bool { return a.TOTPSecret != "" }

// HasTag reports whether the account references the given tag id.
func (a Account) HasTag(tagID string) bool {
	for _, id := range a.Tags {
		if id == tagID {
			return true
		}
	}
	return false
}

// Tag is a user-defined label that accounts can reference by id. Tag names
// are treated case-insensitively for identity during merge operations.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// Settings holds user preferences persisted alongside the data.
type Settings struct {
	Language         string `json:"language"`
	DefaultDelimiter string `json:"default_delimiter"`
}

// Snapshot is the full persisted state: everything the store owns plus
// settings. The in-memory store is authoritative; snapshots are written
// best-effort after mutations.
type Snapshot struct {
	Accounts []Account `json:"accounts"`
	Tags     []Tag     `json:"tags"`
	Settings Settings  `json:"settings"`
}

// ImportRecord is one candidate entry fed to the merge engine, produced by
// the delimited-text parser or by a backup restore.
type ImportRecord struct {
	Email    string
	Password string
	TOTP     string
	Extras   []string
	// Tags carries already-remapped tag ids. Only backup restores set this;
	// text imports leave it empty.
	Tags []string
}

// LineError describes a single rejected record in a batch import. A bad
// record never aborts the batch; it is reported here instead.
type LineError struct {
	Line   int
	Reason string
}

// BackupData is the container for an exported backup document.
type BackupData struct {
	Version    int       `json:"version"`
	ExportDate time.Time `json:"exportDate"`
	Accounts   []Account `json:"accounts"`
	Tags       []Tag     `json:"tags"`
}
