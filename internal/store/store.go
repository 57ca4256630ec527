// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package store is the sole owner of accounts and tags. All mutations go
// through its operations, which re-establish the structural invariants:
// order values form a dense permutation of {0..count-1}, and every tag id
// referenced by an account exists. Engines (merge, reorder callers, backup
// restore) act on the store through these operations, never by direct field
// mutation.
package store

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/toeirei/credmaster/internal/clock"
	"github.com/toeirei/credmaster/internal/model"
)

// newID generates entity ids. It is a variable so tests can pin ids.
var newID = uuid.NewString

// Store holds the in-memory authoritative state. It assumes a single logical
// actor driving one mutation at a time; no internal locking is performed.
type Store struct {
	clk      clock.Clock
	accounts []model.Account // kept sorted by Order; Order == index
	tags     []model.Tag
	settings model.Settings
}

// New returns an empty store using the given clock for timestamps.
func New(clk clock.Clock) *Store {
	return &Store{clk: clk}
}

// Count returns the number of accounts.
func (s *Store) Count() int { return len(s.accounts) }

// Accounts returns a copy of all accounts in display order.
func (s *Store) Accounts() []model.Account {
	out := make([]model.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// AccountByID looks up an account by id.
func (s *Store) AccountByID(id string) (model.Account, bool) {
	if i := s.indexByID(id); i >= 0 {
		return s.accounts[i], true
	}
	return model.Account{}, false
}

// AccountsByEmail returns all accounts whose normalized email matches, in
// display order. Multiple hits are legitimate: identical email+password
// pairs coexist when their TOTP secrets differ.
func (s *Store) AccountsByEmail(email string) []model.Account {
	norm := model.NormalizeEmail(email)
	var out []model.Account
	for _, a := range s.accounts {
		if a.Email == norm {
			out = append(out, a)
		}
	}
	return out
}

// AddAccount validates and inserts a new account at the end of the display
// order. Empty id, order and timestamps are filled in; email and TOTP secret
// are normalized. Tag references must exist.
func (s *Store) AddAccount(a model.Account) (model.Account, error) {
	if err := model.ValidateEmail(a.Email); err != nil {
		return model.Account{}, err
	}
	if err := model.ValidateTOTPSecret(a.TOTPSecret); err != nil {
		return model.Account{}, err
	}
	for _, tagID := range a.Tags {
		if s.indexTagByID(tagID) < 0 {
			return model.Account{}, ErrUnknownTag
		}
	}
	a.Email = model.NormalizeEmail(a.Email)
	a.TOTPSecret = model.NormalizeTOTPSecret(a.TOTPSecret)
	if a.ID == "" {
		a.ID = newID()
	}
	if a.AddedAt.IsZero() {
		a.AddedAt = s.clk.Now()
	}
	a.Order = len(s.accounts)
	s.accounts = append(s.accounts, a)
	return a, nil
}

// DeleteAccount removes an account and compacts the order sequence: every
// account ordered after the removed one shifts down by exactly one.
func (s *Store) DeleteAccount(id string) error {
	i := s.indexByID(id)
	if i < 0 {
		return ErrNotFound
	}
	removed := s.accounts[i].Order
	s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
	for j := range s.accounts {
		if s.accounts[j].Order > removed {
			s.accounts[j].Order--
		}
	}
	s.sortByOrder()
	return nil
}

// SetPassword replaces the stored password verbatim.
func (s *Store) SetPassword(id, password string) error {
	i := s.indexByID(id)
	if i < 0 {
		return ErrNotFound
	}
	s.accounts[i].Password = password
	return nil
}

// SetTOTPSecret validates, normalizes and stores a TOTP secret. An empty
// secret disables 2FA for the account.
func (s *Store) SetTOTPSecret(id, secret string) error {
	i := s.indexByID(id)
	if i < 0 {
		return ErrNotFound
	}
	if err := model.ValidateTOTPSecret(secret); err != nil {
		return err
	}
	s.accounts[i].TOTPSecret = model.NormalizeTOTPSecret(secret)
	return nil
}

// AddExtras appends any extras not already present (exact string equality),
// preserving existing order. It reports whether the account changed.
func (s *Store) AddExtras(id string, extras []string) (bool, error) {
	i := s.indexByID(id)
	if i < 0 {
		return false, ErrNotFound
	}
	changed := false
	for _, e := range extras {
		if e == "" {
			continue
		}
		if !containsString(s.accounts[i].Extras, e) {
			s.accounts[i].Extras = append(s.accounts[i].Extras, e)
			changed = true
		}
	}
	return changed, nil
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *Store) ToggleFavorite(id string) (bool, error) {
	i := s.indexByID(id)
	if i < 0 {
		return false, ErrNotFound
	}
	s.accounts[i].Favorite = !s.accounts[i].Favorite
	return s.accounts[i].Favorite, nil
}

// ToggleCompleted flips the completed flag and returns the new value.
func (s *Store) ToggleCompleted(id string) (bool, error) {
	i := s.indexByID(id)
	if i < 0 {
		return false, ErrNotFound
	}
	s.accounts[i].Completed = !s.accounts[i].Completed
	return s.accounts[i].Completed, nil
}

// TouchLastUsed stamps the account with the current time.
func (s *Store) TouchLastUsed(id string) error {
	i := s.indexByID(id)
	if i < 0 {
		return ErrNotFound
	}
	s.accounts[i].LastUsed = s.clk.Now()
	return nil
}

// Settings returns the current settings.
func (s *Store) Settings() model.Settings { return s.settings }

// SetSettings replaces the settings.
func (s *Store) SetSettings(set model.Settings) { s.settings = set }

func (s *Store) indexByID(id string) int {
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) sortByOrder() {
	sort.SliceStable(s.accounts, func(i, j int) bool {
		return s.accounts[i].Order < s.accounts[j].Order
	})
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
