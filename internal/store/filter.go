// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package store

import (
	"strings"

	"github.com/toeirei/credmaster/internal/model"
)

// Filter narrows the account list for presentation. All criteria are
// conjunctive; zero values mean "no constraint".
type Filter struct {
	// Query matches case-insensitively against email and extras.
	Query string
	// TagID keeps only accounts referencing the tag.
	TagID string
	// FavoritesOnly keeps only favorites.
	FavoritesOnly bool
	// WithTOTP keeps only accounts that have a TOTP secret.
	WithTOTP bool
}

// FilterAccounts returns matching accounts in display order.
func (s *Store) FilterAccounts(f Filter) []model.Account {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	var out []model.Account
	for _, a := range s.accounts {
		if f.TagID != "" && !a.HasTag(f.TagID) {
			continue
		}
		if f.FavoritesOnly && !a.Favorite {
			continue
		}
		if f.WithTOTP && !a.HasTOTP() {
			continue
		}
		if q != "" && !matchesQuery(a, q) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchesQuery(a model.Account, q string) bool {
	if strings.Contains(strings.ToLower(a.Email), q) {
		return true
	}
	for _, e := range a.Extras {
		if strings.Contains(strings.ToLower(e), q) {
			return true
		}
	}
	return false
}
