// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package store

import (
	"sort"

	"github.com/toeirei/credmaster/internal/model"
)

// Snapshot copies the full store state for persistence or export.
func (s *Store) Snapshot() *model.Snapshot {
	return &model.Snapshot{
		Accounts: s.Accounts(),
		Tags:     s.Tags(),
		Settings: s.settings,
	}
}

// Load replaces the store state with a persisted snapshot. Tag references
// to unknown tags are dropped and order values are re-densified, so a
// snapshot written by an older build or edited by hand still loads into a
// consistent store.
func (s *Store) Load(snap *model.Snapshot) {
	if snap == nil {
		return
	}
	s.tags = append([]model.Tag(nil), snap.Tags...)
	s.accounts = append([]model.Account(nil), snap.Accounts...)
	s.settings = snap.Settings

	for i := range s.accounts {
		kept := s.accounts[i].Tags[:0]
		for _, tagID := range s.accounts[i].Tags {
			if s.indexTagByID(tagID) >= 0 {
				kept = append(kept, tagID)
			}
		}
		s.accounts[i].Tags = kept
	}

	// Re-establish the dense permutation, preserving the recorded ordering.
	sort.SliceStable(s.accounts, func(i, j int) bool {
		return s.accounts[i].Order < s.accounts[j].Order
	})
	for i := range s.accounts {
		s.accounts[i].Order = i
	}
}
