// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package store

// ReorderResult reports what a reorder did. Explicit results replace any
// notify-on-mutation machinery; the caller decides what to refresh.
type ReorderResult struct {
	ID       string
	OldOrder int
	NewOrder int
	Shifted  int
}

// Reorder moves an account to newOrder and recomputes the order of every
// affected account so the dense permutation over {0..count-1} holds:
//
//   - moving later: accounts with oldOrder < order <= newOrder shift down
//   - moving earlier: accounts with newOrder <= order < oldOrder shift up
//   - equal: no-op
//
// newOrder == count is accepted as "after the last element" and lands the
// account at the end.
func (s *Store) Reorder(id string, newOrder int) (ReorderResult, error) {
	i := s.indexByID(id)
	if i < 0 {
		return ReorderResult{}, ErrNotFound
	}
	if newOrder < 0 || newOrder > len(s.accounts) {
		return ReorderResult{}, ErrOrderOutOfRange
	}
	if newOrder == len(s.accounts) {
		newOrder = len(s.accounts) - 1
	}

	oldOrder := s.accounts[i].Order
	res := ReorderResult{ID: id, OldOrder: oldOrder, NewOrder: newOrder}
	if oldOrder == newOrder {
		return res, nil
	}

	s.accounts[i].Order = newOrder
	for j := range s.accounts {
		if j == i {
			continue
		}
		o := s.accounts[j].Order
		switch {
		case oldOrder < newOrder && o > oldOrder && o <= newOrder:
			s.accounts[j].Order = o - 1
			res.Shifted++
		case oldOrder > newOrder && o >= newOrder && o < oldOrder:
			s.accounts[j].Order = o + 1
			res.Shifted++
		}
	}
	s.sortByOrder()
	return res, nil
}
