// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"sync"
	"time"

	"github.com/toeirei/credmaster/internal/logging"
	"github.com/toeirei/credmaster/internal/model"
)

// DefaultSaveDelay coalesces bursts of mutations into one write.
const DefaultSaveDelay = 500 * time.Millisecond

// Saver debounces snapshot writes. Schedule may be called after every store
// mutation; only the latest snapshot within the delay window is written.
// A failed write is logged and kept pending for the next flush; the
// in-memory state always stands.
type Saver struct {
	store *SnapshotStore
	delay time.Duration

	mu      sync.Mutex
	pending *model.Snapshot
	timer   *time.Timer
}

// NewSaver returns a Saver writing through st after the given delay.
func NewSaver(st *SnapshotStore, delay time.Duration) *Saver {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	return &Saver{store: st, delay: delay}
}

// Schedule records the snapshot as the latest state and arms the write
// timer. Later calls within the delay window supersede earlier ones.
func (s *Saver) Schedule(snap *model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = snap
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		if err := s.Flush(); err != nil {
			logging.Errorf("deferred snapshot write failed: %v", err)
		}
	})
}

// Flush writes any pending snapshot immediately. It is called on shutdown
// and by the debounce timer.
func (s *Saver) Flush() error {
	s.mu.Lock()
	snap := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if snap == nil {
		return nil
	}
	if err := s.store.Save(context.Background(), snap); err != nil {
		s.mu.Lock()
		// Keep the snapshot for a later retry unless something newer arrived.
		if s.pending == nil {
			s.pending = snap
		}
		s.mu.Unlock()
		return err
	}
	return nil
}
