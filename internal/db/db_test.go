// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.
package db

import (
	"context"
	"testing"
	"time"

	"github.com/toeirei/credmaster/internal/model"
)

func memoryStore(t *testing.T) *SnapshotStore {
	t.Helper()
	s, err := New("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveLoadRoundtrip(t *testing.T) {
	s := memoryStore(t)
	added := time.Unix(1_700_000_000, 0).UTC()
	snap := &model.Snapshot{
		Accounts: []model.Account{
			{
				ID:         "acc-1",
				Email:      "a@x.com",
				Password:   "pw",
				TOTPSecret: "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ",
				Extras:     []string{"alias", "note"},
				Tags:       []string{"tag-1"},
				Favorite:   true,
				Order:      0,
				AddedAt:    added,
			},
			{ID: "acc-2", Email: "b@x.com", Password: "pw2", Order: 1, AddedAt: added},
		},
		Tags:     []model.Tag{{ID: "tag-1", Name: "work", Color: "#123", CreatedAt: added}},
		Settings: model.Settings{Language: "de", DefaultDelimiter: ";"},
	}
	if err := s.Save(context.Background(), snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Accounts) != 2 || len(got.Tags) != 1 {
		t.Fatalf("roundtrip lost rows: %d accounts, %d tags", len(got.Accounts), len(got.Tags))
	}
	a := got.Accounts[0]
	if a.ID != "acc-1" || a.Email != "a@x.com" || !a.Favorite {
		t.Fatalf("unexpected account: %+v", a)
	}
	if len(a.Extras) != 2 || a.Extras[1] != "note" {
		t.Fatalf("extras lost: %v", a.Extras)
	}
	if len(a.Tags) != 1 || a.Tags[0] != "tag-1" {
		t.Fatalf("tag refs lost: %v", a.Tags)
	}
	if got.Settings.Language != "de" || got.Settings.DefaultDelimiter != ";" {
		t.Fatalf("settings lost: %+v", got.Settings)
	}
}

func TestSaveReplacesPriorState(t *testing.T) {
	s := memoryStore(t)
	ctx := context.Background()

	first := &model.Snapshot{Accounts: []model.Account{{ID: "a", Email: "a@x.com", Password: "p"}}}
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	second := &model.Snapshot{Accounts: []model.Account{{ID: "b", Email: "b@x.com", Password: "p"}}}
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Accounts) != 1 || got.Accounts[0].ID != "b" {
		t.Fatalf("save must replace, not append: %+v", got.Accounts)
	}
}

func TestLoadFreshDatabase(t *testing.T) {
	s := memoryStore(t)
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load on fresh db failed: %v", err)
	}
	if len(got.Accounts) != 0 || len(got.Tags) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", got)
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	if _, err := New("oracle", "dsn"); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}

func TestSaverCoalescesWrites(t *testing.T) {
	s := memoryStore(t)
	saver := NewSaver(s, 50*time.Millisecond)

	saver.Schedule(&model.Snapshot{Accounts: []model.Account{{ID: "x", Email: "x@x.com", Password: "p"}}})
	saver.Schedule(&model.Snapshot{Accounts: []model.Account{{ID: "y", Email: "y@x.com", Password: "p"}}})
	if err := saver.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Accounts) != 1 || got.Accounts[0].ID != "y" {
		t.Fatalf("only the latest snapshot must be written: %+v", got.Accounts)
	}

	// Nothing pending: Flush is a no-op.
	if err := saver.Flush(); err != nil {
		t.Fatalf("idle Flush failed: %v", err)
	}
}
