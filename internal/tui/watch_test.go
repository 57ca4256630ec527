// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/toeirei/credmaster/internal/clock"
	"github.com/toeirei/credmaster/internal/i18n"
	"github.com/toeirei/credmaster/internal/model"
	"github.com/toeirei/credmaster/internal/store"
)

const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func watchFixture(t *testing.T) (*store.Store, *clock.Fixed) {
	t.Helper()
	i18n.Init("en")
	clk := &clock.Fixed{T: time.Unix(59, 0).UTC()}
	st := store.New(clk)
	if _, err := st.AddAccount(model.Account{Email: "a@x.com", Password: "pw", TOTPSecret: rfcSecret}); err != nil {
		t.Fatalf("AddAccount: %v", err)
	}
	if _, err := st.AddAccount(model.Account{Email: "b@x.com", Password: "pw"}); err != nil {
		t.Fatalf("AddAccount: %v", err)
	}
	return st, clk
}

func TestWatchModelRowsOnlySecretAccounts(t *testing.T) {
	st, _ := watchFixture(t)
	m := newWatchModel(st, &clock.Fixed{T: time.Unix(59, 0).UTC()})

	rows := m.table.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row (only secret-bearing accounts), got %d", len(rows))
	}
	if rows[0][0] != "a@x.com" {
		t.Fatalf("unexpected email: %q", rows[0][0])
	}
	if rows[0][1] != "287082" {
		t.Fatalf("unexpected code at t=59: %q", rows[0][1])
	}
	if rows[0][2] != "1s" {
		t.Fatalf("unexpected countdown at t=59: %q", rows[0][2])
	}
}

func TestWatchModelFilter(t *testing.T) {
	st, clk := watchFixture(t)
	if _, err := st.AddAccount(model.Account{Email: "other@y.org", Password: "pw", TOTPSecret: rfcSecret}); err != nil {
		t.Fatalf("AddAccount: %v", err)
	}
	m := newWatchModel(st, clk)

	if len(m.table.Rows()) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(m.table.Rows()))
	}
	m.filter = "other"
	m.rebuildTableRows()
	rows := m.table.Rows()
	if len(rows) != 1 || rows[0][0] != "other@y.org" {
		t.Fatalf("filter did not narrow rows: %v", rows)
	}
}

func TestWatchModelCopySelected(t *testing.T) {
	st, clk := watchFixture(t)
	m := newWatchModel(st, clk)

	var copied string
	orig := clipboardWriteFunc
	clipboardWriteFunc = func(s string) error {
		copied = s
		return nil
	}
	defer func() { clipboardWriteFunc = orig }()

	m.copySelected()
	if copied != "287082" {
		t.Fatalf("expected copied code 287082, got %q", copied)
	}
	if !strings.Contains(m.status, "a@x.com") {
		t.Fatalf("expected status to mention the account, got %q", m.status)
	}

	acc := st.Accounts()[0]
	if acc.LastUsed.IsZero() {
		t.Fatal("copy must record last use")
	}
}

func TestWatchTickTargetsWindowBoundary(t *testing.T) {
	st, clk := watchFixture(t)
	m := newWatchModel(st, clk)

	boundary := m.gen.NextBoundary()
	if !boundary.Equal(time.Unix(60, 0)) {
		t.Fatalf("expected window boundary at t=60, got %v", boundary)
	}

	// At a whole second the next tick is the boundary itself.
	if got := nextTickAt(clk.Now(), boundary); !got.Equal(boundary) {
		t.Fatalf("tick at t=59 must land on the boundary, got %v", got)
	}

	// A sub-second offset still lands the next tick on the boundary.
	if got := nextTickAt(time.Unix(59, 500_000_000).UTC(), boundary); !got.Equal(boundary) {
		t.Fatalf("tick must not schedule past the boundary, got %v", got)
	}

	// Mid-window ticks fall on whole seconds.
	if got := nextTickAt(time.Unix(30, 0).UTC(), time.Unix(60, 0)); !got.Equal(time.Unix(31, 0)) {
		t.Fatalf("expected whole-second tick at t=31, got %v", got)
	}
}

func TestWatchModelCodeRollsOverAtBoundary(t *testing.T) {
	st, clk := watchFixture(t)
	m := newWatchModel(st, clk)

	before := m.table.Rows()[0][1]
	clk.Advance(1 * time.Second) // crosses into window 2
	m.rebuildTableRows()
	after := m.table.Rows()[0][1]
	if before == after {
		t.Fatalf("code must change at the window boundary: %q", after)
	}
}
