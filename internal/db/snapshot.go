// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/toeirei/credmaster/internal/model"
)

// Save replaces the persisted state with the given snapshot inside a single
// transaction. A failure is reported as a PersistenceError and leaves the
// previous persisted state intact; the in-memory model is never rolled back.
func (s *SnapshotStore) Save(ctx context.Context, snap *model.Snapshot) error {
	tx, err := s.bdb.BeginTx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: "begin save", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"accounts", "tags", "settings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return &PersistenceError{Op: "clear " + table, Err: MapDBError(err)}
		}
	}

	if len(snap.Accounts) > 0 {
		rows := make([]accountRow, len(snap.Accounts))
		for i, a := range snap.Accounts {
			rows[i] = accountToRow(a)
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return &PersistenceError{Op: "write accounts", Err: MapDBError(err)}
		}
	}
	if len(snap.Tags) > 0 {
		rows := make([]tagRow, len(snap.Tags))
		for i, t := range snap.Tags {
			rows[i] = tagToRow(t)
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return &PersistenceError{Op: "write tags", Err: MapDBError(err)}
		}
	}
	set := settingsRow{ID: 1, Language: snap.Settings.Language, DefaultDelimiter: snap.Settings.DefaultDelimiter}
	if _, err := tx.NewInsert().Model(&set).Exec(ctx); err != nil {
		return &PersistenceError{Op: "write settings", Err: MapDBError(err)}
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "commit save", Err: err}
	}
	return nil
}

// Load reads the persisted snapshot. A fresh database yields an empty
// snapshot, not an error.
func (s *SnapshotStore) Load(ctx context.Context) (*model.Snapshot, error) {
	var snap model.Snapshot

	var accounts []accountRow
	if err := s.bdb.NewSelect().Model(&accounts).OrderExpr("display_order").Scan(ctx); err != nil {
		return nil, &PersistenceError{Op: "read accounts", Err: MapDBError(err)}
	}
	for _, r := range accounts {
		snap.Accounts = append(snap.Accounts, rowToAccount(r))
	}

	var tags []tagRow
	if err := s.bdb.NewSelect().Model(&tags).OrderExpr("created_at, name").Scan(ctx); err != nil {
		return nil, &PersistenceError{Op: "read tags", Err: MapDBError(err)}
	}
	for _, r := range tags {
		snap.Tags = append(snap.Tags, rowToTag(r))
	}

	var set settingsRow
	err := s.bdb.NewSelect().Model(&set).Where("id = ?", 1).Limit(1).Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Fresh database; defaults apply.
	case err != nil:
		return nil, &PersistenceError{Op: "read settings", Err: MapDBError(err)}
	default:
		snap.Settings = model.Settings{Language: set.Language, DefaultDelimiter: set.DefaultDelimiter}
	}
	return &snap, nil
}
