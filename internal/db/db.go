// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db persists store snapshots to a relational backend. The in-memory
// store is the authoritative model; this layer only records it. SQLite,
// PostgreSQL and MySQL are supported behind one Bun interface.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	// SQL drivers required for the non-default backends.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// sqlOpenFunc allows tests to override database opening behavior.
var sqlOpenFunc = sql.Open

// SnapshotStore writes and reads full store snapshots.
type SnapshotStore struct {
	bdb *bun.DB
}

// New opens a snapshot store for the given backend type and DSN and creates
// the schema when missing.
func New(dbType, dsn string) (*SnapshotStore, error) {
	driverName := dbType
	if dbType == "postgres" {
		driverName = "pgx"
	}
	sqlDB, err := sqlOpenFunc(driverName, dsn)
	if err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}

	var bdb *bun.DB
	switch dbType {
	case "sqlite":
		bdb = bun.NewDB(sqlDB, sqlitedialect.New())
	case "postgres":
		bdb = bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		bdb = bun.NewDB(sqlDB, mysqldialect.New())
	default:
		_ = sqlDB.Close()
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}

	s := &SnapshotStore{bdb: bdb}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// BunDB exposes the underlying handle for tests.
func (s *SnapshotStore) BunDB() *bun.DB { return s.bdb }

// Close releases the database handle.
func (s *SnapshotStore) Close() error {
	return s.bdb.Close()
}

func (s *SnapshotStore) ensureSchema(ctx context.Context) error {
	for _, m := range []any{(*accountRow)(nil), (*tagRow)(nil), (*settingsRow)(nil)} {
		if _, err := s.bdb.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return &PersistenceError{Op: "create schema", Err: MapDBError(err)}
		}
	}
	return nil
}
