// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"encoding/json"
	"time"

	"github.com/toeirei/credmaster/internal/model"
	"github.com/uptrace/bun"
)

// accountRow maps the accounts table for Bun queries. Extras and tag ids are
// stored as JSON arrays in text columns so every backend handles them the
// same way.
type accountRow struct {
	bun.BaseModel `bun:"table:accounts"`
	ID            string    `bun:"id,pk"`
	Email         string    `bun:"email,notnull"`
	Password      string    `bun:"password,notnull"`
	TOTPSecret    string    `bun:"totp_secret"`
	Extras        string    `bun:"extras"`
	Tags          string    `bun:"tags"`
	Completed     bool      `bun:"completed"`
	Favorite      bool      `bun:"favorite"`
	DisplayOrder  int       `bun:"display_order,notnull"`
	AddedAt       time.Time `bun:"added_at,nullzero"`
	LastUsed      time.Time `bun:"last_used,nullzero"`
}

// tagRow maps the tags table.
type tagRow struct {
	bun.BaseModel `bun:"table:tags"`
	ID            string    `bun:"id,pk"`
	Name          string    `bun:"name,notnull"`
	Color         string    `bun:"color"`
	CreatedAt     time.Time `bun:"created_at,nullzero"`
}

// settingsRow maps the single-row settings table.
type settingsRow struct {
	bun.BaseModel    `bun:"table:settings"`
	ID               int    `bun:"id,pk"`
	Language         string `bun:"language"`
	DefaultDelimiter string `bun:"default_delimiter"`
}

// --- Mapping helpers (centralized conversions) ---

func accountToRow(a model.Account) accountRow {
	return accountRow{
		ID:           a.ID,
		Email:        a.Email,
		Password:     a.Password,
		TOTPSecret:   a.TOTPSecret,
		Extras:       encodeStrings(a.Extras),
		Tags:         encodeStrings(a.Tags),
		Completed:    a.Completed,
		Favorite:     a.Favorite,
		DisplayOrder: a.Order,
		AddedAt:      a.AddedAt,
		LastUsed:     a.LastUsed,
	}
}

func rowToAccount(r accountRow) model.Account {
	return model.Account{
		ID:         r.ID,
		Email:      r.Email,
		Password:   r.Password,
		TOTPSecret: r.TOTPSecret,
		Extras:     decodeStrings(r.Extras),
		Tags:       decodeStrings(r.Tags),
		Completed:  r.Completed,
		Favorite:   r.Favorite,
		Order:      r.DisplayOrder,
		AddedAt:    r.AddedAt,
		LastUsed:   r.LastUsed,
	}
}

func tagToRow(t model.Tag) tagRow {
	return tagRow{ID: t.ID, Name: t.Name, Color: t.Color, CreatedAt: t.CreatedAt}
}

func rowToTag(r tagRow) model.Tag {
	return model.Tag{ID: r.ID, Name: r.Name, Color: r.Color, CreatedAt: r.CreatedAt}
}

func encodeStrings(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeStrings(s string) []string {
	if s == "" || s == "[]" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}
