// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backup reads and writes backup documents and feeds restores
// through the merge engine, so backup restore and text import share one
// conflict-resolution path.
package backup

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/toeirei/credmaster/internal/merge"
	"github.com/toeirei/credmaster/internal/model"
	"github.com/toeirei/credmaster/internal/store"
)

// SchemaVersion is written into every backup document.
const SchemaVersion = 1

// zstdMagic is the zstd frame header used to sniff compressed backups.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Export captures the store into a backup document.
func Export(st *store.Store, now time.Time) *model.BackupData {
	return &model.BackupData{
		Version:    SchemaVersion,
		ExportDate: now,
		Accounts:   st.Accounts(),
		Tags:       st.Tags(),
	}
}

// Write writes a zstd-compressed, indented JSON backup.
func Write(w io.Writer, data *model.BackupData) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	defer func() { _ = zw.Close() }()
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return zw.Close()
}

// WriteJSON writes a plain, uncompressed JSON export document.
func WriteJSON(w io.Writer, data *model.BackupData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// Read decodes a backup document, accepting both zstd-compressed and plain
// JSON input. Structural problems surface as a ValidationError.
func Read(r io.Reader) (*model.BackupData, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read backup: %w", err)
	}

	var src io.Reader = br
	if bytes.Equal(head, zstdMagic) {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("create zstd reader: %w", err)
		}
		defer zr.Close()
		src = zr
	}

	var data model.BackupData
	if err := json.NewDecoder(src).Decode(&data); err != nil {
		return nil, &model.ValidationError{Field: "backup", Reason: "not a valid backup document"}
	}
	if data.Version < 1 {
		return nil, &model.ValidationError{Field: "backup", Reason: "missing or unsupported version"}
	}
	return &data, nil
}

// RestoreOptions controls restore behavior.
type RestoreOptions struct {
	// Full replaces the store contents instead of merging.
	Full bool
}

// Restore applies a backup document to the store. A merge restore remaps
// imported tag ids onto existing tags by case-insensitive name (existing
// colors are never overwritten), then hands the accounts to the merge
// engine. A full restore replaces accounts and tags wholesale.
func Restore(st *store.Store, data *model.BackupData, opts RestoreOptions) (merge.Stats, []merge.RecordError, error) {
	if opts.Full {
		st.Load(&model.Snapshot{
			Accounts: data.Accounts,
			Tags:     data.Tags,
			Settings: st.Settings(),
		})
		return merge.Stats{Added: len(data.Accounts)}, nil, nil
	}

	remap, err := remapTags(st, data.Tags)
	if err != nil {
		return merge.Stats{}, nil, err
	}

	records := make([]model.ImportRecord, 0, len(data.Accounts))
	for _, a := range data.Accounts {
		rec := model.ImportRecord{
			Email:    a.Email,
			Password: a.Password,
			TOTP:     a.TOTPSecret,
			Extras:   a.Extras,
		}
		for _, oldID := range a.Tags {
			if newID, ok := remap[oldID]; ok {
				rec.Tags = append(rec.Tags, newID)
			}
		}
		records = append(records, rec)
	}
	stats, errs := merge.Apply(st, records)
	return stats, errs, nil
}

// remapTags merges imported tags into the store by name and returns the
// imported-id -> store-id mapping.
func remapTags(st *store.Store, tags []model.Tag) (map[string]string, error) {
	remap := make(map[string]string, len(tags))
	for _, t := range tags {
		if existing, ok := st.TagByName(t.Name); ok {
			remap[t.ID] = existing.ID
			continue
		}
		created, err := st.AddTag(t.Name, t.Color)
		if err != nil {
			return nil, fmt.Errorf("import tag %q: %w", t.Name, err)
		}
		remap[t.ID] = created.ID
	}
	return remap, nil
}
