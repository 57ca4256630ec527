// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package merge resolves imported candidate records against the store. Text
// imports and backup restores share this single conflict-resolution path.
package merge

import (
	"github.com/toeirei/credmaster/internal/model"
	"github.com/toeirei/credmaster/internal/store"
)

// Stats counts merge outcomes per batch.
type Stats struct {
	Added   int
	Updated int
	Skipped int
}

// RecordError ties a rejected candidate to its position in the batch. The
// batch continues past it; one bad record never aborts an import.
type RecordError struct {
	Index int
	Err   error
}

// Apply merges candidates into the store in batch order.
//
// A candidate matches an existing account when the normalized emails and the
// exact passwords agree, TOTP ignored; the first match in store order wins.
// Conflicts resolve on TOTP presence:
//
//	existing | candidate | action
//	present  | absent    | skip (never drop a stored secret)
//	absent   | present   | adopt secret, union extras -> updated
//	present  | equal     | union extras -> updated if changed, else skipped
//	present  | different | insert candidate as a separate account -> added
//	absent   | absent    | union extras -> updated if changed, else skipped
//
// The "different secrets" branch is deliberate: identical email+password
// pairs legitimately coexist when their TOTP secrets differ.
func Apply(st *store.Store, records []model.ImportRecord) (Stats, []RecordError) {
	var stats Stats
	var errs []RecordError
	for idx, rec := range records {
		if err := mergeOne(st, rec, &stats); err != nil {
			errs = append(errs, RecordError{Index: idx, Err: err})
		}
	}
	return stats, errs
}

func mergeOne(st *store.Store, rec model.ImportRecord, stats *Stats) error {
	if err := model.ValidateEmail(rec.Email); err != nil {
		return err
	}
	if err := model.ValidateTOTPSecret(rec.TOTP); err != nil {
		return err
	}
	email := model.NormalizeEmail(rec.Email)
	secret := model.NormalizeTOTPSecret(rec.TOTP)

	existing, found := findMatch(st, email, rec.Password)
	if !found {
		return insert(st, rec, stats)
	}

	switch {
	case existing.HasTOTP() && secret == "":
		stats.Skipped++
		return nil

	case !existing.HasTOTP() && secret != "":
		if err := st.SetTOTPSecret(existing.ID, secret); err != nil {
			return err
		}
		if _, err := unionData(st, existing.ID, rec); err != nil {
			return err
		}
		stats.Updated++
		return nil

	case existing.HasTOTP() && secret != "" && existing.TOTPSecret != secret:
		return insert(st, rec, stats)

	default:
		// Secrets equal, or neither side has one: union and count by change.
		changed, err := unionData(st, existing.ID, rec)
		if err != nil {
			return err
		}
		if changed {
			stats.Updated++
		} else {
			stats.Skipped++
		}
		return nil
	}
}

// findMatch scans accounts in display order and returns the first whose
// email and password match the candidate.
func findMatch(st *store.Store, email, password string) (model.Account, bool) {
	for _, a := range st.Accounts() {
		if a.Email == email && a.Password == password {
			return a, true
		}
	}
	return model.Account{}, false
}

func insert(st *store.Store, rec model.ImportRecord, stats *Stats) error {
	_, err := st.AddAccount(model.Account{
		Email:      rec.Email,
		Password:   rec.Password,
		TOTPSecret: rec.TOTP,
		Extras:     cleanExtras(rec.Extras),
		Tags:       rec.Tags,
	})
	if err != nil {
		return err
	}
	stats.Added++
	return nil
}

// unionData merges extras and (for backup candidates) tag ids onto an
// existing account. Nothing is ever removed.
func unionData(st *store.Store, id string, rec model.ImportRecord) (bool, error) {
	changed, err := st.AddExtras(id, rec.Extras)
	if err != nil {
		return false, err
	}
	if len(rec.Tags) > 0 {
		tagsChanged, err := st.AddTags(id, rec.Tags)
		if err != nil {
			return false, err
		}
		changed = changed || tagsChanged
	}
	return changed, nil
}

func cleanExtras(extras []string) []string {
	out := make([]string, 0, len(extras))
	for _, e := range extras {
		if e != "" {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
