// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package importer parses delimited credential dumps into candidate records
// for the merge engine. Parsing is tolerant: a malformed line is reported
// with its line number and the rest of the batch continues.
package importer

import (
	"fmt"
	"strings"

	"github.com/toeirei/credmaster/internal/model"
)

// Options controls how a dump is parsed.
type Options struct {
	// Delimiter separates fields. Multi-character delimiters are allowed
	// (e.g. ";;;").
	Delimiter string
	// TOTPField treats field 3 as a TOTP secret. When false, field 3 onward
	// is all extras.
	TOTPField bool
}

// ParsedRecord is a candidate plus the 1-based line it came from, so merge
// failures can be reported against the source file.
type ParsedRecord struct {
	model.ImportRecord
	Line int
}

// Result holds everything Parse extracted from a dump.
type Result struct {
	Records []ParsedRecord
	Errors  []model.LineError
}

// ImportRecords strips line info for handoff to the merge engine.
func (r Result) ImportRecords() []model.ImportRecord {
	out := make([]model.ImportRecord, len(r.Records))
	for i, p := range r.Records {
		out[i] = p.ImportRecord
	}
	return out
}

// Parse splits content into candidate records. Blank lines and lines
// starting with '#' are skipped. Each record needs at least two fields
// (email, password); fewer is a per-line error, not a batch abort.
func Parse(content string, opts Options) Result {
	var res Result
	if opts.Delimiter == "" {
		opts.Delimiter = "|"
	}
	for i, raw := range splitLines(content) {
		line := i + 1
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, opts.Delimiter)
		if len(fields) < 2 {
			res.Errors = append(res.Errors, model.LineError{
				Line:   line,
				Reason: fmt.Sprintf("need at least 2 fields, got %d", len(fields)),
			})
			continue
		}
		rec := model.ImportRecord{
			Email:    strings.TrimSpace(fields[0]),
			Password: fields[1],
		}
		rest := fields[2:]
		if opts.TOTPField && len(rest) > 0 {
			rec.TOTP = strings.TrimSpace(rest[0])
			rest = rest[1:]
		}
		for _, f := range rest {
			if f = strings.TrimSpace(f); f != "" {
				rec.Extras = append(rec.Extras, f)
			}
		}
		res.Records = append(res.Records, ParsedRecord{ImportRecord: rec, Line: line})
	}
	return res
}

func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(content, "\n")
}
