// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"fmt"
	"io"
	"strings"

	"github.com/toeirei/credmaster/internal/model"
)

// Exportable field names for delimited export.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldTOTP     = "totp"
	FieldExtras   = "extras"
)

// DefaultFields is the field order used when the caller selects nothing.
var DefaultFields = []string{FieldEmail, FieldPassword, FieldTOTP, FieldExtras}

// ExportDelimited writes accounts as delimited text with a selectable subset
// of fields. Extras are flattened into consecutive fields.
func ExportDelimited(w io.Writer, accounts []model.Account, delimiter string, fields []string) error {
	if delimiter == "" {
		delimiter = "|"
	}
	if len(fields) == 0 {
		fields = DefaultFields
	}
	for _, f := range fields {
		switch f {
		case FieldEmail, FieldPassword, FieldTOTP, FieldExtras:
		default:
			return &model.ValidationError{Field: "fields", Reason: fmt.Sprintf("unknown field %q", f)}
		}
	}

	var sb strings.Builder
	for _, a := range accounts {
		sb.Reset()
		parts := make([]string, 0, len(fields)+len(a.Extras))
		for _, f := range fields {
			switch f {
			case FieldEmail:
				parts = append(parts, a.Email)
			case FieldPassword:
				parts = append(parts, a.Password)
			case FieldTOTP:
				parts = append(parts, a.TOTPSecret)
			case FieldExtras:
				parts = append(parts, a.Extras...)
			}
		}
		sb.WriteString(strings.Join(parts, delimiter))
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
	}
	return nil
}
