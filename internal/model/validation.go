// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError reports a malformed field on a record. Batch imports catch
// these at the record boundary and keep processing the remainder.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// totpSecretPattern matches a normalized TOTP secret: exactly 32 upper-case
// alphanumeric characters.
var totpSecretPattern = regexp.MustCompile(`^[A-Z0-9]{32}$`)

// NormalizeEmail lowercases and trims an email address. Account identity
// during merge uses the normalized form.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidateEmail checks that an email is plausible after normalization. The
// check is deliberately loose; the store is not in the business of full
// RFC 5322 parsing.
func ValidateEmail(s string) error {
	e := NormalizeEmail(s)
	if e == "" {
		return &ValidationError{Field: "email", Reason: "empty"}
	}
	at := strings.Index(e, "@")
	if at <= 0 || at == len(e)-1 {
		return &ValidationError{Field: "email", Reason: "missing user or domain part"}
	}
	return nil
}

// NormalizeTOTPSecret trims and upper-cases a secret.
func NormalizeTOTPSecret(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidateTOTPSecret checks the normalized secret. Empty is valid and means
// 2FA is disabled; anything else must be exactly 32 alphanumeric characters.
func ValidateTOTPSecret(s string) error {
	n := NormalizeTOTPSecret(s)
	if n == "" {
		return nil
	}
	if !totpSecretPattern.MatchString(n) {
		return &ValidationError{Field: "totp_secret", Reason: "must be 32 alphanumeric characters"}
	}
	return nil
}
