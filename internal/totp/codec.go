// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package totp generates RFC 6238 time-based one-time passwords from Base32
// secrets and caches the results per 30-second window.
package totp

import "fmt"

// DecodeError reports a character outside the Base32 alphabet in a secret.
type DecodeError struct {
	Char byte
	Pos  int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid base32 character %q at position %d", e.Char, e.Pos)
}

// base32Val maps an alphabet character to its 5-bit value. Decoding is
// case-insensitive. Returns -1 for characters outside the alphabet.
func base32Val(c byte) int {
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	case c >= '2' && c <= '7':
		return int(c-'2') + 26
	default:
		return -1
	}
}

// Decode converts a Base32 secret into raw key bytes. A '=' pad character
// ends decoding early; any other character outside the alphabet yields a
// DecodeError. Trailing bits that do not fill a byte are dropped.
func Decode(secret string) ([]byte, error) {
	out := make([]byte, 0, len(secret)*5/8)
	var buf uint32
	var bits uint
	for i := 0; i < len(secret); i++ {
		c := secret[i]
		if c == '=' {
			break
		}
		v := base32Val(c)
		if v < 0 {
			return nil, &DecodeError{Char: c, Pos: i}
		}
		buf = buf<<5 | uint32(v)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(buf>>bits))
		}
	}
	return out, nil
}
