// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/toeirei/credmaster/internal/clock"
)

const (
	// Period is the length of one time window in seconds.
	Period = 30
	// Digits is the width of a generated code.
	Digits = 6
)

// Unavailable is returned in place of a code when the secret cannot be
// decoded. Callers render it as-is; it is exactly Digits wide.
const Unavailable = "------"

// hmacSum computes HMAC-SHA1 over msg. It is a variable so tests can count
// or stub invocations.
var hmacSum = func(key, msg []byte) []byte {
	mac := hmac.New(sha1.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

// Window returns the 30-second window index for the given instant.
func Window(now time.Time) int64 {
	return now.Unix() / Period
}

// NextBoundary returns the start of the window following now. Refresh ticks
// are scheduled against this instant rather than a fixed poll interval so
// displayed codes never drift relative to the wall clock.
func NextBoundary(now time.Time) time.Time {
	return time.Unix((Window(now)+1)*Period, 0)
}

// Remaining returns how long the code for the current window stays valid.
func Remaining(now time.Time) time.Duration {
	return NextBoundary(now).Sub(now)
}

// Compute derives the 6-digit code for a secret at the given window using
// RFC 4226 dynamic truncation. It fails with a DecodeError for malformed
// secrets.
func Compute(secret string, window int64) (string, error) {
	key, err := Decode(secret)
	if err != nil {
		return "", err
	}
	var counter [8]byte
	binary.BigEndian.PutUint64(counter[:], uint64(window))
	digest := hmacSum(key, counter[:])
	offset := digest[len(digest)-1] & 0x0F
	value := binary.BigEndian.Uint32(digest[offset:offset+4]) & 0x7FFFFFFF
	return fmt.Sprintf("%06d", value%1_000_000), nil
}

// Generator produces codes for the current window and memoizes them in a
// bounded cache. Safe for concurrent use: recomputation for the same
// (secret, window) pair is idempotent, so racing callers converge on the
// identical code without coordination.
type Generator struct {
	clk   clock.Clock
	cache *Cache
}

// NewGenerator returns a Generator using the given clock and a cache bounded
// at DefaultCacheSize entries.
func NewGenerator(clk clock.Clock) *Generator {
	return &Generator{clk: clk, cache: NewCache(DefaultCacheSize)}
}

// Code returns the current 6-digit code for secret, or Unavailable when the
// secret cannot be decoded. Decode failures never propagate as errors here;
// the caller is rendering a list and a placeholder is the correct outcome.
func (g *Generator) Code(secret string) string {
	w := Window(g.clk.Now())
	if code, ok := g.cache.Get(secret, w); ok {
		return code
	}
	code, err := Compute(secret, w)
	if err != nil {
		return Unavailable
	}
	g.cache.Put(secret, w, code)
	return code
}

// Remaining reports the validity left on codes generated now.
func (g *Generator) Remaining() time.Duration {
	return Remaining(g.clk.Now())
}

// NextBoundary reports when the current window rolls over.
func (g *Generator) NextBoundary() time.Time {
	return NextBoundary(g.clk.Now())
}
