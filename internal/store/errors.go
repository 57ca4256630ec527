// Copyright (c) 2026 Credmaster Team
// Credmaster - local credential & 2FA manager
// This source code is licensed under the MIT license found in the LICENSE file.

package store

import "errors"

// ErrNotFound is returned when an account or tag id does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnknownTag is returned when an account references a tag id that does
// not exist in the store.
var ErrUnknownTag = errors.New("unknown tag reference")

// ErrDuplicateTag is returned when creating or renaming a tag would collide
// with an existing name (names are compared case-insensitively).
var ErrDuplicateTag = errors.New("duplicate tag name")

// ErrOrderOutOfRange is returned by Reorder for a target position outside
// [0, count].
var ErrOrderOutOfRange = errors.New("order out of range")
