package entities

import "errors"

// ErrNotFound is returned by every store backend when a keyed record does not exist.
var ErrNotFound = errors.New("record not found")
