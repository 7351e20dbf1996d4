package domain

import "errors"

// ErrNotFound signals that a single-item lookup had no matching record.
// Bulk lookups omit missing records instead of returning it.
var ErrNotFound = errors.New("not found")
