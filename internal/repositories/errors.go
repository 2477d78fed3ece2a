package repositories

import "errors"

// ErrNotFound is returned when a single-row fetch matches no row.
var ErrNotFound = errors.New("record not found")
