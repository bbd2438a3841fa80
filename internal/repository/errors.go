package repository

import "errors"

// ErrNotFound is returned when a lookup misses, including lookups scoped to
// a company that hides another tenant's rows.
var ErrNotFound = errors.New("not found")
