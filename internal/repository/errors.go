package repository

import "errors"

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("not found")

// ErrBlankDescription is returned when a line item without a usable
// description reaches Create. Placeholder rows must be filtered before
// persistence.
var ErrBlankDescription = errors.New("line item description is required")
