package repository

import "errors"

// ErrNotFound is returned when a stored record does not exist for its owner.
var ErrNotFound = errors.New("record not found")
