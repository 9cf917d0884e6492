package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when a unique constraint would be violated.
	ErrConflict = errors.New("entity already exists")

	// ErrStaleStatus is returned when a status update finds the row no
	// longer in the expected prior status.
	ErrStaleStatus = errors.New("entity status changed")
)
