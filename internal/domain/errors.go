package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates the entity already exists upstream.
	ErrConflict = errors.New("already exists")
)
