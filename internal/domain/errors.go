package domain

import "errors"

var (
	// ErrAlreadyExists is returned when a unique constraint (center login, species name) rejects a write.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidReference is returned when a foreign key points at a missing row.
	ErrInvalidReference = errors.New("invalid reference")
)
