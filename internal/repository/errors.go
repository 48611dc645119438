package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a unique index rejected the write.
	ErrDuplicate = errors.New("duplicate record")
)
