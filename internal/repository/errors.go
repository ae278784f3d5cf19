package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateKey is returned when inserting an entity whose ID already exists.
	ErrDuplicateKey = errors.New("duplicate key")
)
