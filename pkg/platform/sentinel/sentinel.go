// Package sentinel holds the dependency-level errors returned by stores and
// external adapters. Services translate them into domain errors exactly once.
package sentinel

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("unavailable")
	ErrAlreadyUsed  = errors.New("already used")
)
