// Package common defines shared sentinel errors and small helpers used across
// userdir layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrPersistence = errors.New("persistence error")
	ErrNotFound    = errors.New("not found")

	// Validation errors.
	ErrEmptyLogin     = errors.New("login must not be empty")
	ErrDuplicateLogin = errors.New("login already exists")
	ErrWeakPassword   = errors.New("password must be at least 6 characters")
	ErrInvalidRole    = errors.New("role must be 0 (standard) or 1 (admin)")
	ErrInvalidStatus  = errors.New("status must be active or inactive")
	ErrEmptyField     = errors.New("field must not be empty")

	// Session errors.
	ErrAuthRejected  = errors.New("authentication rejected")
	ErrNoLoginRecord = errors.New("has never logged in")
)
