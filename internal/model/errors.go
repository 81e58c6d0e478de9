package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned by stores when a unique constraint is violated.
	ErrAlreadyExists = errors.New("already exists")

	ErrUsernameExists = fmt.Errorf("username %w", ErrAlreadyExists)
	ErrEmailExists    = fmt.Errorf("email %w", ErrAlreadyExists)

	// ErrSelfFollow is returned when a user targets itself with a follow toggle.
	ErrSelfFollow = errors.New("user cannot follow itself")
)

var (
	ErrTokenRevoked  = errors.New("token revoked")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenMismatch = errors.New("token mismatch")
)
