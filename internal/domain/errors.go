package domain

import "errors"

var (
	// ErrAlreadyExists indicates a uniqueness constraint rejected the write.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotFound indicates the targeted row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates a sign-in with an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid login credentials")
)
