// Package domain holds the user directory's entity and errors.
package domain

import "errors"

// User is a directory entry. The order workflow only needs existence
// checks, so the record stays deliberately small.
type User struct {
	ID    string
	Name  string
	Email string
}

var (
	ErrNotFound    = errors.New("user not found")
	ErrInvalidUser = errors.New("invalid user")
)
