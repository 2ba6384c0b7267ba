package store

import (
	"errors"
	"fmt"
)

// Common store errors.
var (
	// ErrNotFound indicates no session is cached for the tab.
	ErrNotFound = errors.New("session not found")

	// ErrClosed indicates the store has been closed.
	ErrClosed = errors.New("store is closed")

	// ErrInvalidTab indicates the provided tab identifier is empty.
	ErrInvalidTab = errors.New("invalid tab ID")
)

// NotFoundError wraps ErrNotFound with the tab and key that were looked up.
type NotFoundError struct {
	Tab string
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s cached for tab %s", e.Key, e.Tab)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a typed not found error.
func NewNotFoundError(tab, key string) error {
	return &NotFoundError{Tab: tab, Key: key}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
