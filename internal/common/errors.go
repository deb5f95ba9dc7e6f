// Package common holds the error values, logging setup and retry helper
// shared by the groupgame packages.
package common

import (
	"errors"
	"fmt"
)

// Sentinel errors callers match with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEntry    = errors.New("duplicate entry")
	ErrDatabaseCorrupted = errors.New("database corrupted")

	ErrArtifactMissing = errors.New("artifact missing")
	ErrArtifactEmpty   = errors.New("artifact is empty")

	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError pairs an underlying error with a short message fit for the
// terminal. The command line prints only the message; logs get both.
type UserError struct {
	Err         error
	UserMessage string
}

// NewUserError wraps err with a message for the user. err may be nil.
func NewUserError(userMessage string, err error) error {
	return &UserError{UserMessage: userMessage, Err: err}
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.UserMessage
	}
	return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
}

func (e *UserError) Unwrap() error { return e.Err }

// UserMessage picks the first UserError message in err's chain, falling
// back to err.Error().
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}
