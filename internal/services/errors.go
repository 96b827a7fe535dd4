package services

import (
	"github.com/MattStellino/JnRGamesWebsite-sub000/internal/repos"
)

// ErrNotFound is the repository sentinel, re-exported for handlers.
var ErrNotFound = repos.ErrNotFound

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, msg string) error { return &ValidationError{Field: field, Message: msg} }
