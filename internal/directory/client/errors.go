package client

import (
	"context"
	"errors"
	"fmt"
)

// Category is the normalized failure taxonomy for directory queries.
type Category string

const (
	// CategoryNullConnection means no connection to the site could be made.
	CategoryNullConnection Category = "null_connection"

	// CategoryUnknownMessageType means the site answered with a message the
	// client does not understand.
	CategoryUnknownMessageType Category = "unknown_message_type"

	// CategoryInvalidSite means the site location itself is unusable.
	CategoryInvalidSite Category = "invalid_site"

	// CategoryInvalidKey means the site rejected a key as unknown.
	CategoryInvalidKey Category = "invalid_key"

	// CategoryRemoteFault means the site reported a fault.
	CategoryRemoteFault Category = "remote_fault"

	// CategoryUnknown covers everything else.
	CategoryUnknown Category = "unknown"
)

// Error wraps a directory query failure with its category.
type Error struct {
	Category   Category
	Site       string
	Message    string
	Underlying error
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("directory %s [%s]: %s: %v", e.Site, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("directory %s [%s]: %s", e.Site, e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewError creates a categorized directory error.
func NewError(category Category, site, message string, underlying error) *Error {
	return &Error{
		Category:   category,
		Site:       site,
		Message:    message,
		Underlying: underlying,
	}
}

// Classify returns the category of err. Untyped context errors count as a
// lost connection; anything else untyped is CategoryUnknown.
func Classify(err error) Category {
	var de *Error
	if errors.As(err, &de) {
		return de.Category
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryNullConnection
	}
	return CategoryUnknown
}

// Describe renders the log message for a classified failure.
func (c Category) Describe() string {
	switch c {
	case CategoryNullConnection:
		return "directory connection unavailable"
	case CategoryUnknownMessageType:
		return "directory returned an unknown message type"
	case CategoryInvalidSite:
		return "directory site location is invalid"
	case CategoryInvalidKey:
		return "directory rejected the supplied key"
	case CategoryRemoteFault:
		return "directory reported a remote fault"
	default:
		return "unexpected directory failure"
	}
}
