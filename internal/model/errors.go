package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure surfaced to the pipeline's consumer.
type ErrorKind string

const (
	ErrInvalidSymbol  ErrorKind = "INVALID_SYMBOL"
	ErrEmptySymbol    ErrorKind = "EMPTY_SYMBOL"
	ErrInvalidRange   ErrorKind = "INVALID_RANGE"
	ErrTransport      ErrorKind = "TRANSPORT"
	ErrMalformedQuote ErrorKind = "MALFORMED_QUOTE"
	ErrMissingField   ErrorKind = "MISSING_FIELD"
	ErrEmptyField     ErrorKind = "EMPTY_FIELD"
	ErrInvalidRecord  ErrorKind = "INVALID_RECORD"
)

// FeedError is the typed error carried across the pipeline boundary.
type FeedError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *FeedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *FeedError) Unwrap() error { return e.Cause }

// NewFeedError builds a FeedError with a formatted message.
func NewFeedError(kind ErrorKind, format string, args ...any) *FeedError {
	return &FeedError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapFeedError builds a FeedError around an underlying cause.
func WrapFeedError(kind ErrorKind, cause error, format string, args ...any) *FeedError {
	return &FeedError{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// AsFeedError extracts a FeedError from err, wrapping unknown errors as
// transport failures so every error crossing the boundary carries a kind.
func AsFeedError(err error) *FeedError {
	var fe *FeedError
	if errors.As(err, &fe) {
		return fe
	}
	return &FeedError{Kind: ErrTransport, Message: err.Error(), Cause: err}
}
