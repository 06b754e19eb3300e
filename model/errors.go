package model

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ValidationError is detected on the client and never reaches the network.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Messages) == 0 {
		return "validation failed"
	}
	return strings.Join(e.Messages, "; ")
}

// NewValidationError returns nil when there is nothing to report.
func NewValidationError(messages ...string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: append([]string{}, messages...)}
}

// RejectedError means the server answered but declined the request. Message
// is server-authored and meant to be shown as is.
type RejectedError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e == nil || e.Message == "" {
		return "request rejected"
	}
	return e.Message
}

// TransportError means no structured response was received.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "transport error"
	}
	if e.Err == nil {
		return "request to " + e.Endpoint + " failed"
	}
	return "request to " + e.Endpoint + " failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsRejected reports whether err carries a RejectedError.
func IsRejected(err error) bool {
	var target *RejectedError
	return errors.As(err, &target)
}

// IsTransport reports whether err carries a TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// UserMessage extracts the text to show to the user for any of the error kinds.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Error()
	}
	var invalid *ValidationError
	if errors.As(err, &invalid) {
		return invalid.Error()
	}
	return err.Error()
}
