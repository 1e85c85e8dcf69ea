package gridview

import (
	"fmt"

	"github.com/friendsofgo/errors"
)

// TransportError is returned when the remote call fails or its response
// cannot be read or parsed.
type TransportError struct {
	// Op names the failing step, e.g. "request", "status", "decode", "query".
	Op string

	// URL is the requested resource, when there is one.
	URL string

	// StatusCode is the HTTP status for Op "status", zero otherwise.
	StatusCode int

	Err error
}

func (e *TransportError) Error() string {
	msg := "transport error: " + e.Op
	if e.URL != "" {
		msg += " " + e.URL
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when a response parses but lacks a
// usable total count or records sequence.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return "malformed response: " + e.Reason + ": " + e.Err.Error()
	}
	return "malformed response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// InvalidParameterError is returned for out-of-range arguments such as a page
// size below 1.
type InvalidParameterError struct {
	Name   string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Name, e.Value, e.Reason)
}

// IsTransport reports whether err wraps a *TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsMalformed reports whether err wraps a *MalformedResponseError.
func IsMalformed(err error) bool {
	var target *MalformedResponseError
	return errors.As(err, &target)
}

// IsInvalidParameter reports whether err wraps an *InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var target *InvalidParameterError
	return errors.As(err, &target)
}
