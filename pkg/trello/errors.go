package trello

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an Error by where it originated.
type ErrorKind string

const (
	// KindArgument indicates invalid caller input. Raised before any network call.
	KindArgument ErrorKind = "argument"
	// KindTransport indicates a connection-level failure.
	KindTransport ErrorKind = "transport"
	// KindAPI indicates an HTTP status outside [200, 400).
	KindAPI ErrorKind = "api"
	// KindDecode indicates a response body that is not a JSON object or array.
	KindDecode ErrorKind = "decode"
)

// Error is returned by every failing Client and model operation.
type Error struct {
	Kind    ErrorKind
	Message string
	// StatusCode is the HTTP status for KindAPI and KindDecode errors.
	StatusCode int
	// Body is the raw response body for KindAPI and KindDecode errors.
	Body []byte
	Err  error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrNoID is returned when an operation needs the model's id and none is set.
var ErrNoID = &Error{
	Kind:    KindArgument,
	Message: "there is no ID set for this object - call SetID first",
}

// IsArgumentError returns true if the error was caused by invalid caller input.
func IsArgumentError(err error) bool {
	return hasKind(err, KindArgument)
}

// IsTransportError returns true if the request never produced a response.
func IsTransportError(err error) bool {
	return hasKind(err, KindTransport)
}

// IsAPIError returns true if the API answered with an error status.
func IsAPIError(err error) bool {
	return hasKind(err, KindAPI)
}

// IsDecodeError returns true if the API response could not be decoded.
func IsDecodeError(err error) bool {
	return hasKind(err, KindDecode)
}

// StatusCode returns the HTTP status carried by err, or 0 if there is none.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

func hasKind(err error, kind ErrorKind) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func newArgumentError(format string, args ...interface{}) *Error {
	return &Error{
		Kind:    KindArgument,
		Message: fmt.Sprintf(format, args...),
	}
}

func newTransportError(err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: "Request Error: " + err.Error(),
		Err:     err,
	}
}

func newAPIError(statusCode int, body []byte) *Error {
	return &Error{
		Kind:       KindAPI,
		Message:    "API Request failed - Response: " + string(body),
		StatusCode: statusCode,
		Body:       body,
	}
}

func newDecodeError(statusCode int, body []byte, err error) *Error {
	return &Error{
		Kind:       KindDecode,
		Message:    "Could not decode response JSON - Response: " + string(body),
		StatusCode: statusCode,
		Body:       body,
		Err:        err,
	}
}
