package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Client-side validation failures. These never reach the network layer.
var (
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidDate   = errors.New("invalid date")
	ErrRangeInverted = errors.New("start must be before end")
)

// ErrBookingNotFound is returned when an operation targets a booking that
// does not exist (locally or on the backend).
var ErrBookingNotFound = errors.New("booking not found")

// Credential and transport failures.
var (
	// ErrUnauthenticated means no usable credential is available locally.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrSessionExpired means the backend rejected a previously accepted
	// credential mid-session. It always cascades to a full local state reset.
	ErrSessionExpired = errors.New("session expired")
	// ErrInvalidResponse means the backend returned data the client could
	// not parse.
	ErrInvalidResponse = errors.New("invalid response from server")
	// ErrNetworkUnavailable wraps transport-level failures, including the
	// client-side request timeout.
	ErrNetworkUnavailable = errors.New("network unavailable")
)

// RequestError is returned when the backend rejected a well-formed request
// with a non-2xx, non-401 status.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed: %s", http.StatusText(e.Status))
}

// IsRequestError reports whether err carries a backend rejection and, if so,
// returns it.
func IsRequestError(err error) (*RequestError, bool) {
	var re *RequestError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
