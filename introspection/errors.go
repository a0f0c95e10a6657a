package introspection

import (
	"errors"
	"fmt"
)

// Sentinel errors for token verdicts and internal faults. Together with
// *ClientError and *ParseError they form the complete set of errors
// CheckToken can return.
var (
	// ErrUnexpected is returned for internal or environmental faults,
	// such as a system clock before the UNIX epoch.
	ErrUnexpected = errors.New("unexpected introspection error")

	// ErrTokenInactive is returned when the authorization server marks
	// the token as inactive. A non-200 introspection status is treated
	// the same way: the endpoint is telling us the token is not usable.
	ErrTokenInactive = errors.New("token inactive")

	// ErrTokenExpired is returned when the exp claim lies in the past.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenNotYetActive is returned when the nbf claim lies in the
	// future.
	ErrTokenNotYetActive = errors.New("token not yet active")
)

// ClientError wraps a transport-level failure while calling the
// introspection endpoint (connection refused, timeout, DNS failure).
type ClientError struct {
	Err error
}

// Error returns a string representation of the error.
func (e *ClientError) Error() string {
	return fmt.Sprintf("introspection request failed: %s", e.Err)
}

// Unwrap returns the underlying transport error.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// ParseError wraps a failure to decode a 200 introspection response
// body, including a body that lacks the required "active" field.
type ParseError struct {
	Err error
}

// Error returns a string representation of the error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("non-parsable introspection body: %s", e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
