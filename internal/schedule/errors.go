package schedule

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds. Match them with errors.Is against any error the client returns.
var (
	ErrMissingCredential = errors.New("missing credential")
	ErrAuthFailure       = errors.New("authentication failed")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrServerError       = errors.New("server error")
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrMalformedResponse = errors.New("malformed response")
	ErrNetworkFailure    = errors.New("network failure")
	ErrRejected          = errors.New("request rejected")
)

// Error is the single failure type of the schedule client. Message is
// user-facing text; Err is the underlying cause, if any.
type Error struct {
	Kind    error
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.Error()
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func statusError(code int) *Error {
	switch {
	case code == http.StatusUnauthorized:
		return &Error{Kind: ErrAuthFailure, Status: code, Message: "Unauthorized. Please log in again."}
	case code == http.StatusForbidden:
		return &Error{Kind: ErrForbidden, Status: code, Message: "Access denied. You do not have permission to perform this action."}
	case code == http.StatusNotFound:
		return &Error{Kind: ErrNotFound, Status: code, Message: "Resource not found."}
	case code >= 500:
		return &Error{Kind: ErrServerError, Status: code, Message: "Server error. Please try again later."}
	default:
		return &Error{Kind: ErrUnexpectedStatus, Status: code, Message: fmt.Sprintf("Unexpected response status: %d", code)}
	}
}

func missingCredential(cause error) *Error {
	return &Error{
		Kind:    ErrMissingCredential,
		Message: "Authentication token not found. Please log in.",
		Err:     cause,
	}
}

func malformed(status int, cause error) *Error {
	return &Error{
		Kind:    ErrMalformedResponse,
		Status:  status,
		Message: "Invalid response from server.",
		Err:     cause,
	}
}

// Network failures keep the transport's own text.
func networkFailure(cause error) *Error {
	return &Error{Kind: ErrNetworkFailure, Err: cause}
}
