package portal

import (
	"errors"
	"fmt"
)

// Portal errors, one per user-facing failure category
var (
	ErrMissingCredentials  = errors.New("organization id, username and password are required")
	ErrLoginFailed         = errors.New("login failed")
	ErrLoginRejected       = errors.New("login rejected by portal")
	ErrNoCookies           = errors.New("no session cookies received from login")
	ErrCalendarFetchFailed = errors.New("failed to fetch attendance calendar")
	ErrPortalUnreachable   = errors.New("attendance portal is unreachable")
)

// StatusError wraps a category error with the HTTP status the portal answered.
type StatusError struct {
	Err        error
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", e.Err.Error(), e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// RejectedError carries the message the portal gave for a refused login.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return ErrLoginRejected.Error()
	}
	return ErrLoginRejected.Error() + ": " + e.Message
}

func (e *RejectedError) Unwrap() error {
	return ErrLoginRejected
}
