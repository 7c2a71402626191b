// Package harness defines the failure taxonomy shared by the locator layer,
// the network intercepts and the page flows.
package harness

import (
	"errors"
	"fmt"
)

// Kind classifies a scenario failure
type Kind int

const (
	KindLocatorNotFound Kind = iota + 1
	KindNetworkWaitTimeout
	KindAssertionMismatch
	KindConfig
)

// String returns the machine-readable code of the kind
func (k Kind) String() string {
	switch k {
	case KindLocatorNotFound:
		return "locator_not_found"
	case KindNetworkWaitTimeout:
		return "network_wait_timeout"
	case KindAssertionMismatch:
		return "assertion_mismatch"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Error is a failure that aborts the current scenario
type Error struct {
	Kind     Kind
	Subject  string // concept name, alias or asserted field
	Expected string
	Actual   string
	Cause    error
}

// Error implements the error interface
func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindLocatorNotFound:
		msg = fmt.Sprintf("element not found: %s", e.Subject)
	case KindNetworkWaitTimeout:
		msg = fmt.Sprintf("timed out waiting for @%s", e.Subject)
	case KindAssertionMismatch:
		msg = fmt.Sprintf("%s: expected %q, got %q", e.Subject, e.Expected, e.Actual)
	default:
		msg = fmt.Sprintf("%s: %s", e.Kind, e.Subject)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Subject == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is
var (
	ErrLocatorNotFound    = &Error{Kind: KindLocatorNotFound}
	ErrNetworkWaitTimeout = &Error{Kind: KindNetworkWaitTimeout}
	ErrAssertionMismatch  = &Error{Kind: KindAssertionMismatch}
	ErrConfig             = &Error{Kind: KindConfig}
)

// NotFound reports that no element matched concept within the implicit wait
func NotFound(concept string, cause error) *Error {
	return &Error{Kind: KindLocatorNotFound, Subject: concept, Cause: cause}
}

// WaitTimeout reports that alias never fired before the deadline
func WaitTimeout(alias string, cause error) *Error {
	return &Error{Kind: KindNetworkWaitTimeout, Subject: alias, Cause: cause}
}

// Mismatch reports an observed value that differs from the expected one
func Mismatch(subject, expected, actual string) *Error {
	return &Error{Kind: KindAssertionMismatch, Subject: subject, Expected: expected, Actual: actual}
}

// KindOf returns the kind of err, or 0 when err is not a harness error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
