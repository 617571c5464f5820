// Package protocol defines how errors returned by this module can be categorized.
//
// The library never retries. Callers that want to retry can use [ShouldRetry] to decide whether
// doing so is reasonable for a given error.
package protocol

import (
	"errors"
)

// Error exposes methods useful for categorizing errors.
type Error interface {
	error

	// MayHaveSucceeded returns true if the Error was triggered by a command that might have been
	// executed. For example, if the server reports an internal error after forwarding a command to
	// the vehicle, the client cannot tell if the vehicle acted on it.
	MayHaveSucceeded() bool

	// Temporary returns true if the Error might be the result of a transient condition, such as
	// the vehicle being asleep or the server being briefly unavailable.
	Temporary() bool
}

var (
	// ErrBadResponse indicates the server returned a successful status but a body that could not
	// be decoded.
	ErrBadResponse = errors.New("invalid response")
	// ErrNoCredential indicates a client was configured without an API key.
	ErrNoCredential = errors.New("no API key provided")
)

// CommandError attaches classification hints to an arbitrary error.
type CommandError struct {
	Err               error
	PossibleSuccess   bool
	PossibleTemporary bool
}

func NewError(message string, mayHaveSucceeded bool, temporary bool) error {
	return &CommandError{Err: errors.New(message), PossibleSuccess: mayHaveSucceeded, PossibleTemporary: temporary}
}

func (e *CommandError) Error() string {
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func (e *CommandError) MayHaveSucceeded() bool {
	return e.PossibleSuccess
}

func (e *CommandError) Temporary() bool {
	return e.PossibleTemporary
}

// MayHaveSucceeded returns true if err (or an error it wraps) indicates the command may have been
// executed even though the client did not receive a confirmation.
func MayHaveSucceeded(err error) bool {
	var e Error
	if errors.As(err, &e) && e.MayHaveSucceeded() {
		return true
	}
	return false
}

// Temporary returns true if err (or an error it wraps) indicates the command failed due to possibly
// transient conditions that do not require user action to resolve.
func Temporary(err error) bool {
	var e Error
	if errors.As(err, &e) && e.Temporary() {
		return true
	}
	return false
}

// ShouldRetry returns true if the client could reasonably reissue the command that triggered an
// error.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	var e Error
	if errors.As(err, &e) {
		if e.MayHaveSucceeded() {
			return false
		}
		if e.Temporary() {
			return true
		}
	}
	return false
}
