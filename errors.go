// Package gmail represents messages of a Gmail account reached over IMAP as lazily fetched, mutable handles.
package gmail

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the server has no message with the handle's UID in its mailbox.
	ErrNotFound = errors.New("no such message")

	// ErrUnsupported is returned when neither the envelope nor the parsed message provides a requested field.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrInvalidState is returned when a handle cannot address its message: it has no mailbox or no UID.
	ErrInvalidState = errors.New("message handle cannot address its message")
)

// TransportError wraps a failure reported by the session. It is never retried.
type TransportError struct {
	Op      string
	Mailbox string
	Err     error
}

func (err *TransportError) Error() string {
	return fmt.Sprintf("%v in %q: %v", err.Op, err.Mailbox, err.Err)
}

func (err *TransportError) Unwrap() error {
	return err.Err
}

// IsNotFound returns true if the error is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnsupported returns true if the error is ErrUnsupported.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}

// IsInvalidState returns true if the error is ErrInvalidState.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsTransport returns true if the error came from the session.
func IsTransport(err error) bool {
	var transportErr *TransportError

	return errors.As(err, &transportErr)
}

func isDomainError(err error) bool {
	return IsNotFound(err) || IsUnsupported(err) || IsInvalidState(err) || IsTransport(err)
}
