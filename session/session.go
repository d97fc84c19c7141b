// Package session defines the stateful IMAP connection the message layer issues commands through,
// together with a go-imap backed implementation and an in-memory Gmail used for testing.
package session

//go:generate mockgen -destination mock_session/session.go . Session

import (
	"context"
	"errors"

	"github.com/ProtonMail/gmail/imap"
)

var (
	ErrNoSuchMailbox = errors.New("no such mailbox")
	ErrNotSelected   = errors.New("no mailbox selected")
	ErrClosed        = errors.New("session is closed")
)

// Session is one authenticated IMAP connection.
// Every command other than Select acts on the most recently selected mailbox.
// A Session is not safe for concurrent use: selecting a mailbox and issuing commands against it
// must be serialized by the caller.
type Session interface {
	// Select makes the given mailbox the target of subsequent commands.
	Select(ctx context.Context, mailbox string) error

	// UIDSearch returns the UIDs of the messages in the selected mailbox matching the criteria, in ascending order.
	UIDSearch(ctx context.Context, criteria imap.SearchCriteria) ([]imap.UID, error)

	// UIDFetch fetches the given items for the given messages in the selected mailbox.
	// UIDs that do not exist are missing from the result; this is not an error.
	UIDFetch(ctx context.Context, uids []imap.UID, items []imap.FetchItem) ([]*imap.Attributes, error)

	// UIDStore applies the operation to the message in the selected mailbox.
	// Label values must already be encoded with imap.EncodeLabel.
	// Removing a value the message does not carry is a no-op.
	UIDStore(ctx context.Context, uid imap.UID, op imap.StoreOp, values []string) error

	// Logout ends the session.
	Logout(ctx context.Context) error
}
