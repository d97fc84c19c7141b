package gmail

import (
	"context"

	"github.com/ProtonMail/gmail/imap"
	"github.com/ProtonMail/gmail/session"
	"github.com/bradenaw/juniper/xslices"
	"golang.org/x/exp/slices"
)

// Mailbox is a named, selectable view of the account. On Gmail most views are labels.
type Mailbox struct {
	client *Client
	name   string
}

func (mbox *Mailbox) Name() string {
	return mbox.name
}

// IsInbox returns whether the view is the inbox.
func (mbox *Mailbox) IsInbox() bool {
	return mbox.client.isInbox(mbox.name)
}

// Message returns a handle to the message with the given UID. Nothing is fetched until the handle is read.
func (mbox *Mailbox) Message(uid imap.UID) *Message {
	return newMessage(mbox, uid, nil)
}

// Messages lists the messages matching the criteria, in ascending UID order.
// The returned handles are not fetched.
func (mbox *Mailbox) Messages(ctx context.Context, criteria imap.SearchCriteria) ([]*Message, error) {
	uids, err := inMailbox(ctx, mbox.client, mbox.name, "search", func(ctx context.Context, sess session.Session) ([]imap.UID, error) {
		return sess.UIDSearch(ctx, criteria)
	})
	if err != nil {
		return nil, err
	}

	return xslices.Map(uids, mbox.Message), nil
}

// Prefetch lists the messages matching the criteria and fetches all of their attributes in one batch.
// Messages that vanish between the search and the fetch are left out.
func (mbox *Mailbox) Prefetch(ctx context.Context, criteria imap.SearchCriteria) ([]*Message, error) {
	res, err := inMailbox(ctx, mbox.client, mbox.name, "prefetch", func(ctx context.Context, sess session.Session) ([]*imap.Attributes, error) {
		uids, err := sess.UIDSearch(ctx, criteria)
		if err != nil {
			return nil, err
		}

		return sess.UIDFetch(ctx, uids, imap.PrefetchItems)
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(res, func(a, b *imap.Attributes) bool {
		return a.UID < b.UID
	})

	return xslices.Map(res, func(attrs *imap.Attributes) *Message {
		return newMessage(mbox, attrs.UID, attrs)
	}), nil
}

// find returns the first message, in ascending UID order, with the given Gmail message ID.
// It scans the whole view; there is no index to consult. It returns nil if there is no such message.
// The zero ID identifies no message.
func (mbox *Mailbox) find(ctx context.Context, id imap.MessageID) (*Message, error) {
	if id == 0 {
		return nil, nil
	}

	res, err := inMailbox(ctx, mbox.client, mbox.name, "find", func(ctx context.Context, sess session.Session) ([]*imap.Attributes, error) {
		uids, err := sess.UIDSearch(ctx, imap.SearchCriteria{})
		if err != nil {
			return nil, err
		}

		return sess.UIDFetch(ctx, uids, []imap.FetchItem{imap.FetchUID, imap.FetchMessageID})
	})
	if err != nil {
		return nil, err
	}

	matches := xslices.Filter(res, func(attrs *imap.Attributes) bool {
		return attrs.MessageID == id
	})

	if len(matches) == 0 {
		return nil, nil
	}

	slices.SortFunc(matches, func(a, b *imap.Attributes) bool {
		return a.UID < b.UID
	})

	return mbox.Message(matches[0].UID), nil
}
