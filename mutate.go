package gmail

import (
	"context"
	"fmt"
	"strings"

	"github.com/ProtonMail/gmail/imap"
	"github.com/ProtonMail/gmail/observability/metrics"
	"github.com/ProtonMail/gmail/reporter"
	"github.com/ProtonMail/gmail/session"
)

// SetFlag adds the flag to the message.
func (m *Message) SetFlag(ctx context.Context, flag string) error {
	return m.store(ctx, imap.AddFlags, flag)
}

// ClearFlag removes the flag from the message. Clearing a flag the message does not have succeeds.
func (m *Message) ClearFlag(ctx context.Context, flag string) error {
	return m.store(ctx, imap.RemoveFlags, flag)
}

// AddLabel applies the Gmail label to the message.
func (m *Message) AddLabel(ctx context.Context, label string) error {
	return m.store(ctx, imap.AddLabels, label)
}

// RemoveLabel removes the Gmail label from the message. Removing a label the message does not carry succeeds.
func (m *Message) RemoveLabel(ctx context.Context, label string) error {
	return m.store(ctx, imap.RemoveLabels, label)
}

func (m *Message) MarkRead(ctx context.Context) error {
	return m.SetFlag(ctx, imap.FlagSeen)
}

func (m *Message) MarkUnread(ctx context.Context) error {
	return m.ClearFlag(ctx, imap.FlagSeen)
}

func (m *Message) Star(ctx context.Context) error {
	return m.SetFlag(ctx, imap.FlagFlagged)
}

func (m *Message) Unstar(ctx context.Context) error {
	return m.ClearFlag(ctx, imap.FlagFlagged)
}

// MarkAsSpam moves the message to spam.
func (m *Message) MarkAsSpam(ctx context.Context) error {
	return m.AddLabel(ctx, imap.LabelSpam)
}

// Delete moves the message to the trash. Gmail removes it for good once it expires from there.
func (m *Message) Delete(ctx context.Context) error {
	return m.AddLabel(ctx, imap.LabelTrash)
}

// Unarchive returns the message to the inbox. It also takes it out of spam and trash.
func (m *Message) Unarchive(ctx context.Context) error {
	return m.AddLabel(ctx, imap.LabelInbox)
}

// Archive takes the message out of the inbox.
// When the handle addresses the message through the inbox, the label is also removed from the message's
// counterpart in All Mail, found by its Gmail message ID. If the ID is unknown or there is no counterpart,
// only the inbox copy is changed.
func (m *Message) Archive(ctx context.Context) error {
	if m.mailbox == nil {
		return ErrInvalidState
	}

	if m.mailbox.IsInbox() {
		id, err := m.MessageID(ctx)
		if err != nil {
			return err
		}

		var counterpart *Message

		// Without a Gmail message ID there is nothing to match the All Mail copy by.
		if id != 0 {
			if counterpart, err = m.mailbox.client.AllMail().find(ctx, id); err != nil {
				return err
			}
		}

		if counterpart != nil {
			if err := counterpart.RemoveLabel(ctx, imap.LabelInbox); err != nil {
				return err
			}
		} else {
			m.mailbox.client.log.WithField("messageID", id).Warn("No All Mail counterpart, archiving in the inbox only")
			m.mailbox.client.reportMessage("Archived message has no All Mail counterpart", reporter.Context{"messageID": id.String()})
			m.mailbox.client.addMetrics(metrics.GenerateMissingCounterpartMetric())
		}
	}

	return m.RemoveLabel(ctx, imap.LabelInbox)
}

// Move applies the label to and, if from is not empty, removes the label from from.
// The two changes are not atomic: if the second fails the message carries both labels.
func (m *Message) Move(ctx context.Context, to, from string) error {
	if err := m.AddLabel(ctx, to); err != nil {
		return err
	}

	if from == "" {
		return nil
	}

	return m.RemoveLabel(ctx, from)
}

// Mark applies a named state to the message: "read", "unread", "deleted" or "spam".
// Any other name is set as a flag.
func (m *Message) Mark(ctx context.Context, name string) error {
	switch strings.ToLower(name) {
	case "read":
		return m.MarkRead(ctx)

	case "unread":
		return m.MarkUnread(ctx)

	case "deleted":
		return m.Delete(ctx)

	case "spam":
		return m.MarkAsSpam(ctx)

	default:
		return m.SetFlag(ctx, name)
	}
}

// store issues one UID STORE against the message and drops the cache if the server accepted it.
// On failure the cache is left as it was.
func (m *Message) store(ctx context.Context, op imap.StoreOp, values ...string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.mailbox == nil || m.uid == 0 {
		return ErrInvalidState
	}

	if op.IsLabels() {
		encoded := make([]string, 0, len(values))

		for _, value := range values {
			label, err := imap.EncodeLabel(value)
			if err != nil {
				return fmt.Errorf("failed to encode label %q: %w", value, err)
			}

			encoded = append(encoded, label)
		}

		values = encoded
	}

	if _, err := inMailbox(ctx, m.mailbox.client, m.mailbox.name, "store", func(ctx context.Context, sess session.Session) (struct{}, error) {
		return struct{}{}, sess.UIDStore(ctx, m.uid, op, values)
	}); err != nil {
		return err
	}

	m.invalidate()

	return nil
}
