package gmail_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/ProtonMail/gmail"
	"github.com/ProtonMail/gmail/imap"
	"github.com/ProtonMail/gmail/session"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func literal(subject, messageID string) []byte {
	return []byte(fmt.Sprintf(
		"From: Alice <alice@example.com>\r\n"+
			"To: Bob <bob@example.com>\r\n"+
			"Subject: %v\r\n"+
			"Message-ID: <%v>\r\n"+
			"Date: Mon, 01 Aug 2022 10:00:00 +0000\r\n"+
			"Content-Type: text/plain; charset=utf-8\r\n"+
			"\r\n"+
			"Hi Bob, see you at noon.\r\n",
		subject, messageID,
	))
}

// newTestClient returns a client over a fresh in-memory account and a hook capturing its log.
func newTestClient(t *testing.T, opts ...gmail.Option) (*gmail.Client, *session.Dummy, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	dummy := session.NewDummy()

	return gmail.New(dummy, append([]gmail.Option{gmail.WithLogger(logrus.NewEntry(logger))}, opts...)...), dummy, hook
}

// appendTo creates a message visible in the mailbox and returns its Gmail ID and its UID in that mailbox.
func appendTo(t *testing.T, dummy *session.Dummy, mailbox, subject string, flags ...string) (imap.MessageID, imap.UID) {
	t.Helper()

	id, err := dummy.Append(mailbox, literal(subject, subject+"@example.com"), flags...)
	require.NoError(t, err)

	uid, ok := dummy.UIDOf(mailbox, id)
	require.True(t, ok)

	return id, uid
}

func TestClient_Mailboxes(t *testing.T) {
	client, _, _ := newTestClient(t)

	require.Equal(t, "INBOX", client.Inbox().Name())
	require.True(t, client.Inbox().IsInbox())
	require.True(t, client.Mailbox("inbox").IsInbox())

	require.Equal(t, "[Gmail]/All Mail", client.AllMail().Name())
	require.False(t, client.AllMail().IsInbox())
}

func TestClient_MailboxNames(t *testing.T) {
	client := gmail.New(session.NewDummy(), gmail.WithInboxName("Posteingang"), gmail.WithAllMailName("[Google Mail]/Alle Nachrichten"))

	require.Equal(t, "Posteingang", client.Inbox().Name())
	require.Equal(t, "[Google Mail]/Alle Nachrichten", client.AllMail().Name())
	require.False(t, client.Mailbox("INBOX").IsInbox())
}

func TestClient_Close(t *testing.T) {
	ctx := context.Background()
	client, dummy, _ := newTestClient(t)

	_, uid := appendTo(t, dummy, session.DummyInbox, "closing")

	require.NoError(t, client.Close(ctx))

	_, err := client.Inbox().Message(uid).Flags(ctx)
	require.True(t, gmail.IsTransport(err))
	require.ErrorIs(t, err, session.ErrClosed)
}

func TestMailbox_Messages(t *testing.T) {
	ctx := context.Background()
	client, dummy, _ := newTestClient(t)

	_, uid1 := appendTo(t, dummy, session.DummyInbox, "one")
	_, uid2 := appendTo(t, dummy, session.DummyInbox, "two", imap.FlagSeen)
	_, uid3 := appendTo(t, dummy, session.DummyInbox, "three")

	dummy.ResetCommands()

	all, err := client.Inbox().Messages(ctx, imap.SearchCriteria{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	for i, uid := range []imap.UID{uid1, uid2, uid3} {
		got, err := all[i].UID(ctx)
		require.NoError(t, err)
		require.Equal(t, uid, got)
	}

	unread, err := client.Inbox().Messages(ctx, imap.SearchCriteria{WithoutFlags: []string{imap.FlagSeen}})
	require.NoError(t, err)
	require.Len(t, unread, 2)

	// Listing does not fetch.
	require.Equal(t, 0, dummy.CountCommands("FETCH"))
	require.Equal(t, 2, dummy.CountCommands("SEARCH"))
}

func TestMailbox_Prefetch(t *testing.T) {
	ctx := context.Background()
	client, dummy, _ := newTestClient(t)

	appendTo(t, dummy, session.DummyInbox, "one")
	appendTo(t, dummy, session.DummyInbox, "two")
	appendTo(t, dummy, session.DummyInbox, "three")

	dummy.ResetCommands()

	msgs, err := client.Inbox().Prefetch(ctx, imap.SearchCriteria{})
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	var subjects []string

	for _, msg := range msgs {
		env, err := msg.Envelope(ctx)
		require.NoError(t, err)

		subjects = append(subjects, env.Subject)
	}

	require.Equal(t, []string{"one", "two", "three"}, subjects)

	// One batched fetch serves every message.
	require.Equal(t, 1, dummy.CountCommands("FETCH"))
	require.Equal(t, 1, dummy.CountCommands("SELECT"))
}

func TestMailbox_NoSuchMailbox(t *testing.T) {
	ctx := context.Background()
	client, _, _ := newTestClient(t)

	_, err := client.Mailbox("Nope").Messages(ctx, imap.SearchCriteria{})
	require.True(t, gmail.IsTransport(err))
	require.ErrorIs(t, err, session.ErrNoSuchMailbox)

	_, err = client.Mailbox("Nope").Message(1).Flags(ctx)
	require.True(t, gmail.IsTransport(err))
	require.ErrorIs(t, err, session.ErrNoSuchMailbox)
}
