package imap_test

import (
	"testing"
	"time"

	"github.com/ProtonMail/gmail/imap"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_Field(t *testing.T) {
	date := time.Date(2021, 4, 3, 15, 13, 53, 0, time.UTC)

	env := &imap.Envelope{
		Date:    date,
		Subject: "this is currently a draft",
		From:    []imap.Address{{Name: "Somebody", Mailbox: "somebody", Host: "pm.me"}},
		ReplyTo: []imap.Address{{Mailbox: "reply", Host: "pm.me"}},
	}

	subject, ok := env.Field("Subject")
	require.True(t, ok)
	require.Equal(t, "this is currently a draft", subject)

	got, ok := env.Field("date")
	require.True(t, ok)
	require.Equal(t, date, got)

	replyTo, ok := env.Field("reply_to")
	require.True(t, ok)
	require.Equal(t, env.ReplyTo, replyTo)

	_, ok = env.Field("attachments")
	require.False(t, ok)

	var nilEnv *imap.Envelope

	_, ok = nilEnv.Field("subject")
	require.False(t, ok)
}

func TestEnvelope_Recipients(t *testing.T) {
	env := &imap.Envelope{
		To:  []imap.Address{{Mailbox: "a", Host: "example.com"}},
		Cc:  []imap.Address{{Mailbox: "b", Host: "example.com"}},
		Bcc: []imap.Address{{Mailbox: "c", Host: "example.com"}},
	}

	require.Equal(t, []string{"a@example.com", "b@example.com", "c@example.com"}, env.Recipients())
}

func TestAddress_String(t *testing.T) {
	require.Equal(t, "Somebody <somebody@pm.me>", imap.Address{Name: "Somebody", Mailbox: "somebody", Host: "pm.me"}.String())
	require.Equal(t, "somebody@pm.me", imap.Address{Mailbox: "somebody", Host: "pm.me"}.String())
}

func TestEnvelope_Clone(t *testing.T) {
	env := &imap.Envelope{
		Subject: "Lunch",
		From:    []imap.Address{{Name: "Alice", Mailbox: "alice", Host: "example.com"}},
		To:      []imap.Address{{Name: "Bob", Mailbox: "bob", Host: "example.com"}},
	}

	clone := env.Clone()
	require.Equal(t, env, clone)

	clone.From[0].Name = "Mallory"
	clone.To[0].Host = "example.org"
	clone.Subject = "Dinner"

	require.Equal(t, "Alice", env.From[0].Name)
	require.Equal(t, "example.com", env.To[0].Host)
	require.Equal(t, "Lunch", env.Subject)

	var missing *imap.Envelope

	require.Nil(t, missing.Clone())
}
