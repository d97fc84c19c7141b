package session

import (
	"bytes"
	"testing"
	"time"

	"github.com/ProtonMail/gmail/imap"
	goimap "github.com/emersion/go-imap"
	"github.com/stretchr/testify/require"
)

func TestToFetchItems(t *testing.T) {
	items := toFetchItems(imap.PrefetchItems)

	require.Equal(t, []goimap.FetchItem{
		"UID",
		"ENVELOPE",
		"BODY.PEEK[]",
		"FLAGS",
		"X-GM-LABELS",
		"X-GM-MSGID",
		"X-GM-THRID",
	}, items)
}

func TestToStoreValues(t *testing.T) {
	require.Equal(t, []interface{}{`\Seen`, `\Flagged`}, toStoreValues(imap.AddFlags, []string{`\Seen`, `\Flagged`}))

	require.Equal(t, []interface{}{
		goimap.RawString(`\Inbox`),
		goimap.RawString(`Receipts`),
		goimap.RawString(`"Travel &- Stuff"`),
		goimap.RawString(`"say \"hi\""`),
	}, toStoreValues(imap.RemoveLabels, []string{`\Inbox`, "Receipts", "Travel &- Stuff", `say "hi"`}))
}

func TestToAttributes(t *testing.T) {
	date := time.Date(2022, 8, 1, 10, 0, 0, 0, time.UTC)

	msg := goimap.NewMessage(12, nil)
	msg.Uid = 42
	msg.Flags = []string{`\Seen`, `\Flagged`}
	msg.Envelope = &goimap.Envelope{
		Date:      date,
		Subject:   "Hello",
		From:      []*goimap.Address{{PersonalName: "Alice", MailboxName: "alice", HostName: "example.com"}},
		MessageId: "<abc@example.com>",
	}
	msg.Body = map[*goimap.BodySectionName]goimap.Literal{
		{}: bytes.NewBufferString("Subject: Hello\r\n\r\nBody"),
	}
	msg.Items = map[goimap.FetchItem]interface{}{
		"X-GM-LABELS": []interface{}{`\Inbox`, goimap.RawString(`\Important`), "Re&AOc-us"},
		"X-GM-MSGID":  "1278455344230334865",
		"X-GM-THRID":  uint32(77),
	}

	attrs, err := toAttributes(msg)
	require.NoError(t, err)

	require.Equal(t, imap.UID(42), attrs.UID)
	require.True(t, attrs.Flags.Equals(imap.NewFlagSet(imap.FlagSeen, imap.FlagFlagged)))
	require.True(t, attrs.Labels.Equals(imap.NewFlagSet(imap.LabelInbox, imap.LabelImportant, "Reçus")))
	require.Equal(t, imap.MessageID(1278455344230334865), attrs.MessageID)
	require.Equal(t, imap.ThreadID(77), attrs.ThreadID)
	require.Equal(t, "Subject: Hello\r\n\r\nBody", string(attrs.Body))

	require.NotNil(t, attrs.Envelope)
	require.Equal(t, "Hello", attrs.Envelope.Subject)
	require.Equal(t, date, attrs.Envelope.Date)
	require.Equal(t, []imap.Address{{Name: "Alice", Mailbox: "alice", Host: "example.com"}}, attrs.Envelope.From)
	require.Equal(t, "<abc@example.com>", attrs.Envelope.MessageID)
}

func TestToAttributes_BadExtensionItems(t *testing.T) {
	msg := goimap.NewMessage(1, nil)
	msg.Items = map[goimap.FetchItem]interface{}{"X-GM-MSGID": "nope"}

	_, err := toAttributes(msg)
	require.Error(t, err)

	msg.Items = map[goimap.FetchItem]interface{}{"X-GM-LABELS": "not-a-list"}

	_, err = toAttributes(msg)
	require.Error(t, err)

	msg.Items = map[goimap.FetchItem]interface{}{"X-GM-LABELS": nil}

	attrs, err := toAttributes(msg)
	require.NoError(t, err)
	require.Equal(t, 0, attrs.Labels.Len())
}

func TestToSearchCriteria(t *testing.T) {
	since := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

	criteria := toSearchCriteria(imap.SearchCriteria{
		WithoutFlags: []string{imap.FlagSeen},
		Since:        since,
	})

	require.Equal(t, []string{imap.FlagSeen}, criteria.WithoutFlags)
	require.Empty(t, criteria.WithFlags)
	require.Equal(t, since, criteria.Since)
}
