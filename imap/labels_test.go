package imap_test

import (
	"testing"

	"github.com/ProtonMail/gmail/imap"
	"github.com/stretchr/testify/require"
)

func TestEncodeLabel(t *testing.T) {
	tests := []struct {
		name, encoded string
	}{
		{name: "Receipts", encoded: "Receipts"},
		{name: `\Inbox`, encoded: `\Inbox`},
		{name: `\Trash`, encoded: `\Trash`},
		{name: "Travel & Stuff", encoded: "Travel &-Stuff"},
		{name: "Reçus", encoded: "Re&AOc-us"},
		{name: "日本語", encoded: "&ZeVnLIqe-"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			enc, err := imap.EncodeLabel(tc.name)
			require.NoError(t, err)
			require.Equal(t, tc.encoded, enc)

			dec, err := imap.DecodeLabel(enc)
			require.NoError(t, err)
			require.Equal(t, tc.name, dec)
		})
	}
}

func TestIsSystemLabel(t *testing.T) {
	require.True(t, imap.IsSystemLabel(imap.LabelInbox))
	require.True(t, imap.IsSystemLabel(imap.LabelSpam))
	require.False(t, imap.IsSystemLabel("Inbox"))
	require.False(t, imap.IsSystemLabel(""))
}

func TestStoreOp(t *testing.T) {
	require.Equal(t, "+FLAGS.SILENT", imap.AddFlags.Item())
	require.Equal(t, "-FLAGS.SILENT", imap.RemoveFlags.Item())
	require.Equal(t, "+X-GM-LABELS.SILENT", imap.AddLabels.Item())
	require.Equal(t, "-X-GM-LABELS.SILENT", imap.RemoveLabels.Item())

	require.True(t, imap.AddLabels.IsLabels())
	require.False(t, imap.RemoveFlags.IsLabels())
	require.True(t, imap.AddFlags.IsAdd())
	require.False(t, imap.RemoveLabels.IsAdd())
}

func TestParseMessageID(t *testing.T) {
	id, err := imap.ParseMessageID("1278455344230334865")
	require.NoError(t, err)
	require.Equal(t, imap.MessageID(1278455344230334865), id)
	require.Equal(t, "11bdfc5cae0c8191", id.Hex())

	_, err = imap.ParseMessageID("not-a-number")
	require.Error(t, err)
}

func TestParseThreadID(t *testing.T) {
	id, err := imap.ParseThreadID("1278455344230334864")
	require.NoError(t, err)
	require.Equal(t, imap.ThreadID(1278455344230334864), id)
	require.Equal(t, "1278455344230334864", id.String())

	_, err = imap.ParseThreadID("-1")
	require.Error(t, err)

	_, err = imap.ParseThreadID("")
	require.Error(t, err)
}
