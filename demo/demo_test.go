package main

import (
	"context"
	"testing"
	"time"

	"github.com/ProtonMail/gmail"
	"github.com/ProtonMail/gmail/imap"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestDebugWriter(t *testing.T) {
	defer goleak.VerifyNone(t)

	logger, hook := test.NewNullLogger()

	require.Nil(t, debugWriter(logger))

	logger.SetLevel(logrus.TraceLevel)

	w := debugWriter(logger)
	require.NotNil(t, w)

	_, err := w.Write([]byte("a001 SELECT INBOX\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.Eventually(t, func() bool { return hook.LastEntry() != nil }, time.Second, 10*time.Millisecond)
}

func TestRun_Dummy(t *testing.T) {
	ctx := context.Background()

	dummy, err := newDummy()
	require.NoError(t, err)

	inbox := gmail.New(dummy).Inbox()

	msgs, err := inbox.Messages(ctx, imap.SearchCriteria{})
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	require.NoError(t, run(ctx, inbox, []string{"read", "1"}))

	read, err := inbox.Message(1).IsRead(ctx)
	require.NoError(t, err)
	require.True(t, read)

	require.NoError(t, run(ctx, inbox, []string{"label", "Receipts", "2"}))

	labels, err := inbox.Message(2).Labels(ctx)
	require.NoError(t, err)
	require.True(t, labels.Contains("Receipts"))

	require.Error(t, run(ctx, inbox, []string{"bogus", "1"}))
	require.Error(t, run(ctx, inbox, []string{"read", "not-a-uid"}))
	require.Error(t, run(ctx, inbox, []string{"read"}))
}
