package session

import (
	"context"
	"net"
	"testing"

	"github.com/ProtonMail/gmail/imap"
	"github.com/emersion/go-imap/backend/memory"
	"github.com/emersion/go-imap/server"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// standardItems are the prefetch items a plain IMAP server understands.
var standardItems = []imap.FetchItem{imap.FetchUID, imap.FetchEnvelope, imap.FetchBody, imap.FetchFlags}

func newTestServer(t *testing.T) string {
	t.Helper()

	srv := server.New(memory.New())
	srv.AllowInsecureAuth = true

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() { _ = srv.Serve(l) }()

	t.Cleanup(func() { _ = srv.Close() })

	return l.Addr().String()
}

func dialTestServer(t *testing.T, addr string, opts ...Option) *IMAPSession {
	t.Helper()

	opts = append([]Option{
		WithInsecure(),
		WithPassword("username", "password"),
		WithLogger(logrus.WithField("test", t.Name())),
	}, opts...)

	sess, err := Dial(context.Background(), addr, opts...)
	require.NoError(t, err)

	return sess
}

func TestIMAPSession_FetchAndStore(t *testing.T) {
	ctx := context.Background()
	sess := dialTestServer(t, newTestServer(t), WithRateLimit(rate.NewLimiter(rate.Inf, 1)))

	defer func() { require.NoError(t, sess.Logout(ctx)) }()

	require.NoError(t, sess.Select(ctx, "INBOX"))

	uids, err := sess.UIDSearch(ctx, imap.SearchCriteria{})
	require.NoError(t, err)
	require.Equal(t, []imap.UID{6}, uids)

	res, err := sess.UIDFetch(ctx, uids, standardItems)
	require.NoError(t, err)
	require.Len(t, res, 1)

	require.Equal(t, imap.UID(6), res[0].UID)
	require.Equal(t, "A little message, just for you", res[0].Envelope.Subject)
	require.Contains(t, string(res[0].Body), "Hi there :)")
	require.True(t, res[0].Flags.Contains(imap.FlagSeen))

	require.NoError(t, sess.UIDStore(ctx, 6, imap.AddFlags, []string{imap.FlagFlagged}))
	require.NoError(t, sess.UIDStore(ctx, 6, imap.RemoveFlags, []string{imap.FlagSeen, imap.FlagDraft}))

	res, err = sess.UIDFetch(ctx, []imap.UID{6}, []imap.FetchItem{imap.FetchUID, imap.FetchFlags})
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.True(t, res[0].Flags.Contains(imap.FlagFlagged))
	require.False(t, res[0].Flags.Contains(imap.FlagSeen))

	uids, err = sess.UIDSearch(ctx, imap.SearchCriteria{WithFlags: []string{imap.FlagFlagged}})
	require.NoError(t, err)
	require.Equal(t, []imap.UID{6}, uids)
}

func TestIMAPSession_MissingUID(t *testing.T) {
	ctx := context.Background()
	sess := dialTestServer(t, newTestServer(t))

	defer func() { require.NoError(t, sess.Logout(ctx)) }()

	require.NoError(t, sess.Select(ctx, "INBOX"))

	res, err := sess.UIDFetch(ctx, []imap.UID{999}, standardItems)
	require.NoError(t, err)
	require.Empty(t, res)

	res, err = sess.UIDFetch(ctx, nil, standardItems)
	require.NoError(t, err)
	require.Empty(t, res)
}

func TestIMAPSession_SelectMissingMailbox(t *testing.T) {
	ctx := context.Background()
	sess := dialTestServer(t, newTestServer(t))

	defer func() { require.NoError(t, sess.Logout(ctx)) }()

	require.Error(t, sess.Select(ctx, "Nope"))
}

func TestIMAPSession_BadCredentials(t *testing.T) {
	_, err := Dial(context.Background(), newTestServer(t), WithInsecure(), WithPassword("username", "wrong"))
	require.Error(t, err)
}

func TestTLSConfigFor(t *testing.T) {
	cfg := tlsConfigFor("imap.gmail.com:993", nil)
	require.Equal(t, "imap.gmail.com", cfg.ServerName)

	cfg = tlsConfigFor("imap.gmail.com:993", cfg)
	require.Equal(t, "imap.gmail.com", cfg.ServerName)
}
