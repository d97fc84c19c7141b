package session

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"

	"github.com/ProtonMail/gmail/async"
	"github.com/ProtonMail/gmail/imap"
	"github.com/bradenaw/juniper/xslices"
	goimap "github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-sasl"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
	"golang.org/x/time/rate"
)

// IMAPSession is a Session backed by a real IMAP connection speaking Gmail's IMAP extensions.
type IMAPSession struct {
	client *client.Client

	limiter      *rate.Limiter
	panicHandler async.PanicHandler
	log          *logrus.Entry
}

// Dial connects to the IMAP server at addr and authenticates with the configured credentials.
// Unless WithInsecure is given, the connection uses implicit TLS.
func Dial(ctx context.Context, addr string, opts ...Option) (*IMAPSession, error) {
	var cfg dialConfig

	for _, opt := range opts {
		opt.config(&cfg)
	}

	if cfg.log == nil {
		cfg.log = logrus.WithField("pkg", "gmail/session")
	}

	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %v: %w", addr, err)
	}

	if !cfg.insecure {
		conn = tls.Client(conn, tlsConfigFor(addr, cfg.tlsConfig))
	}

	c, err := client.New(conn)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to greet %v: %w", addr, err)
	}

	if cfg.debug != nil {
		c.SetDebug(cfg.debug)
	}

	if cfg.timeout > 0 {
		c.Timeout = cfg.timeout
	}

	sess := &IMAPSession{
		client:       c,
		limiter:      cfg.limiter,
		panicHandler: cfg.panicHandler,
		log:          cfg.log.WithField("addr", addr),
	}

	if err := sess.authenticate(ctx, &cfg); err != nil {
		_ = c.Logout()
		return nil, err
	}

	sess.log.WithField("user", cfg.username).Debug("Session authenticated")

	return sess, nil
}

func (sess *IMAPSession) authenticate(ctx context.Context, cfg *dialConfig) error {
	switch {
	case cfg.tokenSource != nil:
		token, err := cfg.tokenSource.Token()
		if err != nil {
			return fmt.Errorf("failed to get oauth2 token: %w", err)
		}

		if err := sess.client.Authenticate(sasl.NewOAuthBearerClient(&sasl.OAuthBearerOptions{
			Username: cfg.username,
			Token:    token.AccessToken,
		})); err != nil {
			return fmt.Errorf("failed to authenticate %v: %w", cfg.username, err)
		}

	case cfg.username != "":
		if err := sess.client.Login(cfg.username, cfg.password); err != nil {
			return fmt.Errorf("failed to login %v: %w", cfg.username, err)
		}
	}

	return ctx.Err()
}

func (sess *IMAPSession) Select(ctx context.Context, mailbox string) error {
	if err := sess.wait(ctx); err != nil {
		return err
	}

	sess.log.WithField("mailbox", mailbox).Trace("SELECT")

	if _, err := sess.client.Select(mailbox, false); err != nil {
		return fmt.Errorf("failed to select %q: %w", mailbox, err)
	}

	return nil
}

func (sess *IMAPSession) UIDSearch(ctx context.Context, criteria imap.SearchCriteria) ([]imap.UID, error) {
	if err := sess.wait(ctx); err != nil {
		return nil, err
	}

	uids, err := sess.client.UidSearch(toSearchCriteria(criteria))
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	res := xslices.Map(uids, func(uid uint32) imap.UID { return imap.UID(uid) })

	slices.Sort(res)

	return res, nil
}

func (sess *IMAPSession) UIDFetch(ctx context.Context, uids []imap.UID, items []imap.FetchItem) ([]*imap.Attributes, error) {
	if len(uids) == 0 {
		return nil, nil
	}

	if err := sess.wait(ctx); err != nil {
		return nil, err
	}

	seqSet := new(goimap.SeqSet)

	for _, uid := range uids {
		seqSet.AddNum(uint32(uid))
	}

	sess.log.WithField("uids", seqSet.String()).WithField("items", items).Trace("UID FETCH")

	msgCh := make(chan *goimap.Message, len(uids))
	errCh := make(chan error, 1)

	go func() {
		defer async.HandlePanic(sess.panicHandler)

		errCh <- sess.client.UidFetch(seqSet, toFetchItems(items), msgCh)
	}()

	var (
		res      []*imap.Attributes
		parseErr error
	)

	// The channel must be drained even after a parse failure; go-imap closes it when the command completes.
	for msg := range msgCh {
		if parseErr != nil {
			continue
		}

		attrs, err := toAttributes(msg)
		if err != nil {
			parseErr = err
			continue
		}

		res = append(res, attrs)
	}

	if err := <-errCh; err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}

	if parseErr != nil {
		return nil, parseErr
	}

	return res, nil
}

func (sess *IMAPSession) UIDStore(ctx context.Context, uid imap.UID, op imap.StoreOp, values []string) error {
	if err := sess.wait(ctx); err != nil {
		return err
	}

	seqSet := new(goimap.SeqSet)
	seqSet.AddNum(uint32(uid))

	sess.log.WithField("uid", uid).WithField("op", op).WithField("values", values).Trace("UID STORE")

	if err := sess.client.UidStore(seqSet, goimap.StoreItem(op.Item()), toStoreValues(op, values), nil); err != nil {
		return fmt.Errorf("failed to store %v: %w", op, err)
	}

	return nil
}

func (sess *IMAPSession) Logout(ctx context.Context) error {
	if err := sess.client.Logout(); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}

	return ctx.Err()
}

// wait blocks until the rate limiter allows another command.
func (sess *IMAPSession) wait(ctx context.Context) error {
	if sess.limiter == nil {
		return ctx.Err()
	}

	return sess.limiter.Wait(ctx)
}

func tlsConfigFor(addr string, cfg *tls.Config) *tls.Config {
	if cfg == nil {
		cfg = &tls.Config{MinVersion: tls.VersionTLS12}
	} else {
		cfg = cfg.Clone()
	}

	if cfg.ServerName == "" {
		if host, _, err := net.SplitHostPort(addr); err == nil {
			cfg.ServerName = host
		}
	}

	return cfg
}
