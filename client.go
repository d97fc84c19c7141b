package gmail

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/ProtonMail/gmail/logging"
	"github.com/ProtonMail/gmail/observability"
	"github.com/ProtonMail/gmail/observability/metrics"
	"github.com/ProtonMail/gmail/parser"
	"github.com/ProtonMail/gmail/profiling"
	"github.com/ProtonMail/gmail/reporter"
	"github.com/ProtonMail/gmail/session"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultInboxName   = "INBOX"
	defaultAllMailName = "[Gmail]/All Mail"
)

// Client owns the session to one Gmail account.
// All remote work goes through it so that selecting a mailbox and the command that follows are never interleaved.
type Client struct {
	// sess is the session to the account. It is guarded by lock.
	sess session.Session
	lock sync.Mutex

	// parser parses the bodies of fetched messages.
	parser parser.Parser

	inboxName   string
	allMailName string

	// profiler, if set, measures every command sent through sess.
	profiler profiling.CmdProfiler

	// reporter is told about unexpected server behavior.
	reporter reporter.Reporter

	// sender, if set, receives a metric for every failed remote operation.
	sender observability.Sender

	log *logrus.Entry
}

// New returns a client operating on the given session.
func New(sess session.Session, opts ...Option) *Client {
	client := &Client{
		sess:        sess,
		parser:      parser.Default(),
		inboxName:   defaultInboxName,
		allMailName: defaultAllMailName,
		reporter:    &reporter.NullReporter{},
		log:         logrus.WithField("pkg", "gmail"),
	}

	for _, opt := range opts {
		opt.config(client)
	}

	if client.profiler != nil {
		client.sess = &profiledSession{Session: client.sess, profiler: client.profiler}
	}

	return client
}

// Mailbox returns the mailbox view with the given name. It does not check that the mailbox exists.
func (client *Client) Mailbox(name string) *Mailbox {
	return &Mailbox{
		client: client,
		name:   name,
	}
}

func (client *Client) Inbox() *Mailbox {
	return client.Mailbox(client.inboxName)
}

// AllMail returns the view holding every message of the account that is neither spam nor trash.
func (client *Client) AllMail() *Mailbox {
	return client.Mailbox(client.allMailName)
}

// Close logs out of the session. Handles derived from the client fail with a TransportError afterwards.
func (client *Client) Close(ctx context.Context) error {
	client.lock.Lock()
	defer client.lock.Unlock()

	if err := client.sess.Logout(ctx); err != nil {
		return &TransportError{Op: "logout", Err: err}
	}

	client.log.Debug("Logged out")

	return nil
}

func (client *Client) isInbox(name string) bool {
	return strings.EqualFold(name, client.inboxName)
}

func (client *Client) reportMessage(message string, context reporter.Context) {
	if err := client.reporter.ReportMessageWithContext(message, context); err != nil {
		client.log.WithError(err).Error("Failed to report message")
	}
}

func (client *Client) reportException(exception any, context reporter.Context) {
	if err := client.reporter.ReportExceptionWithContext(exception, context); err != nil {
		client.log.WithError(err).Error("Failed to report exception")
	}
}

func (client *Client) addMetrics(values ...map[string]interface{}) {
	if client.sender != nil {
		client.sender.AddMetrics(values...)
	}
}

// inMailbox selects the mailbox and runs fn while holding the session.
// The mailbox is selected again for every call; nothing assumes an earlier selection persists.
// Errors reported by the session are wrapped in a TransportError naming op.
func inMailbox[T any](
	ctx context.Context,
	client *Client,
	mailbox, op string,
	fn func(context.Context, session.Session) (T, error),
) (T, error) {
	client.lock.Lock()
	defer client.lock.Unlock()

	var (
		res T
		err error
	)

	logging.Do(ctx, client.log, logging.Fields{"mailbox": mailbox, "op": op, "opID": uuid.NewString()}, func(ctx context.Context, log *logrus.Entry) {
		log.Debug("Running remote operation")

		if selErr := client.sess.Select(ctx, mailbox); selErr != nil {
			err = &TransportError{Op: "select", Mailbox: mailbox, Err: selErr}
			return
		}

		if res, err = fn(ctx, client.sess); err != nil && !isDomainError(err) {
			err = &TransportError{Op: op, Mailbox: mailbox, Err: err}
		}

		if err != nil {
			log.WithError(err).Debug("Remote operation failed")
		}
	})

	var transportErr *TransportError

	if errors.As(err, &transportErr) {
		client.addMetrics(metrics.GenerateFailedRemoteOperationMetric(transportErr.Op))
	}

	return res, err
}
