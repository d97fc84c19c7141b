package gmail

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ProtonMail/gmail/imap"
	"github.com/ProtonMail/gmail/observability/metrics"
	"github.com/ProtonMail/gmail/parser"
	"github.com/ProtonMail/gmail/reporter"
	"github.com/ProtonMail/gmail/session"
	"github.com/bradenaw/juniper/xslices"
)

// Message is a handle to one message as seen through one mailbox view.
// Its attributes are fetched in a single batch the first time any of them is read and cached until the
// message is mutated through the handle. Handles may be shared between goroutines.
type Message struct {
	// mailbox is the view the handle addresses the message in. It is not owned by the handle.
	mailbox *Mailbox

	// uid is the message's UID in mailbox. It is 0 if unknown.
	uid imap.UID

	// cache holds the attributes of the current cache generation; nil means nothing was fetched since
	// the last mutation.
	cache *messageCache
	lock  sync.Mutex
}

type messageCache struct {
	attrs *imap.Attributes

	// parsed is the parsed body, set the first time it is requested.
	parsed parser.Parsed
}

func newMessage(mbox *Mailbox, uid imap.UID, attrs *imap.Attributes) *Message {
	msg := &Message{
		mailbox: mbox,
		uid:     uid,
	}

	if attrs != nil {
		msg.cache = &messageCache{attrs: attrs}

		if msg.uid == 0 {
			msg.uid = attrs.UID
		}
	}

	return msg
}

// Mailbox returns the view the handle addresses the message in.
func (m *Message) Mailbox() *Mailbox {
	return m.mailbox
}

func (m *Message) UID(ctx context.Context) (imap.UID, error) {
	if m.uid != 0 {
		return m.uid, nil
	}

	attrs, err := m.attributes(ctx)
	if err != nil {
		return 0, err
	}

	return attrs.UID, nil
}

// MessageID returns the Gmail message ID (X-GM-MSGID), which is the same in every mailbox view.
func (m *Message) MessageID(ctx context.Context) (imap.MessageID, error) {
	attrs, err := m.attributes(ctx)
	if err != nil {
		return 0, err
	}

	return attrs.MessageID, nil
}

// ThreadID returns the Gmail thread ID (X-GM-THRID).
func (m *Message) ThreadID(ctx context.Context) (imap.ThreadID, error) {
	attrs, err := m.attributes(ctx)
	if err != nil {
		return 0, err
	}

	return attrs.ThreadID, nil
}

func (m *Message) Envelope(ctx context.Context) (*imap.Envelope, error) {
	attrs, err := m.attributes(ctx)
	if err != nil {
		return nil, err
	}

	if attrs.Envelope == nil {
		return &imap.Envelope{}, nil
	}

	return attrs.Envelope.Clone(), nil
}

// Flags returns a copy of the message's flags.
func (m *Message) Flags(ctx context.Context) (imap.FlagSet, error) {
	attrs, err := m.attributes(ctx)
	if err != nil {
		return nil, err
	}

	return imap.NewFlagSet(attrs.Flags.ToSlice()...), nil
}

// Labels returns a copy of the message's Gmail labels.
func (m *Message) Labels(ctx context.Context) (imap.FlagSet, error) {
	attrs, err := m.attributes(ctx)
	if err != nil {
		return nil, err
	}

	return imap.NewFlagSet(attrs.Labels.ToSlice()...), nil
}

func (m *Message) IsRead(ctx context.Context) (bool, error) {
	return m.hasFlag(ctx, imap.FlagSeen)
}

func (m *Message) IsStarred(ctx context.Context) (bool, error) {
	return m.hasFlag(ctx, imap.FlagFlagged)
}

func (m *Message) hasFlag(ctx context.Context, flag string) (bool, error) {
	attrs, err := m.attributes(ctx)
	if err != nil {
		return false, err
	}

	return attrs.Flags.Contains(flag), nil
}

// Parsed returns the parsed body of the message. The body is parsed once per cache generation.
func (m *Message) Parsed(ctx context.Context) (parser.Parsed, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	cache, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	if cache.parsed == nil {
		parsed, err := m.mailbox.client.parser.Parse(cache.attrs.Body)
		if err != nil {
			m.mailbox.client.reportException(err, reporter.Context{"mailbox": m.mailbox.name, "uid": m.uid})
			m.mailbox.client.addMetrics(metrics.GenerateFailedParseMessageMetric())

			return nil, fmt.Errorf("failed to parse message %v: %w", m.uid, err)
		}

		cache.parsed = parsed
	}

	return cache.parsed, nil
}

// Field returns a named property of the message, looked up in the envelope first and in the parsed body second.
// If the server sent no envelope only the parsed body is consulted.
// It fails with ErrUnsupported if neither knows the name.
func (m *Message) Field(ctx context.Context, name string) (any, error) {
	attrs, err := m.attributes(ctx)
	if err != nil {
		return nil, err
	}

	if value, ok := attrs.Envelope.Clone().Field(name); ok {
		return value, nil
	}

	parsed, err := m.Parsed(ctx)
	if err != nil {
		return nil, err
	}

	if value, ok := parsed.Field(name); ok {
		return value, nil
	}

	return nil, fmt.Errorf("%w: field %q", ErrUnsupported, name)
}

// String describes the handle without contacting the server.
func (m *Message) String() string {
	m.lock.Lock()
	defer m.lock.Unlock()

	fields := []string{}

	if m.mailbox != nil {
		fields = append(fields, fmt.Sprintf("mailbox=%v", m.mailbox.name))
	}

	fields = append(fields, fmt.Sprintf("uid=%v", m.uid))

	if m.cache != nil && m.cache.attrs.MessageID != 0 {
		fields = append(fields, fmt.Sprintf("message_id=%v", m.cache.attrs.MessageID.Hex()))
	}

	return fmt.Sprintf("gmail.Message{%v}", strings.Join(fields, " "))
}

func (m *Message) attributes(ctx context.Context) (*imap.Attributes, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	cache, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	return cache.attrs, nil
}

// load returns the current cache generation, fetching it if there is none. The caller must hold m.lock.
func (m *Message) load(ctx context.Context) (*messageCache, error) {
	if m.cache != nil {
		return m.cache, nil
	}

	if m.mailbox == nil || m.uid == 0 {
		return nil, ErrInvalidState
	}

	res, err := inMailbox(ctx, m.mailbox.client, m.mailbox.name, "fetch", func(ctx context.Context, sess session.Session) ([]*imap.Attributes, error) {
		return sess.UIDFetch(ctx, []imap.UID{m.uid}, imap.PrefetchItems)
	})
	if err != nil {
		return nil, err
	}

	idx := xslices.IndexFunc(res, func(attrs *imap.Attributes) bool {
		return attrs.UID == m.uid
	})
	if idx < 0 {
		m.mailbox.client.addMetrics(metrics.GenerateMessageNotFoundMetric())

		return nil, fmt.Errorf("%w: uid %v in %q", ErrNotFound, m.uid, m.mailbox.name)
	}

	m.cache = &messageCache{attrs: res[idx]}

	return m.cache, nil
}

// invalidate drops the current cache generation. The caller must hold m.lock.
func (m *Message) invalidate() {
	m.cache = nil
}
