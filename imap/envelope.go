package imap

import (
	"strings"
	"time"

	"github.com/bradenaw/juniper/xslices"
	"golang.org/x/exp/slices"
)

// Address is one mailbox of an envelope address list.
type Address struct {
	Name    string
	Mailbox string
	Host    string
}

// Addr returns the address in mailbox@host form.
func (a Address) Addr() string {
	if a.Host == "" {
		return a.Mailbox
	}

	return a.Mailbox + "@" + a.Host
}

func (a Address) String() string {
	if a.Name == "" {
		return a.Addr()
	}

	return a.Name + " <" + a.Addr() + ">"
}

// Envelope is the structured summary the server returns for the ENVELOPE fetch item.
type Envelope struct {
	Date      time.Time
	Subject   string
	From      []Address
	Sender    []Address
	ReplyTo   []Address
	To        []Address
	Cc        []Address
	Bcc       []Address
	InReplyTo string
	MessageID string
}

// Field returns the envelope value with the given name.
// Names are case-insensitive and may use '-' or '_' as separator ("reply-to", "Reply_To").
// The second return value is false if the envelope has no such field.
func (env *Envelope) Field(name string) (any, bool) {
	if env == nil {
		return nil, false
	}

	switch normalizeFieldName(name) {
	case "date":
		return env.Date, true

	case "subject":
		return env.Subject, true

	case "from":
		return env.From, true

	case "sender":
		return env.Sender, true

	case "reply-to":
		return env.ReplyTo, true

	case "to":
		return env.To, true

	case "cc":
		return env.Cc, true

	case "bcc":
		return env.Bcc, true

	case "in-reply-to":
		return env.InReplyTo, true

	case "message-id":
		return env.MessageID, true

	default:
		return nil, false
	}
}

// Clone returns a copy of the envelope that shares no address lists with it.
func (env *Envelope) Clone() *Envelope {
	if env == nil {
		return nil
	}

	clone := *env

	clone.From = slices.Clone(env.From)
	clone.Sender = slices.Clone(env.Sender)
	clone.ReplyTo = slices.Clone(env.ReplyTo)
	clone.To = slices.Clone(env.To)
	clone.Cc = slices.Clone(env.Cc)
	clone.Bcc = slices.Clone(env.Bcc)

	return &clone
}

// Recipients returns the addresses of To, Cc and Bcc in that order.
func (env *Envelope) Recipients() []string {
	var addrs []Address

	addrs = append(addrs, env.To...)
	addrs = append(addrs, env.Cc...)
	addrs = append(addrs, env.Bcc...)

	return xslices.Map(addrs, func(a Address) string { return a.Addr() })
}

func normalizeFieldName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}
