package session

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ProtonMail/gmail/imap"
	"github.com/bradenaw/juniper/xslices"
	goimap "github.com/emersion/go-imap"
)

// toFetchItems converts the requested items to their go-imap form.
// Gmail extension items are passed through as raw item names.
func toFetchItems(items []imap.FetchItem) []goimap.FetchItem {
	return xslices.Map(items, func(item imap.FetchItem) goimap.FetchItem {
		if item == imap.FetchBody {
			return (&goimap.BodySectionName{Peek: true}).FetchItem()
		}

		return goimap.FetchItem(item)
	})
}

func toSearchCriteria(criteria imap.SearchCriteria) *goimap.SearchCriteria {
	res := goimap.NewSearchCriteria()

	res.WithFlags = criteria.WithFlags
	res.WithoutFlags = criteria.WithoutFlags
	res.Since = criteria.Since
	res.Before = criteria.Before

	return res
}

// toStoreValues formats the values of a UID STORE.
// go-imap sends plain strings as atoms, so labels that are not valid atoms are quoted here.
func toStoreValues(op imap.StoreOp, values []string) []interface{} {
	return xslices.Map(values, func(value string) interface{} {
		if !op.IsLabels() {
			return value
		}

		return goimap.RawString(quoteLabel(value))
	})
}

func quoteLabel(label string) string {
	if label != "" && !strings.ContainsAny(label, " (){%*\"]") && !strings.Contains(label[1:], `\`) && isPrintableASCII(label) {
		return label
	}

	return strconv.Quote(label)
}

func isPrintableASCII(s string) bool {
	for _, c := range s {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}

	return true
}

// toAttributes converts one FETCH response. Extension items arrive undecoded in msg.Items.
func toAttributes(msg *goimap.Message) (*imap.Attributes, error) {
	attrs := &imap.Attributes{
		UID:   imap.UID(msg.Uid),
		Flags: imap.NewFlagSet(msg.Flags...),
	}

	if msg.Envelope != nil {
		attrs.Envelope = toEnvelope(msg.Envelope)
	}

	for _, literal := range msg.Body {
		if literal == nil {
			continue
		}

		body, err := io.ReadAll(literal)
		if err != nil {
			return nil, fmt.Errorf("failed to read body of message %v: %w", msg.Uid, err)
		}

		attrs.Body = body
	}

	if raw, ok := msg.Items[goimap.FetchItem(imap.FetchLabels)]; ok {
		labels, err := parseLabels(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse labels of message %v: %w", msg.Uid, err)
		}

		attrs.Labels = labels
	}

	if raw, ok := msg.Items[goimap.FetchItem(imap.FetchMessageID)]; ok {
		id, err := parseNumber(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse message id of message %v: %w", msg.Uid, err)
		}

		attrs.MessageID = imap.MessageID(id)
	}

	if raw, ok := msg.Items[goimap.FetchItem(imap.FetchThreadID)]; ok {
		id, err := parseNumber(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse thread id of message %v: %w", msg.Uid, err)
		}

		attrs.ThreadID = imap.ThreadID(id)
	}

	return attrs, nil
}

func toEnvelope(env *goimap.Envelope) *imap.Envelope {
	return &imap.Envelope{
		Date:      env.Date,
		Subject:   env.Subject,
		From:      toAddresses(env.From),
		Sender:    toAddresses(env.Sender),
		ReplyTo:   toAddresses(env.ReplyTo),
		To:        toAddresses(env.To),
		Cc:        toAddresses(env.Cc),
		Bcc:       toAddresses(env.Bcc),
		InReplyTo: env.InReplyTo,
		MessageID: env.MessageId,
	}
}

func toAddresses(addrs []*goimap.Address) []imap.Address {
	return xslices.Map(addrs, func(addr *goimap.Address) imap.Address {
		return imap.Address{
			Name:    addr.PersonalName,
			Mailbox: addr.MailboxName,
			Host:    addr.HostName,
		}
	})
}

func parseLabels(raw interface{}) (imap.FlagSet, error) {
	if raw == nil {
		return imap.NewFlagSet(), nil
	}

	fields, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", raw)
	}

	labels := imap.NewFlagSet()

	for _, field := range fields {
		str, err := fieldString(field)
		if err != nil {
			return nil, err
		}

		label, err := imap.DecodeLabel(str)
		if err != nil {
			return nil, err
		}

		labels = labels.Add(label)
	}

	return labels, nil
}

func parseNumber(raw interface{}) (uint64, error) {
	switch raw := raw.(type) {
	case uint32:
		return uint64(raw), nil

	case uint64:
		return raw, nil

	case int:
		return uint64(raw), nil

	case int64:
		return uint64(raw), nil
	}

	str, err := fieldString(raw)
	if err != nil {
		return 0, err
	}

	return strconv.ParseUint(str, 10, 64)
}

func fieldString(field interface{}) (string, error) {
	switch field := field.(type) {
	case string:
		return field, nil

	case goimap.RawString:
		return string(field), nil

	default:
		return "", fmt.Errorf("unexpected field type %T", field)
	}
}
