package session

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/ProtonMail/gmail/imap"
	"github.com/bradenaw/juniper/xslices"
	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-message/textproto"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Names of the mailbox views the dummy knows about without any label being created.
const (
	DummyInbox     = "INBOX"
	DummyAllMail   = "[Gmail]/All Mail"
	DummySpam      = "[Gmail]/Spam"
	DummyTrash     = "[Gmail]/Trash"
	DummyStarred   = "[Gmail]/Starred"
	DummySent      = "[Gmail]/Sent Mail"
	DummyDrafts    = "[Gmail]/Drafts"
	DummyImportant = "[Gmail]/Important"
)

// systemViews maps the reserved mailbox views to the system label that puts a message in them.
// All Mail and Starred are special-cased in dummyState.inView.
var systemViews = map[string]string{
	strings.ToLower(DummyInbox):     imap.LabelInbox,
	strings.ToLower(DummySpam):      imap.LabelSpam,
	strings.ToLower(DummyTrash):     imap.LabelTrash,
	strings.ToLower(DummySent):      imap.LabelSent,
	strings.ToLower(DummyDrafts):    imap.LabelDraft,
	strings.ToLower(DummyImportant): imap.LabelImportant,
	strings.ToLower(DummyAllMail):   "",
	strings.ToLower(DummyStarred):   "",
}

type dummyMessage struct {
	id       imap.MessageID
	threadID imap.ThreadID
	literal  []byte
	envelope *imap.Envelope
	flags    imap.FlagSet
	labels   imap.FlagSet
}

// dummyView holds the UIDs one mailbox view assigned to the messages it has shown.
// A UID is assigned the first time a message is seen in the view and is never reused.
type dummyView struct {
	uids    map[imap.MessageID]imap.UID
	ids     map[imap.UID]imap.MessageID
	uidNext imap.UID
}

func newDummyView() *dummyView {
	return &dummyView{
		uids:    make(map[imap.MessageID]imap.UID),
		ids:     make(map[imap.UID]imap.MessageID),
		uidNext: 1,
	}
}

func (view *dummyView) uidFor(id imap.MessageID) imap.UID {
	if uid, ok := view.uids[id]; ok {
		return uid
	}

	uid := view.uidNext

	view.uids[id] = uid
	view.ids[uid] = id
	view.uidNext++

	return uid
}

type dummyState struct {
	messages map[imap.MessageID]*dummyMessage
	order    []imap.MessageID
	lastID   imap.MessageID

	// userLabels holds the user labels that were ever applied; their views stay selectable once created.
	userLabels imap.FlagSet

	views map[string]*dummyView
}

func newDummyState() *dummyState {
	return &dummyState{
		messages:   make(map[imap.MessageID]*dummyMessage),
		lastID:     1278455344230334864,
		userLabels: imap.NewFlagSet(),
		views:      make(map[string]*dummyView),
	}
}

func (state *dummyState) exists(mailbox string) bool {
	if _, ok := systemViews[strings.ToLower(mailbox)]; ok {
		return true
	}

	return state.userLabels.Contains(mailbox)
}

func (state *dummyState) view(mailbox string) *dummyView {
	key := strings.ToLower(mailbox)

	if _, ok := state.views[key]; !ok {
		state.views[key] = newDummyView()
	}

	return state.views[key]
}

func (state *dummyState) inView(mailbox string, msg *dummyMessage) bool {
	key := strings.ToLower(mailbox)

	switch key {
	case strings.ToLower(DummyAllMail):
		return !msg.labels.ContainsAny(imap.LabelSpam, imap.LabelTrash)

	case strings.ToLower(DummyStarred):
		return msg.flags.Contains(imap.FlagFlagged)
	}

	if label, ok := systemViews[key]; ok {
		return msg.labels.Contains(label)
	}

	return msg.labels.Contains(mailbox)
}

// members returns the messages currently visible in the mailbox, in ascending UID order.
func (state *dummyState) members(mailbox string) []*dummyMessage {
	view := state.view(mailbox)

	members := xslices.Filter(
		xslices.Map(state.order, func(id imap.MessageID) *dummyMessage { return state.messages[id] }),
		func(msg *dummyMessage) bool { return state.inView(mailbox, msg) },
	)

	// Assign in creation order before sorting so new arrivals get increasing UIDs.
	for _, msg := range members {
		view.uidFor(msg.id)
	}

	slices.SortFunc(members, func(a, b *dummyMessage) bool {
		return view.uids[a.id] < view.uids[b.id]
	})

	return members
}

func (state *dummyState) lookup(mailbox string, uid imap.UID) (*dummyMessage, bool) {
	id, ok := state.view(mailbox).ids[uid]
	if !ok {
		return nil, false
	}

	msg, ok := state.messages[id]
	if !ok || !state.inView(mailbox, msg) {
		return nil, false
	}

	return msg, true
}

func (state *dummyState) createMessage(literal []byte, flags, labels imap.FlagSet) *dummyMessage {
	state.lastID++

	msg := &dummyMessage{
		id:       state.lastID,
		threadID: imap.ThreadID(state.lastID),
		literal:  literal,
		envelope: parseDummyEnvelope(literal),
		flags:    flags,
		labels:   labels,
	}

	if msg.envelope.InReplyTo != "" {
		for _, other := range state.messages {
			if other.envelope.MessageID == msg.envelope.InReplyTo {
				msg.threadID = other.threadID
				break
			}
		}
	}

	state.messages[msg.id] = msg
	state.order = append(state.order, msg.id)

	for _, label := range labels.ToSlice() {
		if !imap.IsSystemLabel(label) {
			state.userLabels = state.userLabels.Add(label)
		}
	}

	return msg
}

// addLabels applies Gmail's label rules: trashing or marking as spam leaves the inbox,
// and returning to the inbox leaves trash and spam.
func (state *dummyState) addLabels(msg *dummyMessage, labels ...string) {
	for _, label := range labels {
		switch {
		case strings.EqualFold(label, imap.LabelTrash), strings.EqualFold(label, imap.LabelSpam):
			msg.labels = msg.labels.Remove(imap.LabelInbox)

		case strings.EqualFold(label, imap.LabelInbox):
			msg.labels = msg.labels.Remove(imap.LabelTrash, imap.LabelSpam)

		default:
			if !imap.IsSystemLabel(label) {
				state.userLabels = state.userLabels.Add(label)
			}
		}

		msg.labels = msg.labels.Add(label)
	}
}

func (state *dummyState) toAttributes(mailbox string, msg *dummyMessage, items []imap.FetchItem) *imap.Attributes {
	attrs := &imap.Attributes{}

	for _, item := range items {
		switch item {
		case imap.FetchUID:
			attrs.UID = state.view(mailbox).uidFor(msg.id)

		case imap.FetchEnvelope:
			env := *msg.envelope
			attrs.Envelope = &env

		case imap.FetchBody:
			attrs.Body = bytes.Clone(msg.literal)

		case imap.FetchFlags:
			attrs.Flags = imap.NewFlagSet(msg.flags.ToSlice()...)

		case imap.FetchLabels:
			attrs.Labels = imap.NewFlagSet(msg.labels.ToSlice()...)

		case imap.FetchMessageID:
			attrs.MessageID = msg.id

		case imap.FetchThreadID:
			attrs.ThreadID = msg.threadID
		}
	}

	return attrs
}

func (state *dummyState) labelNames() []string {
	return maps.Values(state.userLabels)
}

func parseDummyEnvelope(literal []byte) *imap.Envelope {
	env := &imap.Envelope{}

	header, err := textproto.ReadHeader(bufio.NewReader(bytes.NewReader(literal)))
	if err != nil {
		return env
	}

	h := mail.Header{Header: message.Header{Header: header}}

	env.Subject, _ = h.Subject()

	if id, err := h.MessageID(); err == nil && id != "" {
		env.MessageID = "<" + id + ">"
	}

	if date, err := h.Date(); err == nil {
		env.Date = date
	}

	if ids, err := h.MsgIDList("In-Reply-To"); err == nil && len(ids) > 0 {
		env.InReplyTo = "<" + ids[0] + ">"
	}

	env.From = dummyAddressList(h, "From")
	env.Sender = dummyAddressList(h, "Sender")
	env.ReplyTo = dummyAddressList(h, "Reply-To")
	env.To = dummyAddressList(h, "To")
	env.Cc = dummyAddressList(h, "Cc")
	env.Bcc = dummyAddressList(h, "Bcc")

	if len(env.Sender) == 0 {
		env.Sender = env.From
	}

	if len(env.ReplyTo) == 0 {
		env.ReplyTo = env.From
	}

	return env
}

func dummyAddressList(h mail.Header, key string) []imap.Address {
	list, err := h.AddressList(key)
	if err != nil {
		return nil
	}

	return xslices.Map(list, func(addr *mail.Address) imap.Address {
		mailbox, host, _ := strings.Cut(addr.Address, "@")

		return imap.Address{Name: addr.Name, Mailbox: mailbox, Host: host}
	})
}
