package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ProtonMail/gmail/imap"
	"github.com/bradenaw/juniper/xslices"
	"golang.org/x/exp/slices"
)

// Command records one command issued against a Dummy session.
type Command struct {
	// Name is one of SELECT, SEARCH, FETCH, STORE or LOGOUT.
	Name string

	// Mailbox is the mailbox the command acted on. For SELECT it is the mailbox being selected.
	Mailbox string

	UIDs   []imap.UID
	Items  []imap.FetchItem
	Op     imap.StoreOp
	Values []string
}

// Dummy is an in-memory Gmail account exposed through the Session interface.
// Every message exists once; mailboxes are views over the messages carrying a label.
type Dummy struct {
	// state holds the fake account.
	state *dummyState

	// selected is the mailbox the last successful SELECT chose.
	selected string
	closed   bool

	// commands records every command in the order it was received.
	commands []Command

	// hook, if set, is consulted before each command is executed; a non-nil error fails the command.
	hook func(Command) error

	lock sync.Mutex
}

func NewDummy() *Dummy {
	return &Dummy{
		state: newDummyState(),
	}
}

// OnCommand installs a function called with every command before it executes.
// Returning an error makes the command fail with that error without side effects.
// The function must not call back into the Dummy.
func (conn *Dummy) OnCommand(fn func(Command) error) {
	conn.lock.Lock()
	defer conn.lock.Unlock()

	conn.hook = fn
}

// Commands returns the commands received so far.
func (conn *Dummy) Commands() []Command {
	conn.lock.Lock()
	defer conn.lock.Unlock()

	return slices.Clone(conn.commands)
}

// CountCommands returns how many commands with the given name were received.
func (conn *Dummy) CountCommands(name string) int {
	conn.lock.Lock()
	defer conn.lock.Unlock()

	return len(xslices.Filter(conn.commands, func(cmd Command) bool {
		return cmd.Name == name
	}))
}

// ResetCommands forgets the commands received so far.
func (conn *Dummy) ResetCommands() {
	conn.lock.Lock()
	defer conn.lock.Unlock()

	conn.commands = nil
}

// CreateLabel creates an empty user label so that its view can be selected.
func (conn *Dummy) CreateLabel(name string) {
	conn.lock.Lock()
	defer conn.lock.Unlock()

	conn.state.userLabels = conn.state.userLabels.Add(name)
}

// Labels returns the names of all user labels.
func (conn *Dummy) Labels() []string {
	conn.lock.Lock()
	defer conn.lock.Unlock()

	names := conn.state.labelNames()

	slices.Sort(names)

	return names
}

// Append creates a new message that is visible in the given mailbox.
// Appending to All Mail creates an archived message; appending to a user label creates the label if needed.
func (conn *Dummy) Append(mailbox string, literal []byte, flags ...string) (imap.MessageID, error) {
	conn.lock.Lock()
	defer conn.lock.Unlock()

	labels := imap.NewFlagSet()

	if label, ok := systemViews[strings.ToLower(mailbox)]; ok {
		if label != "" {
			labels = labels.Add(label)
		}
	} else {
		labels = labels.Add(mailbox)
	}

	if strings.EqualFold(mailbox, DummyStarred) {
		flags = append(flags, imap.FlagFlagged)
	}

	msg := conn.state.createMessage(literal, imap.NewFlagSet(flags...), labels)

	return msg.id, nil
}

// MessageLabels returns the labels currently carried by the message.
func (conn *Dummy) MessageLabels(id imap.MessageID) (imap.FlagSet, error) {
	conn.lock.Lock()
	defer conn.lock.Unlock()

	msg, ok := conn.state.messages[id]
	if !ok {
		return nil, fmt.Errorf("no message %v", id)
	}

	return imap.NewFlagSet(msg.labels.ToSlice()...), nil
}

// MessageFlags returns the flags currently set on the message.
func (conn *Dummy) MessageFlags(id imap.MessageID) (imap.FlagSet, error) {
	conn.lock.Lock()
	defer conn.lock.Unlock()

	msg, ok := conn.state.messages[id]
	if !ok {
		return nil, fmt.Errorf("no message %v", id)
	}

	return imap.NewFlagSet(msg.flags.ToSlice()...), nil
}

// UIDOf returns the UID the message has in the given mailbox view, if it is currently visible there.
func (conn *Dummy) UIDOf(mailbox string, id imap.MessageID) (imap.UID, bool) {
	conn.lock.Lock()
	defer conn.lock.Unlock()

	msg, ok := conn.state.messages[id]
	if !ok || !conn.state.inView(mailbox, msg) {
		return 0, false
	}

	return conn.state.view(mailbox).uidFor(id), true
}

// Delete removes the message from the account entirely, as if it had been expunged from All Mail.
func (conn *Dummy) Delete(id imap.MessageID) {
	conn.lock.Lock()
	defer conn.lock.Unlock()

	delete(conn.state.messages, id)

	conn.state.order = xslices.Filter(conn.state.order, func(other imap.MessageID) bool {
		return other != id
	})
}

func (conn *Dummy) Select(_ context.Context, mailbox string) error {
	conn.lock.Lock()
	defer conn.lock.Unlock()

	if err := conn.record(Command{Name: "SELECT", Mailbox: mailbox}); err != nil {
		return err
	}

	if !conn.state.exists(mailbox) {
		return fmt.Errorf("%w: %v", ErrNoSuchMailbox, mailbox)
	}

	conn.selected = mailbox

	return nil
}

func (conn *Dummy) UIDSearch(_ context.Context, criteria imap.SearchCriteria) ([]imap.UID, error) {
	conn.lock.Lock()
	defer conn.lock.Unlock()

	if err := conn.record(Command{Name: "SEARCH", Mailbox: conn.selected}); err != nil {
		return nil, err
	}

	view := conn.state.view(conn.selected)

	members := xslices.Filter(conn.state.members(conn.selected), func(msg *dummyMessage) bool {
		return matchDummy(msg, criteria)
	})

	return xslices.Map(members, func(msg *dummyMessage) imap.UID {
		return view.uids[msg.id]
	}), nil
}

func (conn *Dummy) UIDFetch(_ context.Context, uids []imap.UID, items []imap.FetchItem) ([]*imap.Attributes, error) {
	conn.lock.Lock()
	defer conn.lock.Unlock()

	if err := conn.record(Command{Name: "FETCH", Mailbox: conn.selected, UIDs: slices.Clone(uids), Items: slices.Clone(items)}); err != nil {
		return nil, err
	}

	var res []*imap.Attributes

	for _, uid := range uids {
		msg, ok := conn.state.lookup(conn.selected, uid)
		if !ok {
			continue
		}

		res = append(res, conn.state.toAttributes(conn.selected, msg, items))
	}

	return res, nil
}

func (conn *Dummy) UIDStore(_ context.Context, uid imap.UID, op imap.StoreOp, values []string) error {
	conn.lock.Lock()
	defer conn.lock.Unlock()

	if err := conn.record(Command{Name: "STORE", Mailbox: conn.selected, UIDs: []imap.UID{uid}, Op: op, Values: slices.Clone(values)}); err != nil {
		return err
	}

	msg, ok := conn.state.lookup(conn.selected, uid)
	if !ok {
		// STORE on a UID that does not exist matches nothing and succeeds.
		return nil
	}

	if op.IsLabels() {
		labels := make([]string, 0, len(values))

		for _, value := range values {
			label, err := imap.DecodeLabel(value)
			if err != nil {
				return fmt.Errorf("invalid label %q: %w", value, err)
			}

			labels = append(labels, label)
		}

		if op.IsAdd() {
			conn.state.addLabels(msg, labels...)
		} else {
			msg.labels = msg.labels.Remove(labels...)
		}

		return nil
	}

	if op.IsAdd() {
		msg.flags = msg.flags.Add(values...)
	} else {
		msg.flags = msg.flags.Remove(values...)
	}

	return nil
}

func (conn *Dummy) Logout(context.Context) error {
	conn.lock.Lock()
	defer conn.lock.Unlock()

	if err := conn.record(Command{Name: "LOGOUT", Mailbox: conn.selected}); err != nil {
		return err
	}

	conn.closed = true

	return nil
}

// record checks the session is usable, runs the hook and remembers the command.
func (conn *Dummy) record(cmd Command) error {
	if conn.closed {
		return ErrClosed
	}

	if cmd.Name != "SELECT" && cmd.Name != "LOGOUT" && conn.selected == "" {
		return ErrNotSelected
	}

	conn.commands = append(conn.commands, cmd)

	if conn.hook != nil {
		if err := conn.hook(cmd); err != nil {
			return err
		}
	}

	return nil
}

func matchDummy(msg *dummyMessage, criteria imap.SearchCriteria) bool {
	if !msg.flags.ContainsAll(criteria.WithFlags...) {
		return false
	}

	if len(criteria.WithoutFlags) > 0 && msg.flags.ContainsAny(criteria.WithoutFlags...) {
		return false
	}

	if !criteria.Since.IsZero() && msg.envelope.Date.Before(criteria.Since) {
		return false
	}

	if !criteria.Before.IsZero() && !msg.envelope.Date.Before(criteria.Before) {
		return false
	}

	return true
}
