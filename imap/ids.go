package imap

import (
	"fmt"
	"strconv"
)

// UID identifies a message within one mailbox view. The same message has a different UID in every view it appears in.
type UID uint32

func (u UID) String() string {
	return strconv.FormatUint(uint64(u), 10)
}

// MessageID is the Gmail message ID (X-GM-MSGID). It is the same in every mailbox view.
type MessageID uint64

func (id MessageID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Hex returns the ID in the hexadecimal form used by the Gmail web interface.
func (id MessageID) Hex() string {
	return strconv.FormatUint(uint64(id), 16)
}

// ParseMessageID parses the decimal representation of a Gmail message ID.
func ParseMessageID(s string) (MessageID, error) {
	num, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid message id: %w", err)
	}

	return MessageID(num), nil
}

// ThreadID is the Gmail thread ID (X-GM-THRID).
type ThreadID uint64

func (id ThreadID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseThreadID parses the decimal representation of a Gmail thread ID.
func ParseThreadID(s string) (ThreadID, error) {
	num, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid thread id: %w", err)
	}

	return ThreadID(num), nil
}
