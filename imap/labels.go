package imap

import (
	"strings"

	"github.com/emersion/go-imap/utf7"
)

// Reserved Gmail labels. They are sent to the server as-is, without folder-name encoding.
const (
	LabelInbox     = `\Inbox`
	LabelSpam      = `\Spam`
	LabelTrash     = `\Trash`
	LabelStarred   = `\Starred`
	LabelImportant = `\Important`
	LabelSent      = `\Sent`
	LabelDraft     = `\Draft`
)

// IsSystemLabel returns whether the label is one of Gmail's reserved backslash labels.
func IsSystemLabel(label string) bool {
	return strings.HasPrefix(label, `\`)
}

// EncodeLabel converts a label name to the modified UTF-7 form Gmail expects in X-GM-LABELS.
func EncodeLabel(label string) (string, error) {
	if IsSystemLabel(label) {
		return label, nil
	}

	return utf7.Encoding.NewEncoder().String(label)
}

// DecodeLabel converts a label received in X-GM-LABELS back to UTF-8.
func DecodeLabel(label string) (string, error) {
	if IsSystemLabel(label) {
		return label, nil
	}

	return utf7.Encoding.NewDecoder().String(label)
}
