package imap

import "time"

// FetchItem names an attribute requested with UID FETCH.
type FetchItem string

const (
	FetchUID       FetchItem = "UID"
	FetchEnvelope  FetchItem = "ENVELOPE"
	FetchBody      FetchItem = "BODY.PEEK[]"
	FetchFlags     FetchItem = "FLAGS"
	FetchLabels    FetchItem = "X-GM-LABELS"
	FetchMessageID FetchItem = "X-GM-MSGID"
	FetchThreadID  FetchItem = "X-GM-THRID"
)

// PrefetchItems is the fixed attribute set fetched in one round trip whenever a message's attributes are needed.
var PrefetchItems = []FetchItem{
	FetchUID,
	FetchEnvelope,
	FetchBody,
	FetchFlags,
	FetchLabels,
	FetchMessageID,
	FetchThreadID,
}

// StoreOp selects what UID STORE does with the given values.
type StoreOp int

const (
	AddFlags StoreOp = iota
	RemoveFlags
	AddLabels
	RemoveLabels
)

// Item returns the STORE data item name for the operation, e.g. "+X-GM-LABELS.SILENT".
func (op StoreOp) Item() string {
	switch op {
	case AddFlags:
		return "+FLAGS.SILENT"

	case RemoveFlags:
		return "-FLAGS.SILENT"

	case AddLabels:
		return "+X-GM-LABELS.SILENT"

	case RemoveLabels:
		return "-X-GM-LABELS.SILENT"

	default:
		panic("unknown store operation")
	}
}

// IsLabels returns whether the operation acts on X-GM-LABELS rather than FLAGS.
func (op StoreOp) IsLabels() bool {
	return op == AddLabels || op == RemoveLabels
}

// IsAdd returns whether the operation adds values.
func (op StoreOp) IsAdd() bool {
	return op == AddFlags || op == AddLabels
}

func (op StoreOp) String() string {
	switch op {
	case AddFlags:
		return "add-flags"

	case RemoveFlags:
		return "remove-flags"

	case AddLabels:
		return "add-labels"

	case RemoveLabels:
		return "remove-labels"

	default:
		return "unknown"
	}
}

// SearchCriteria restricts UID SEARCH. The zero value matches every message in the mailbox.
type SearchCriteria struct {
	WithFlags    []string
	WithoutFlags []string

	Since  time.Time
	Before time.Time
}
