package imap

// Attributes is the bundle returned by one UID FETCH of PrefetchItems.
// Fields of items that were not requested are left at their zero value.
type Attributes struct {
	UID       UID
	Envelope  *Envelope
	Body      []byte
	Flags     FlagSet
	Labels    FlagSet
	MessageID MessageID
	ThreadID  ThreadID
}
