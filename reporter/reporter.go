// Package reporter defines the hook through which a client reports unexpected server behavior to an external tool.
package reporter

type Context = map[string]any

// Reporter represents an external reporting tool which can be hooked into the client to report key information and/or
// unexpected behaviors.
type Reporter interface {
	ReportMessageWithContext(string, Context) error
	ReportExceptionWithContext(any, Context) error
}
