package gmail

import (
	"github.com/ProtonMail/gmail/observability"
	"github.com/ProtonMail/gmail/parser"
	"github.com/ProtonMail/gmail/profiling"
	"github.com/ProtonMail/gmail/reporter"
	"github.com/sirupsen/logrus"
)

// Option represents a type that can be used to configure the client.
type Option interface {
	config(client *Client)
}

// WithParser instructs the client to parse message bodies with the given parser instead of the default one.
func WithParser(parser parser.Parser) Option {
	return &withParser{
		parser: parser,
	}
}

type withParser struct {
	parser parser.Parser
}

func (opt withParser) config(client *Client) {
	client.parser = opt.parser
}

// WithLogger instructs the client to log to the given entry.
func WithLogger(log *logrus.Entry) Option {
	return &withLogger{
		log: log,
	}
}

type withLogger struct {
	log *logrus.Entry
}

func (opt withLogger) config(client *Client) {
	client.log = opt.log
}

// WithInboxName sets the name of the inbox mailbox view. Defaults to "INBOX".
func WithInboxName(name string) Option {
	return &withInboxName{
		name: name,
	}
}

type withInboxName struct {
	name string
}

func (opt withInboxName) config(client *Client) {
	client.inboxName = opt.name
}

// WithAllMailName sets the name of the view holding every message. Defaults to "[Gmail]/All Mail".
// Accounts using another interface language have a localized name, e.g. "[Google Mail]/Alle Nachrichten".
func WithAllMailName(name string) Option {
	return &withAllMailName{
		name: name,
	}
}

type withAllMailName struct {
	name string
}

func (opt withAllMailName) config(client *Client) {
	client.allMailName = opt.name
}

// WithCmdProfiler instructs the client to report the start and end of every command it sends to the profiler.
func WithCmdProfiler(profiler profiling.CmdProfiler) Option {
	return &withCmdProfiler{
		profiler: profiler,
	}
}

type withCmdProfiler struct {
	profiler profiling.CmdProfiler
}

func (opt withCmdProfiler) config(client *Client) {
	client.profiler = opt.profiler
}

// WithReporter instructs the client to report unexpected behavior with the given reporter.
func WithReporter(reporter reporter.Reporter) Option {
	return &withReporter{
		reporter: reporter,
	}
}

type withReporter struct {
	reporter reporter.Reporter
}

func (opt withReporter) config(client *Client) {
	client.reporter = opt.reporter
}

// WithObservabilitySender instructs the client to send failure metrics to the given sender.
func WithObservabilitySender(sender observability.Sender) Option {
	return &withObservabilitySender{
		sender: sender,
	}
}

type withObservabilitySender struct {
	sender observability.Sender
}

func (opt withObservabilitySender) config(client *Client) {
	client.sender = opt.sender
}
