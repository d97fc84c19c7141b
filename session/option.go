package session

import (
	"crypto/tls"
	"io"
	"time"

	"github.com/ProtonMail/gmail/async"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Option represents a type that can be used to configure an IMAPSession.
type Option interface {
	config(*dialConfig)
}

type dialConfig struct {
	tlsConfig *tls.Config
	insecure  bool

	username    string
	password    string
	tokenSource oauth2.TokenSource

	limiter      *rate.Limiter
	timeout      time.Duration
	debug        io.Writer
	panicHandler async.PanicHandler
	log          *logrus.Entry
}

// WithTLSConfig instructs the session to use the given TLS config when dialing.
func WithTLSConfig(cfg *tls.Config) Option {
	return &withTLSConfig{cfg: cfg}
}

type withTLSConfig struct {
	cfg *tls.Config
}

func (opt withTLSConfig) config(cfg *dialConfig) {
	cfg.tlsConfig = opt.cfg
}

// WithInsecure instructs the session to dial over plain TCP. Only useful for local test servers.
func WithInsecure() Option {
	return &withInsecure{}
}

type withInsecure struct{}

func (withInsecure) config(cfg *dialConfig) {
	cfg.insecure = true
}

// WithPassword authenticates with LOGIN. Gmail requires an app password for this.
func WithPassword(username, password string) Option {
	return &withPassword{username: username, password: password}
}

type withPassword struct {
	username, password string
}

func (opt withPassword) config(cfg *dialConfig) {
	cfg.username = opt.username
	cfg.password = opt.password
}

// WithOAuth2 authenticates with SASL OAUTHBEARER using a token from the given source.
func WithOAuth2(username string, source oauth2.TokenSource) Option {
	return &withOAuth2{username: username, source: source}
}

type withOAuth2 struct {
	username string
	source   oauth2.TokenSource
}

func (opt withOAuth2) config(cfg *dialConfig) {
	cfg.username = opt.username
	cfg.tokenSource = opt.source
}

// WithRateLimit makes every command wait for the limiter before it is sent.
func WithRateLimit(limiter *rate.Limiter) Option {
	return &withRateLimit{limiter: limiter}
}

type withRateLimit struct {
	limiter *rate.Limiter
}

func (opt withRateLimit) config(cfg *dialConfig) {
	cfg.limiter = opt.limiter
}

// WithTimeout sets the maximum time a single command may take.
func WithTimeout(timeout time.Duration) Option {
	return &withTimeout{timeout: timeout}
}

type withTimeout struct {
	timeout time.Duration
}

func (opt withTimeout) config(cfg *dialConfig) {
	cfg.timeout = opt.timeout
}

// WithDebug writes the raw IMAP conversation to the given writer.
func WithDebug(w io.Writer) Option {
	return &withDebug{w: w}
}

type withDebug struct {
	w io.Writer
}

func (opt withDebug) config(cfg *dialConfig) {
	cfg.debug = opt.w
}

// WithPanicHandler sets the handler called when a goroutine spawned by the session panics.
func WithPanicHandler(handler async.PanicHandler) Option {
	return &withPanicHandler{handler: handler}
}

type withPanicHandler struct {
	handler async.PanicHandler
}

func (opt withPanicHandler) config(cfg *dialConfig) {
	cfg.panicHandler = opt.handler
}

// WithLogger sets the entry session events are logged to.
func WithLogger(log *logrus.Entry) Option {
	return &withLogger{log: log}
}

type withLogger struct {
	log *logrus.Entry
}

func (opt withLogger) config(cfg *dialConfig) {
	cfg.log = opt.log
}
