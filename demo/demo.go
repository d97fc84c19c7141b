package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/99designs/keyring"
	"github.com/ProtonMail/gmail"
	"github.com/ProtonMail/gmail/async"
	"github.com/ProtonMail/gmail/imap"
	"github.com/ProtonMail/gmail/parser"
	"github.com/ProtonMail/gmail/session"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const serviceName = "gmail-demo"

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}

	if level, err := logrus.ParseLevel(cfg.GetString("log_level")); err == nil {
		logrus.SetLevel(level)
	}

	ctx := context.Background()

	debug := debugWriter(logrus.StandardLogger())
	if debug != nil {
		defer debug.Close()
	}

	sess, err := dial(ctx, cfg, debug)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect")
	}

	opts := []gmail.Option{
		gmail.WithAllMailName(cfg.GetString("all_mail")),
	}

	if cfg.GetString("parser") == "enmime" {
		opts = append(opts, gmail.WithParser(parser.Enmime()))
	}

	client := gmail.New(sess, opts...)

	defer func() {
		if err := client.Close(ctx); err != nil {
			logrus.WithError(err).Error("Failed to log out")
		}
	}()

	if err := run(ctx, client.Mailbox(cfg.GetString("mailbox")), os.Args[1:]); err != nil {
		logrus.WithError(err).Error("Command failed")
	}
}

// debugWriter returns a writer logging the IMAP conversation at trace level, or nil if tracing is off.
// The writer must be closed to stop its goroutine.
func debugWriter(logger *logrus.Logger) io.WriteCloser {
	if !logger.IsLevelEnabled(logrus.TraceLevel) {
		return nil
	}

	return logger.WriterLevel(logrus.TraceLevel)
}

// loadConfig reads GMAIL_* environment variables and, if GMAIL_CONFIG names one, a config file.
func loadConfig() (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix("gmail")
	v.AutomaticEnv()

	v.SetDefault("addr", "imap.gmail.com:993")
	v.SetDefault("mailbox", "INBOX")
	v.SetDefault("all_mail", "[Gmail]/All Mail")
	v.SetDefault("limit", 10)
	v.SetDefault("rate", 10)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("parser", "default")
	v.SetDefault("log_level", "info")

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	return v, nil
}

// dial connects to the account. With GMAIL_DUMMY set, an in-memory account with a few messages is used instead.
// Wire traffic is written to debug if it is not nil.
func dial(ctx context.Context, cfg *viper.Viper, debug io.Writer) (session.Session, error) {
	if cfg.GetBool("dummy") {
		dummy, err := newDummy()
		if err != nil {
			return nil, err
		}

		return dummy, nil
	}

	user := cfg.GetString("user")
	if user == "" {
		return nil, errors.New("GMAIL_USER is not set")
	}

	opts := []session.Option{
		session.WithRateLimit(rate.NewLimiter(rate.Limit(cfg.GetFloat64("rate")), 1)),
		session.WithTimeout(cfg.GetDuration("timeout")),
		session.WithPanicHandler(&async.LogPanicHandler{Log: logrus.WithField("pkg", "demo")}),
	}

	if debug != nil {
		opts = append(opts, session.WithDebug(debug))
	}

	if token := cfg.GetString("token"); token != "" {
		opts = append(opts, session.WithOAuth2(user, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})))
	} else {
		password, err := password(cfg, user)
		if err != nil {
			return nil, err
		}

		opts = append(opts, session.WithPassword(user, password))
	}

	sess, err := session.Dial(ctx, cfg.GetString("addr"), opts...)
	if err != nil {
		return nil, err
	}

	return sess, nil
}

// password returns GMAIL_PASSWORD if set, otherwise the app password stored in the system keyring for the user.
// A password given through the environment is saved to the keyring for later runs.
func password(cfg *viper.Viper, user string) (string, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/gmail-demo/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("gmail-demo-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return "", fmt.Errorf("opening keyring: %w", err)
	}

	if password := cfg.GetString("password"); password != "" {
		if err := ring.Set(keyring.Item{Key: user, Data: []byte(password)}); err != nil {
			logrus.WithError(err).Warn("Failed to save password to keyring")
		}

		return password, nil
	}

	item, err := ring.Get(user)
	if err != nil {
		return "", fmt.Errorf("getting password of %q: %w", user, err)
	}

	return string(item.Data), nil
}

func newDummy() (*session.Dummy, error) {
	dummy := session.NewDummy()

	for i, subject := range []string{"Welcome", "Your receipt", "Lunch?"} {
		literal := fmt.Sprintf(
			"From: Alice <alice@example.com>\r\nTo: you@example.com\r\nSubject: %v\r\nMessage-ID: <%v@example.com>\r\n"+
				"Date: %v\r\nContent-Type: text/plain\r\n\r\nMessage number %v.\r\n",
			subject, i, time.Now().Add(time.Duration(i)*time.Hour).Format(time.RFC1123Z), i,
		)

		if _, err := dummy.Append(session.DummyInbox, []byte(literal)); err != nil {
			return nil, err
		}
	}

	return dummy, nil
}

func run(ctx context.Context, mbox *gmail.Mailbox, args []string) error {
	if len(args) == 0 {
		return list(ctx, mbox)
	}

	if len(args) < 2 {
		return fmt.Errorf("usage: demo [show|read|unread|star|archive|delete|spam|mark <name>|label <name>|move <to> [from]] <uid>")
	}

	uid, err := strconv.ParseUint(args[len(args)-1], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid uid %q: %w", args[len(args)-1], err)
	}

	msg := mbox.Message(imap.UID(uid))
	params := args[1 : len(args)-1]

	switch args[0] {
	case "show":
		return show(ctx, msg)

	case "read":
		return msg.MarkRead(ctx)

	case "unread":
		return msg.MarkUnread(ctx)

	case "star":
		return msg.Star(ctx)

	case "archive":
		return msg.Archive(ctx)

	case "delete":
		return msg.Delete(ctx)

	case "spam":
		return msg.MarkAsSpam(ctx)

	case "mark":
		if len(params) != 1 {
			return errors.New("usage: demo mark <name> <uid>")
		}

		return msg.Mark(ctx, params[0])

	case "label":
		if len(params) != 1 {
			return errors.New("usage: demo label <name> <uid>")
		}

		return msg.AddLabel(ctx, params[0])

	case "move":
		switch len(params) {
		case 1:
			return msg.Move(ctx, params[0], "")

		case 2:
			return msg.Move(ctx, params[0], params[1])

		default:
			return errors.New("usage: demo move <to> [from] <uid>")
		}

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func list(ctx context.Context, mbox *gmail.Mailbox) error {
	msgs, err := mbox.Prefetch(ctx, imap.SearchCriteria{Since: time.Now().AddDate(0, 0, -7)})
	if err != nil {
		return err
	}

	for _, msg := range msgs {
		uid, err := msg.UID(ctx)
		if err != nil {
			return err
		}

		env, err := msg.Envelope(ctx)
		if err != nil {
			return err
		}

		read, err := msg.IsRead(ctx)
		if err != nil {
			return err
		}

		mark := "*"
		if read {
			mark = " "
		}

		fmt.Printf("%v %6v  %-30.30v  %v\n", mark, uid, fromOf(env), env.Subject)
	}

	return nil
}

func show(ctx context.Context, msg *gmail.Message) error {
	env, err := msg.Envelope(ctx)
	if err != nil {
		return err
	}

	labels, err := msg.Labels(ctx)
	if err != nil {
		return err
	}

	parsed, err := msg.Parsed(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%v\nFrom: %v\nTo: %v\nSubject: %v\nLabels: %v\n\n%v\n", msg, fromOf(env), env.Recipients(), env.Subject, labels.ToSlice(), parsed.Text())

	for _, att := range parsed.Attachments() {
		fmt.Printf("[attachment %v, %v, %v bytes]\n", att.Filename, att.ContentType, att.Size())
	}

	return nil
}

func fromOf(env *imap.Envelope) string {
	if len(env.From) == 0 {
		return ""
	}

	return env.From[0].String()
}
