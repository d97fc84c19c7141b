package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"golang.org/x/text/encoding/htmlindex"
)

func init() {
	if message.CharsetReader == nil {
		message.CharsetReader = charsetReader
	}
}

// charsetReader decodes any charset known to the WHATWG encoding index.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}

	return enc.NewDecoder().Reader(input), nil
}

// Default returns the parser used when none is configured. It is built on go-message.
func Default() Parser {
	return Func(parseGoMessage)
}

type goMessage struct {
	header      mail.Header
	text, html  string
	attachments []Attachment
}

func parseGoMessage(raw []byte) (Parsed, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}

	defer mr.Close()

	msg := &goMessage{header: mr.Header}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil && !message.IsUnknownCharset(err) {
			return nil, fmt.Errorf("failed to read part: %w", err)
		} else if part == nil {
			continue
		}

		body, err := io.ReadAll(part.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read part body: %w", err)
		}

		switch h := part.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, _ := h.ContentType()

			switch {
			case strings.EqualFold(contentType, "text/plain") && msg.text == "":
				msg.text = string(body)

			case strings.EqualFold(contentType, "text/html") && msg.html == "":
				msg.html = string(body)
			}

		case *mail.AttachmentHeader:
			filename, _ := h.Filename()
			contentType, _, _ := h.ContentType()

			msg.attachments = append(msg.attachments, Attachment{
				Filename:    filename,
				ContentType: contentType,
				Content:     body,
			})
		}
	}

	return msg, nil
}

func (m *goMessage) Header(key string) string {
	if value, err := m.header.Text(key); err == nil {
		return value
	}

	return m.header.Get(key)
}

func (m *goMessage) Text() string {
	return m.text
}

func (m *goMessage) HTML() string {
	return m.html
}

func (m *goMessage) Attachments() []Attachment {
	return m.attachments
}

func (m *goMessage) Field(name string) (any, bool) {
	return baseField(m, name)
}
