package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bradenaw/juniper/xslices"
	"github.com/dimiro1/reply"
	"github.com/jhillyerd/enmime"
)

// Enmime returns a parser built on enmime. Besides the common fields its messages expose
// "reply", the text body with quoted replies and signatures stripped.
func Enmime() Parser {
	return Func(parseEnmime)
}

type enmimeMessage struct {
	env *enmime.Envelope
}

func parseEnmime(raw []byte) (Parsed, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to read envelope: %w", err)
	}

	return &enmimeMessage{env: env}, nil
}

func (m *enmimeMessage) Header(key string) string {
	return m.env.GetHeader(key)
}

func (m *enmimeMessage) Text() string {
	return m.env.Text
}

func (m *enmimeMessage) HTML() string {
	return m.env.HTML
}

func (m *enmimeMessage) Attachments() []Attachment {
	return xslices.Map(m.env.Attachments, func(part *enmime.Part) Attachment {
		return Attachment{
			Filename:    part.FileName,
			ContentType: part.ContentType,
			Content:     part.Content,
		}
	})
}

func (m *enmimeMessage) Field(name string) (any, bool) {
	if strings.EqualFold(name, "reply") {
		return reply.FromText(m.env.Text), true
	}

	return baseField(m, name)
}
