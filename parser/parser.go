// Package parser turns raw RFC 5322 messages into structured, queryable messages.
package parser

import "strings"

// Parser parses a raw message.
type Parser interface {
	Parse(raw []byte) (Parsed, error)
}

// Parsed is a parsed multi-part message.
type Parsed interface {
	// Header returns the first value of the header field with the given key, or "" if absent.
	Header(key string) string

	// Text returns the decoded text/plain body, if any.
	Text() string

	// HTML returns the decoded text/html body, if any.
	HTML() string

	// Attachments returns the message's attachments in the order they appear.
	Attachments() []Attachment

	// Field returns the value of a named capability of the message: one of "text", "html" or "attachments",
	// a parser-specific name, or the name of a header present in the message.
	Field(name string) (any, bool)
}

// Attachment is one attached part.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Size returns the decoded size of the attachment in bytes.
func (a Attachment) Size() int {
	return len(a.Content)
}

// Func adapts a function to the Parser interface.
type Func func(raw []byte) (Parsed, error)

func (fn Func) Parse(raw []byte) (Parsed, error) {
	return fn(raw)
}

// baseField resolves the capabilities shared by every Parsed implementation.
func baseField(p Parsed, name string) (any, bool) {
	switch strings.ToLower(name) {
	case "text":
		return p.Text(), true

	case "html":
		return p.HTML(), true

	case "attachments":
		return p.Attachments(), true
	}

	if value := p.Header(name); value != "" {
		return value, true
	}

	return nil, false
}
