package mailer

import (
	"fmt"
	"strings"
)

// Message is a composed email owned by the host.
// Address lists keep insertion order and are not deduplicated.
type Message struct {
	Headers     map[string]string
	From        Address
	Subject     string
	Body        string
	ContentType ContentType
	Charset     string
	Attachments []Attachment

	to      []Address
	cc      []Address
	bcc     []Address
	replyTo []Address
}

// NewMessage returns an empty plain-text message.
func NewMessage() *Message {
	return &Message{
		Headers:     make(map[string]string),
		ContentType: ContentTypePlain,
		Charset:     "UTF-8",
	}
}

// AddAddress appends a "To" recipient.
func (m *Message) AddAddress(email, name string) {
	m.to = append(m.to, newAddress(email, name))
}

// AddCC appends a carbon copy recipient.
func (m *Message) AddCC(email, name string) {
	m.cc = append(m.cc, newAddress(email, name))
}

// AddBCC appends a blind carbon copy recipient.
func (m *Message) AddBCC(email, name string) {
	m.bcc = append(m.bcc, newAddress(email, name))
}

// AddReplyTo appends a reply-to address.
func (m *Message) AddReplyTo(email, name string) {
	m.replyTo = append(m.replyTo, newAddress(email, name))
}

// AddAttachment attaches a file read from src at delivery time.
// Empty name defaults to the base name of src.
func (m *Message) AddAttachment(src, name, encoding, mimeType, disposition string) {
	m.Attachments = append(m.Attachments, newFileAttachment(src, name, encoding, mimeType, disposition))
}

// AddStringAttachment attaches raw in-memory content.
func (m *Message) AddStringAttachment(content []byte, filename, encoding, mimeType, disposition string) {
	m.Attachments = append(m.Attachments, newStringAttachment(content, filename, encoding, mimeType, disposition))
}

func (m *Message) To() []Address      { return m.to }
func (m *Message) CC() []Address      { return m.cc }
func (m *Message) BCC() []Address     { return m.bcc }
func (m *Message) ReplyTo() []Address { return m.replyTo }

// Addresses returns the list named by field.
// It panics on an unknown field: asking for one is a programming error.
func (m *Message) Addresses(field Field) []Address {
	switch field {
	case FieldTo:
		return m.to
	case FieldCC:
		return m.cc
	case FieldBCC:
		return m.bcc
	case FieldReplyTo:
		return m.replyTo
	default:
		panic(fmt.Errorf("%w: %s", ErrInvalidField, field))
	}
}

// HasRecipients reports whether at least one To, CC or BCC address is set.
func (m *Message) HasRecipients() bool {
	return len(m.to)+len(m.cc)+len(m.bcc) > 0
}

func newAddress(email, name string) Address {
	return Address{
		Email: strings.TrimSpace(email),
		Name:  strings.TrimSpace(name),
	}
}
