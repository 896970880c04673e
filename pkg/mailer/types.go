package mailer

import (
	"fmt"
	"path"
)

// ContentType is the MIME type of a message body.
type ContentType string

const (
	ContentTypePlain ContentType = "text/plain"
	ContentTypeHTML  ContentType = "text/html"
)

func (c ContentType) String() string {
	return string(c)
}

// IsValid reports whether c is one of the supported body types.
func (c ContentType) IsValid() bool {
	return c == ContentTypePlain || c == ContentTypeHTML
}

// Field names one of the ordered address lists of a Message.
type Field int

const (
	FieldTo Field = iota
	FieldCC
	FieldBCC
	FieldReplyTo
)

func (f Field) String() string {
	switch f {
	case FieldTo:
		return "to"
	case FieldCC:
		return "cc"
	case FieldBCC:
		return "bcc"
	case FieldReplyTo:
		return "reply_to"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Valid reports whether f names a known address list.
func (f Field) Valid() bool {
	return f >= FieldTo && f <= FieldReplyTo
}

// Address is a single mailbox with an optional display name.
type Address struct {
	Email string
	Name  string
}

// String formats the address in RFC 5322 form.
func (a Address) String() string {
	return Recipient(a.Name, a.Email)
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Attachment is a file attached to a message.
// Either Path or Content is set: Inline marks raw in-memory content,
// otherwise Path points at the source to read at delivery time.
type Attachment struct {
	Path        string // Source location (local path or s3://bucket/key)
	Filename    string // File name as sent to the recipient
	Name        string // Display name
	Encoding    string // Transfer encoding hint (e.g. "base64")
	MIMEType    string // e.g. "application/pdf"
	Disposition string // "attachment" or "inline"
	Content     []byte // Raw content when Inline is true
	Inline      bool   // Content holds the attachment bytes
}

func newFileAttachment(src, name, encoding, mimeType, disposition string) Attachment {
	filename := path.Base(src)
	if name == "" {
		name = filename
	}
	return Attachment{
		Path:        src,
		Filename:    filename,
		Name:        name,
		Encoding:    defaultString(encoding, "base64"),
		MIMEType:    mimeType,
		Disposition: defaultString(disposition, "attachment"),
	}
}

func newStringAttachment(content []byte, filename, encoding, mimeType, disposition string) Attachment {
	return Attachment{
		Content:     content,
		Filename:    filename,
		Name:        filename,
		Encoding:    defaultString(encoding, "base64"),
		MIMEType:    mimeType,
		Disposition: defaultString(disposition, "attachment"),
		Inline:      true,
	}
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
