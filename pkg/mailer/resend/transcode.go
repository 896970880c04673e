package resend

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	"github.com/dmitrymomot/resendrelay/pkg/mailer"
	"github.com/dmitrymomot/resendrelay/pkg/settings"
	"github.com/dmitrymomot/resendrelay/pkg/source"
)

// FormatFrom returns "Name <email>" when a sender name is configured,
// otherwise the bare address.
func FormatFrom(s settings.Settings) string {
	return mailer.Recipient(s.FromName, s.FromEmail)
}

// FormatRecipients flattens one address list to bare addresses.
// Display names are dropped; order and duplicates are kept.
// It panics if field does not name an address list.
func FormatRecipients(msg *mailer.Message, field mailer.Field) []string {
	addrs := msg.Addresses(field)
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.Email)
	}
	return out
}

// FormatAttachments converts attachments to API form, in order.
// Raw in-memory content passes through unchanged; file attachments are
// read through opener and base64 encoded.
func FormatAttachments(ctx context.Context, msg *mailer.Message, opener source.Opener) ([]AttachmentPayload, error) {
	out := make([]AttachmentPayload, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		if a.Inline {
			out = append(out, AttachmentPayload{
				Content:  string(a.Content),
				Filename: a.Filename,
				Type:     attachmentType(a, a.Content),
				data:     a.Content,
			})
			continue
		}

		data, err := source.ReadAll(ctx, opener, a.Path)
		if err != nil {
			return nil, fmt.Errorf("could not access file %s: %w", a.Path, err)
		}
		out = append(out, AttachmentPayload{
			Content:  base64.StdEncoding.EncodeToString(data),
			Filename: a.Filename,
			Type:     attachmentType(a, data),
			data:     data,
		})
	}
	return out, nil
}

func attachmentType(a mailer.Attachment, data []byte) string {
	if a.MIMEType != "" {
		return a.MIMEType
	}
	return source.DetectMIME(a.Filename, data)
}

// BuildPayload assembles the API call for msg.
// The body is used as HTML as-is: plain text was normalized by the hook.
func BuildPayload(ctx context.Context, msg *mailer.Message, s settings.Settings, opener source.Opener) (*Payload, error) {
	attachments, err := FormatAttachments(ctx, msg, opener)
	if err != nil {
		return nil, err
	}
	return &Payload{
		From:        FormatFrom(s),
		Subject:     msg.Subject,
		HTML:        msg.Body,
		To:          FormatRecipients(msg, mailer.FieldTo),
		BCC:         FormatRecipients(msg, mailer.FieldBCC),
		CC:          FormatRecipients(msg, mailer.FieldCC),
		ReplyTo:     FormatRecipients(msg, mailer.FieldReplyTo),
		Attachments: attachments,
	}, nil
}

// NormalizeBody prepares a body for the html field.
// Plain text gets "<br />" before every line break (\r\n, \n\r, \n or \r).
// It is HTML-escaped first, beyond a bare line break conversion:
// "a & b" is sent as "a &amp; b". HTML is returned unchanged.
func NormalizeBody(body string, ct mailer.ContentType) string {
	if ct != mailer.ContentTypePlain {
		return body
	}
	return nl2br(html.EscapeString(body))
}

func nl2br(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\r' && c != '\n' {
			b.WriteByte(c)
			continue
		}
		b.WriteString("<br />")
		b.WriteByte(c)
		// \r\n and \n\r count as one break.
		if i+1 < len(s) && (s[i+1] == '\r' || s[i+1] == '\n') && s[i+1] != c {
			i++
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
