package resend

import (
	"bytes"
	"context"
	"maps"

	"github.com/dmitrymomot/resendrelay/pkg/mailer"
	"github.com/dmitrymomot/resendrelay/pkg/settings"
)

// Priority runs the hook late so other hooks' changes to the message are
// already applied when its state is captured.
const Priority = 1000

// Hook returns a pre-delivery hook that swaps the active transport for a
// fresh Transport and hands it a replayed copy of the message.
// A delivery already routed through a Transport is left alone.
func Hook(newTransport func() *Transport) mailer.HookFunc {
	return func(_ context.Context, d *mailer.Delivery) error {
		if _, ok := d.Transport.(*Transport); ok {
			return nil
		}
		d.Transport = newTransport()
		d.Message = Replay(d.Message)
		return nil
	}
}

// Register returns the mailer option installing the hook with transports
// built from store and opts.
func Register(store settings.Store, opts ...Option) mailer.Option {
	return mailer.WithHook(Priority, Hook(func() *Transport {
		return New(store, opts...)
	}))
}

// Replay copies src into a new message through its add operations.
// The body is normalized once for the html field and the copy is marked
// as HTML; src is not modified.
func Replay(src *mailer.Message) *mailer.Message {
	dst := mailer.NewMessage()

	for _, a := range src.To() {
		dst.AddAddress(a.Email, a.Name)
	}
	for _, a := range src.CC() {
		dst.AddCC(a.Email, a.Name)
	}
	for _, a := range src.BCC() {
		dst.AddBCC(a.Email, a.Name)
	}
	for _, a := range src.ReplyTo() {
		dst.AddReplyTo(a.Email, a.Name)
	}
	for _, a := range src.Attachments {
		if a.Inline {
			dst.AddStringAttachment(bytes.Clone(a.Content), a.Filename, a.Encoding, a.MIMEType, a.Disposition)
			continue
		}
		dst.AddAttachment(a.Path, a.Name, a.Encoding, a.MIMEType, a.Disposition)
	}

	dst.From = src.From
	dst.Subject = src.Subject
	dst.Charset = src.Charset
	maps.Copy(dst.Headers, src.Headers)

	dst.Body = NormalizeBody(src.Body, src.ContentType)
	dst.ContentType = mailer.ContentTypeHTML

	return dst
}
