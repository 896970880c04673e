package mailer

import "context"

// Transport delivers a composed message.
type Transport interface {
	// Name identifies the transport in logs (e.g. "smtp", "resend").
	Name() string

	// Send delivers msg. A delivery failure is reported as an error
	// matching ErrSendFailed.
	Send(ctx context.Context, msg *Message) error
}

// Delivery is the state handed to pre-delivery hooks.
// Hooks may replace both the transport and the message.
type Delivery struct {
	Transport Transport
	Message   *Message
}

// HookFunc runs right before the active transport sends the message.
type HookFunc func(ctx context.Context, d *Delivery) error

type hook struct {
	fn       HookFunc
	priority int
}
