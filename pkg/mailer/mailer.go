package mailer

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/resendrelay/pkg/logger"
)

// FailureHandler is notified when Mail could not deliver a message.
type FailureHandler func(ctx context.Context, msg *Message, err error)

// Mailer is the generic mail entry point.
// It composes a Message, lets hooks adjust the delivery and hands the
// result to whichever transport is active once hooks have run.
type Mailer struct {
	transport Transport
	logger    *slog.Logger
	hooks     []hook
	onFailure []FailureHandler
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithLogger sets the logger used for delivery diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mailer) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithHook registers a pre-delivery hook.
// Hooks run in ascending priority; equal priorities keep registration order.
func WithHook(priority int, fn HookFunc) Option {
	return func(m *Mailer) {
		if fn != nil {
			m.hooks = append(m.hooks, hook{fn: fn, priority: priority})
		}
	}
}

// WithFailureHandler registers a handler called on every failed send.
func WithFailureHandler(fn FailureHandler) Option {
	return func(m *Mailer) {
		if fn != nil {
			m.onFailure = append(m.onFailure, fn)
		}
	}
}

// New creates a Mailer delivering through transport unless a hook swaps it.
func New(transport Transport, opts ...Option) *Mailer {
	m := &Mailer{
		transport: transport,
		logger:    logger.NewNope(),
	}
	for _, opt := range opts {
		opt(m)
	}
	slices.SortStableFunc(m.hooks, func(a, b hook) int {
		return cmp.Compare(a.priority, b.priority)
	})
	return m
}

// Params describes a message in the loose form callers usually have at hand.
type Params struct {
	To          []string // "email" or "Name <email>" entries
	Subject     string
	Body        string
	Headers     []string // "Key: value" lines (From, Cc, Bcc, Reply-To, Content-Type, custom)
	Attachments []string // Paths read at delivery time
}

// Mail composes and sends a message.
// Every failure, whatever its origin, matches ErrSendFailed or one of the
// composition errors (ErrNoRecipient, ErrInvalidAddress, ErrHookFailed).
func (m *Mailer) Mail(ctx context.Context, p Params) error {
	msg, err := Compose(p)
	if err != nil {
		m.fail(ctx, msg, err)
		return err
	}
	return m.Dispatch(ctx, msg)
}

// Dispatch runs the hook chain and sends an already composed message.
func (m *Mailer) Dispatch(ctx context.Context, msg *Message) error {
	if !msg.HasRecipients() {
		m.fail(ctx, msg, ErrNoRecipient)
		return ErrNoRecipient
	}

	d := &Delivery{Transport: m.transport, Message: msg}
	for _, h := range m.hooks {
		if err := h.fn(ctx, d); err != nil {
			err = errors.Join(ErrHookFailed, err)
			m.fail(ctx, msg, err)
			return err
		}
	}

	if d.Transport == nil {
		err := &SendError{Message: "no transport configured"}
		m.fail(ctx, d.Message, err)
		return err
	}

	if err := d.Transport.Send(ctx, d.Message); err != nil {
		if !errors.Is(err, ErrSendFailed) {
			err = errors.Join(ErrSendFailed, err)
		}
		m.fail(ctx, d.Message, err)
		return err
	}

	m.logger.DebugContext(ctx, "email sent",
		slog.String("transport", d.Transport.Name()),
		slog.Int("recipients", len(d.Message.To())),
	)
	return nil
}

func (m *Mailer) fail(ctx context.Context, msg *Message, err error) {
	m.logger.ErrorContext(ctx, "email not sent", slog.String("error", err.Error()))
	for _, fn := range m.onFailure {
		fn(ctx, msg, err)
	}
}
