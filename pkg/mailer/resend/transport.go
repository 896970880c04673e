package resend

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dmitrymomot/resendrelay/pkg/logger"
	"github.com/dmitrymomot/resendrelay/pkg/mailer"
	"github.com/dmitrymomot/resendrelay/pkg/settings"
	"github.com/dmitrymomot/resendrelay/pkg/source"
)

// TransportName is the name the adapter reports as the active transport.
const TransportName = "resend"

// Option configures a Transport.
type Option func(*Transport)

// WithLogger sets the sink for the transport's diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transport) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithClientFactory replaces how the API client is built from the API key.
func WithClientFactory(f ClientFactory) Option {
	return func(t *Transport) {
		if f != nil {
			t.newClient = f
		}
	}
}

// WithConfig sets the HTTP client configuration used by the default factory.
func WithConfig(cfg Config) Option {
	return func(t *Transport) {
		t.newClient = Factory(cfg)
	}
}

// WithOpener sets how file attachments are read.
func WithOpener(o source.Opener) Option {
	return func(t *Transport) {
		if o != nil {
			t.opener = o
		}
	}
}

// Transport delivers one message through the Resend API.
// It is single-use: create one per outbound message.
type Transport struct {
	store     settings.Store
	newClient ClientFactory
	opener    source.Opener
	logger    *slog.Logger
	id        string

	once     sync.Once
	settings settings.Settings
	client   Client

	sent atomic.Bool
}

// New creates a Transport reading its configuration from store.
func New(store settings.Store, opts ...Option) *Transport {
	t := &Transport{
		store:     store,
		newClient: Factory(Config{}),
		opener:    source.FileOpener{},
		logger:    logger.NewNope(),
		id:        uuid.NewString(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With(
		slog.String("transport", TransportName),
		slog.String("transport_id", t.id),
	)
	return t
}

// Name implements mailer.Transport.
func (t *Transport) Name() string { return TransportName }

// ID identifies this transport instance in logs.
func (t *Transport) ID() string { return t.id }

// Settings returns the configuration snapshot for this instance.
// It is read from the store on first use and kept for the instance's lifetime.
func (t *Transport) Settings(ctx context.Context) settings.Settings {
	t.resolve(ctx)
	return t.settings
}

func (t *Transport) resolve(ctx context.Context) {
	t.once.Do(func() {
		t.settings = settings.Get(ctx, t.store)
		t.client = t.newClient(t.settings.APIKey)
	})
}

// Send implements mailer.Transport.
// It makes exactly one API call. Any failure, including a network error
// or an unreadable attachment, is logged once and returned as a
// *mailer.SendError. A successful send logs nothing.
// A second call fails with mailer.ErrTransportUsed.
func (t *Transport) Send(ctx context.Context, msg *mailer.Message) error {
	if !t.sent.CompareAndSwap(false, true) {
		return mailer.ErrTransportUsed
	}

	t.resolve(ctx)

	res := t.send(ctx, msg)
	if !res.OK() {
		message := res.Message
		if message == "" {
			message = errNoID
		}
		t.Log(message, 0)
		return &mailer.SendError{Message: message}
	}
	return nil
}

func (t *Transport) send(ctx context.Context, msg *mailer.Message) Result {
	payload, err := BuildPayload(ctx, msg, t.settings, t.opener)
	if err != nil {
		return Failure(err.Error())
	}
	return t.client.Send(ctx, payload)
}

// Log writes a diagnostic line at error level. level is accepted for
// callers that grade their debug output and is ignored.
func (t *Transport) Log(message string, level int) {
	_ = level
	t.logger.Error(strings.TrimRight(message, "\r\n"))
}
