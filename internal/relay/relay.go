// Package relay wires configuration into a ready-to-use mailer: the
// settings store backend, the attachment sources, the native SMTP
// transport and the Resend interception hook.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/resendrelay/internal/config"
	"github.com/dmitrymomot/resendrelay/pkg/db"
	"github.com/dmitrymomot/resendrelay/pkg/health"
	"github.com/dmitrymomot/resendrelay/pkg/logger"
	"github.com/dmitrymomot/resendrelay/pkg/mailer"
	"github.com/dmitrymomot/resendrelay/pkg/mailer/resend"
	"github.com/dmitrymomot/resendrelay/pkg/redis"
	"github.com/dmitrymomot/resendrelay/pkg/settings"
	"github.com/dmitrymomot/resendrelay/pkg/source"
)

var ErrUnknownBackend = errors.New("relay: unknown settings backend")

// Relay holds the wired components and the resources to release on close.
type Relay struct {
	Mailer *mailer.Mailer
	Store  settings.Store
	Checks health.Checks
	Logger *slog.Logger

	closers []func()
}

// Option customizes wiring, mainly for tests.
type Option func(*options)

type options struct {
	resend []resend.Option
	native mailer.Transport
}

// WithResendOptions appends options to every Resend transport.
func WithResendOptions(opts ...resend.Option) Option {
	return func(o *options) { o.resend = append(o.resend, opts...) }
}

// WithNativeTransport replaces the SMTP transport.
func WithNativeTransport(t mailer.Transport) Option {
	return func(o *options) { o.native = t }
}

// NewLogger builds the process logger: JSON to stdout, optionally a JSON
// append-only file, optionally Sentry. The returned func flushes and
// closes what was opened.
func NewLogger(cfg config.Config) (*slog.Logger, func(), error) {
	log := logger.New(logger.RequestIDExtractor())
	cleanup := func() {}

	if cfg.LogFile != "" {
		fileLog, closer, err := logger.NewFile(cfg.LogFile, logger.RequestIDExtractor())
		if err != nil {
			return nil, nil, err
		}
		log = logger.Tee(log, fileLog)
		cleanup = func() { _ = closer.Close() }
	}

	log, flush := logger.WithSentry(log, cfg.Sentry)
	return log, func() {
		flush()
		cleanup()
	}, nil
}

// New opens the configured settings backend and assembles the mailer.
func New(ctx context.Context, cfg config.Config, log *slog.Logger, opts ...Option) (*Relay, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	r := &Relay{Logger: log, Checks: health.Checks{}}

	store, err := r.openStore(ctx, cfg)
	if err != nil {
		r.Close()
		return nil, err
	}
	r.Store = store

	opener, err := newOpener(cfg.S3)
	if err != nil {
		r.Close()
		return nil, err
	}

	native := o.native
	if native == nil {
		native = mailer.NewSMTPTransport(cfg.SMTP)
	}

	resendOpts := append([]resend.Option{
		resend.WithLogger(log),
		resend.WithConfig(cfg.Resend),
		resend.WithOpener(opener),
	}, o.resend...)

	r.Mailer = mailer.New(native,
		mailer.WithLogger(log),
		resend.Register(store, resendOpts...),
	)
	return r, nil
}

// Close releases database and cache connections.
func (r *Relay) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}

func (r *Relay) openStore(ctx context.Context, cfg config.Config) (settings.Store, error) {
	switch cfg.SettingsBackend {
	case config.BackendEnv, "":
		return settings.NewEnvStore(), nil

	case config.BackendMemory:
		// Seeded from the environment so a fresh process can send right away.
		return settings.NewMemoryStore(settings.Get(ctx, settings.NewEnvStore())), nil

	case config.BackendPostgres:
		pool, err := db.Open(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, pool.Close)
		r.Checks["postgres"] = db.Healthcheck(pool)
		return settings.NewPostgresStore(pool), nil

	case config.BackendRedis:
		client, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, func() { _ = client.Close() })
		r.Checks["redis"] = redis.Healthcheck(client)
		return settings.NewRedisStore(client), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.SettingsBackend)
	}
}

// Local paths are the fallback; s3:// is routed only when credentials are set.
func newOpener(cfg source.S3Config) (source.Opener, error) {
	if !cfg.Enabled() {
		return source.NewMux(source.FileOpener{}), nil
	}
	s3, err := source.NewS3Opener(cfg)
	if err != nil {
		return nil, err
	}
	return source.NewMux(source.FileOpener{}, source.Route("s3", s3)), nil
}

// Migrate applies the settings schema to the configured database.
func Migrate(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	pool, err := db.Open(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()
	return db.Migrate(ctx, pool, settings.Migrations, "migrations", cfg.DB.MigrationsTable, log)
}
