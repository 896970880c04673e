// Package config loads the relay configuration from the environment.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/resendrelay/pkg/db"
	"github.com/dmitrymomot/resendrelay/pkg/logger"
	"github.com/dmitrymomot/resendrelay/pkg/mailer"
	"github.com/dmitrymomot/resendrelay/pkg/mailer/resend"
	"github.com/dmitrymomot/resendrelay/pkg/redis"
	"github.com/dmitrymomot/resendrelay/pkg/source"
)

// Settings store backends.
const (
	BackendEnv      = "env"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

var (
	ErrLoadDotenv = errors.New("config: failed to load .env file")
	ErrParse      = errors.New("config: failed to parse environment")
	ErrInvalid    = errors.New("config: invalid configuration")
)

// Config is the full process configuration.
type Config struct {
	// AdminEmail receives the command-line test message.
	AdminEmail      string        `env:"ADMIN_EMAIL" validate:"omitempty,email"`
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	SettingsBackend string        `env:"SETTINGS_BACKEND" envDefault:"env" validate:"oneof=env memory postgres redis"`
	LogFile         string        `env:"LOG_FILE"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// CanarySchedule is a cron spec for sending the test message to
	// AdminEmail while serving. Empty disables it.
	CanarySchedule string `env:"CANARY_SCHEDULE"`

	Sentry logger.SentryConfig
	Resend resend.Config
	SMTP   mailer.SMTPConfig
	S3     source.S3Config
	DB     db.Config
	Redis  redis.Config
}

// Load reads optional dotenv files into the process environment and
// parses it. Missing files are skipped; with no names, ".env" is tried.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Join(ErrLoadDotenv, err)
		}
	}
	return Parse(nil)
}

// Parse builds a Config from environment, or from the process
// environment when it is nil.
func Parse(environment map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Join(ErrParse, err)
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, errors.Join(ErrInvalid, err)
	}
	return cfg, nil
}
