package settings

import (
	"context"
	"errors"

	"github.com/caarlos0/env/v11"
)

// EnvStore reads the record from environment variables.
// It is read-only: settings managed through the environment are changed
// by redeploying, not through the admin API.
type EnvStore struct {
	environment map[string]string
}

type envRecord struct {
	APIKey    string `env:"RESEND_API_KEY"`
	FromEmail string `env:"RESEND_FROM_EMAIL"`
	FromName  string `env:"RESEND_FROM_NAME"`
}

// NewEnvStore creates a store over the process environment.
func NewEnvStore() *EnvStore {
	return &EnvStore{}
}

// NewEnvStoreFromMap creates a store over a fixed environment, mainly for tests.
func NewEnvStoreFromMap(environment map[string]string) *EnvStore {
	return &EnvStore{environment: environment}
}

// Load implements Store.
func (e *EnvStore) Load(context.Context) (map[string]string, error) {
	var rec envRecord
	opts := env.Options{}
	if e.environment != nil {
		opts.Environment = e.environment
	}
	if err := env.ParseWithOptions(&rec, opts); err != nil {
		return nil, errors.Join(ErrLoadFailed, err)
	}
	return Settings{APIKey: rec.APIKey, FromEmail: rec.FromEmail, FromName: rec.FromName}.Map(), nil
}

// Save implements Store.
func (e *EnvStore) Save(context.Context, Settings) error {
	return ErrReadOnly
}
