package settings

import (
	"context"
	"errors"
)

// Option name under which the record is persisted.
const OptionName = "resend_settings"

// Record keys.
const (
	KeyAPIKey    = "api_key"
	KeyFromEmail = "from_email"
	KeyFromName  = "from_name"
)

// Sentinel errors for settings stores.
var (
	ErrReadOnly   = errors.New("settings: store is read-only")
	ErrLoadFailed = errors.New("settings: failed to load")
	ErrSaveFailed = errors.New("settings: failed to save")
	ErrInvalid    = errors.New("settings: invalid settings")
)

// Settings is the transport configuration record.
type Settings struct {
	APIKey    string `json:"api_key" validate:"required"`
	FromEmail string `json:"from_email" validate:"required,email"`
	FromName  string `json:"from_name"`
}

// Store persists the settings record as a key-value map.
type Store interface {
	// Load returns the stored record. A missing record is not an error.
	Load(ctx context.Context) (map[string]string, error)
	// Save replaces the stored record.
	Save(ctx context.Context, s Settings) error
}

// Get reads the settings record.
// Missing keys, and a store that cannot be read, yield empty strings:
// an unusable configuration surfaces later as an API error.
func Get(ctx context.Context, store Store) Settings {
	if store == nil {
		return Settings{}
	}
	rec, err := store.Load(ctx)
	if err != nil {
		return Settings{}
	}
	return FromMap(rec)
}

// FromMap converts a raw record, defaulting missing keys to "".
func FromMap(rec map[string]string) Settings {
	return Settings{
		APIKey:    rec[KeyAPIKey],
		FromEmail: rec[KeyFromEmail],
		FromName:  rec[KeyFromName],
	}
}

// Map converts settings into the raw record form.
func (s Settings) Map() map[string]string {
	return map[string]string{
		KeyAPIKey:    s.APIKey,
		KeyFromEmail: s.FromEmail,
		KeyFromName:  s.FromName,
	}
}

// Masked returns a copy safe to display: all but the last four
// characters of the API key are hidden.
func (s Settings) Masked() Settings {
	const visible = 4
	if n := len(s.APIKey); n > visible {
		masked := make([]byte, n)
		for i := range n - visible {
			masked[i] = '*'
		}
		copy(masked[n-visible:], s.APIKey[n-visible:])
		s.APIKey = string(masked)
	}
	return s
}
