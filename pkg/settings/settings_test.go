package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Load(context.Context) (map[string]string, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) Save(context.Context, Settings) error { return errors.New("connection refused") }

func TestGet_FullRecord(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(Settings{APIKey: "re_123", FromEmail: "a@x.com", FromName: "A"})

	s := Get(context.Background(), store)

	require.Equal(t, Settings{APIKey: "re_123", FromEmail: "a@x.com", FromName: "A"}, s)
}

func TestGet_MissingKeysDefaultToEmpty(t *testing.T) {
	t.Parallel()

	store := NewMemoryStoreFromMap(map[string]string{KeyFromEmail: "a@x.com"})

	s := Get(context.Background(), store)

	require.Empty(t, s.APIKey)
	require.Equal(t, "a@x.com", s.FromEmail)
	require.Empty(t, s.FromName)
}

func TestGet_LoadErrorYieldsEmptySettings(t *testing.T) {
	t.Parallel()

	require.Equal(t, Settings{}, Get(context.Background(), failingStore{}))
}

func TestGet_NilStore(t *testing.T) {
	t.Parallel()

	require.Equal(t, Settings{}, Get(context.Background(), nil))
}

func TestSettings_MapRoundTrip(t *testing.T) {
	t.Parallel()

	s := Settings{APIKey: "k", FromEmail: "e@x.com", FromName: "N"}

	require.Equal(t, s, FromMap(s.Map()))
}

func TestSettings_Masked(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key      string
		expected string
	}{
		{key: "re_abcdefgh", expected: "*******efgh"},
		{key: "abcd", expected: "abcd"},
		{key: "", expected: ""},
	}

	for _, tt := range tests {
		s := Settings{APIKey: tt.key, FromEmail: "e@x.com"}.Masked()
		require.Equal(t, tt.expected, s.APIKey)
		require.Equal(t, "e@x.com", s.FromEmail)
	}
}

func TestMemoryStore_SaveReplacesRecord(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(Settings{APIKey: "old"})
	require.NoError(t, store.Save(context.Background(), Settings{APIKey: "new", FromEmail: "n@x.com"}))

	s := Get(context.Background(), store)
	require.Equal(t, "new", s.APIKey)
	require.Equal(t, "n@x.com", s.FromEmail)
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(Settings{APIKey: "k"})
	rec, err := store.Load(context.Background())
	require.NoError(t, err)
	rec[KeyAPIKey] = "mutated"

	require.Equal(t, "k", Get(context.Background(), store).APIKey)
}

func TestEnvStore_Load(t *testing.T) {
	t.Parallel()

	store := NewEnvStoreFromMap(map[string]string{
		"RESEND_API_KEY":    "re_env",
		"RESEND_FROM_EMAIL": "env@x.com",
	})

	s := Get(context.Background(), store)

	require.Equal(t, Settings{APIKey: "re_env", FromEmail: "env@x.com"}, s)
}

func TestEnvStore_SaveIsReadOnly(t *testing.T) {
	t.Parallel()

	err := NewEnvStoreFromMap(map[string]string{}).Save(context.Background(), Settings{})
	require.ErrorIs(t, err, ErrReadOnly)
}
