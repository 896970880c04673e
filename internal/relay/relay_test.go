package relay

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/resendrelay/internal/config"
	"github.com/dmitrymomot/resendrelay/pkg/db"
	"github.com/dmitrymomot/resendrelay/pkg/logger"
	"github.com/dmitrymomot/resendrelay/pkg/mailer"
	"github.com/dmitrymomot/resendrelay/pkg/mailer/resend"
	"github.com/dmitrymomot/resendrelay/pkg/redis"
	"github.com/dmitrymomot/resendrelay/pkg/settings"
)

type nativeTransport struct{ calls int }

func (n *nativeTransport) Name() string { return "native" }

func (n *nativeTransport) Send(context.Context, *mailer.Message) error {
	n.calls++
	return nil
}

type fakeMailer struct {
	err    error
	params []mailer.Params
}

func (f *fakeMailer) Mail(_ context.Context, p mailer.Params) error {
	f.params = append(f.params, p)
	return f.err
}

func TestNew_MemoryBackendSendsThroughResend(t *testing.T) {
	t.Parallel()

	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		require.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	t.Cleanup(srv.Close)

	native := &nativeTransport{}
	r, err := New(context.Background(), config.Config{SettingsBackend: config.BackendMemory}, logger.NewNope(),
		WithNativeTransport(native),
		WithResendOptions(resend.WithConfig(resend.Config{BaseURL: srv.URL})),
	)
	require.NoError(t, err)
	t.Cleanup(r.Close)

	require.NoError(t, r.Store.Save(context.Background(), settings.Settings{APIKey: "re_test", FromEmail: "a@x.com"}))

	require.NoError(t, r.Mailer.Mail(context.Background(), mailer.Params{To: []string{"b@y.com"}, Subject: "Hi", Body: "x"}))
	require.Equal(t, 1, hits)
	require.Zero(t, native.calls)
}

func TestNew_BackendErrors(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		backend string
		want    error
	}{
		"unknown":         {backend: "mysql", want: ErrUnknownBackend},
		"postgres no url": {backend: config.BackendPostgres, want: db.ErrEmptyConnectionURL},
		"redis no url":    {backend: config.BackendRedis, want: redis.ErrEmptyConnectionURL},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := New(context.Background(), config.Config{SettingsBackend: tc.backend}, logger.NewNope())
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNew_EnvBackendIsReadOnly(t *testing.T) {
	t.Parallel()

	r, err := New(context.Background(), config.Config{SettingsBackend: config.BackendEnv}, logger.NewNope())
	require.NoError(t, err)
	require.ErrorIs(t, r.Store.Save(context.Background(), settings.Settings{}), settings.ErrReadOnly)
	require.Empty(t, r.Checks)
}

func TestSendTest(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		m := &fakeMailer{}
		var out, errOut bytes.Buffer

		require.NoError(t, SendTest(context.Background(), m, "admin@example.com", &out, &errOut, logger.NewNope()))
		require.Equal(t, "Success: Email sent.\n", out.String())
		require.Empty(t, errOut.String())
		require.Len(t, m.params, 1)
		require.Equal(t, "Test email from Resend", m.params[0].Subject)
		require.Equal(t, []string{"admin@example.com"}, m.params[0].To)
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()

		m := &fakeMailer{err: &mailer.SendError{Message: "API key is invalid"}}
		var out, errOut bytes.Buffer

		err := SendTest(context.Background(), m, "admin@example.com", &out, &errOut, logger.NewNope())
		require.ErrorIs(t, err, ErrNotSent)
		require.ErrorIs(t, err, mailer.ErrSendFailed)
		require.Empty(t, out.String())
		require.Equal(t, "Error: Email not sent.\n", errOut.String())
	})

	t.Run("no admin email", func(t *testing.T) {
		t.Parallel()

		m := &fakeMailer{}
		var out, errOut bytes.Buffer

		err := SendTest(context.Background(), m, "", &out, &errOut, logger.NewNope())
		require.ErrorIs(t, err, ErrNotSent)
		require.Empty(t, m.params)
		require.Empty(t, out.String())
		require.Equal(t, "Error: Email not sent.\n", errOut.String())
	})
}

func TestNewLogger_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "relay.log")
	log, cleanup, err := NewLogger(config.Config{LogFile: path})
	require.NoError(t, err)

	log.Error("email not sent", "error", "boom")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"email not sent"`)
}

func TestNewLogger_FileSkipsDebug(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "relay.log")
	log, cleanup, err := NewLogger(config.Config{LogFile: path})
	require.NoError(t, err)

	log.Debug("email sent", "transport", "resend")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, data)
}
