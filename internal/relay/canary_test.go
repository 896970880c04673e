package relay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/resendrelay/pkg/logger"
	"github.com/dmitrymomot/resendrelay/pkg/mailer"
)

func TestNewCanary(t *testing.T) {
	t.Parallel()

	t.Run("runs the test send", func(t *testing.T) {
		t.Parallel()

		m := &fakeMailer{}
		c, err := NewCanary("0 * * * *", m, "ops@example.com", logger.NewNope())
		require.NoError(t, err)

		entries := c.Entries()
		require.Len(t, entries, 1)
		entries[0].WrappedJob.Run()

		require.Len(t, m.params, 1)
		require.Equal(t, []string{"ops@example.com"}, m.params[0].To)
	})

	t.Run("failed send is only logged", func(t *testing.T) {
		t.Parallel()

		m := &fakeMailer{err: &mailer.SendError{Message: "boom"}}
		c, err := NewCanary("@hourly", m, "ops@example.com", logger.NewNope())
		require.NoError(t, err)
		c.Entries()[0].WrappedJob.Run()
		require.Len(t, m.params, 1)
	})

	t.Run("invalid spec", func(t *testing.T) {
		t.Parallel()

		_, err := NewCanary("every minute", &fakeMailer{}, "ops@example.com", logger.NewNope())
		require.Error(t, err)
	})

	t.Run("no admin email", func(t *testing.T) {
		t.Parallel()

		_, err := NewCanary("@hourly", &fakeMailer{}, "", logger.NewNope())
		require.ErrorIs(t, err, ErrNoAdminEmail)
	})
}
