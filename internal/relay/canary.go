package relay

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

var ErrNoAdminEmail = errors.New("relay: canary needs an admin email")

const canaryTimeout = time.Minute

// NewCanary schedules the command-line test message to adminEmail on a
// standard five-field cron spec. Overlapping runs are skipped. The caller
// starts and stops the returned scheduler.
func NewCanary(spec string, m Mailer, adminEmail string, log *slog.Logger) (*cron.Cron, error) {
	if adminEmail == "" {
		return nil, ErrNoAdminEmail
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), canaryTimeout)
		defer cancel()
		if err := SendTest(ctx, m, adminEmail, io.Discard, io.Discard, log); err != nil {
			log.WarnContext(ctx, "canary email failed", slog.String("to", adminEmail))
			return
		}
		log.InfoContext(ctx, "canary email sent", slog.String("to", adminEmail))
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
