package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/resendrelay/pkg/mailer"
	"github.com/dmitrymomot/resendrelay/pkg/testmail"
)

var ErrNotSent = errors.New("relay: email not sent")

// Mailer is what SendTest needs from the host mailer.
type Mailer interface {
	Mail(ctx context.Context, p mailer.Params) error
}

// SendTest sends the canned command-line test message to adminEmail.
// Success is reported on stdout, failure on stderr.
func SendTest(ctx context.Context, m Mailer, adminEmail string, stdout, stderr io.Writer, log *slog.Logger) error {
	p, err := testmail.CLIParams(adminEmail)
	if err != nil {
		fmt.Fprintln(stderr, "Error: Email not sent.")
		return errors.Join(ErrNotSent, err)
	}

	if err := m.Mail(ctx, p); err != nil {
		log.ErrorContext(ctx, "test email failed", slog.String("error", err.Error()))
		fmt.Fprintln(stderr, "Error: Email not sent.")
		return errors.Join(ErrNotSent, err)
	}

	fmt.Fprintln(stdout, "Success: Email sent.")
	return nil
}
