// Package resend delivers mailer messages through the Resend HTTP API.
//
// Transport is a single-use mailer.Transport. On Send it reads the
// settings record once, builds the API payload, makes one synchronous
// call and reports any failure as a *mailer.SendError, so code written
// against mailer.Mailer handles Resend failures like any other delivery
// failure.
//
// Hook plugs the transport into a Mailer at the pre-delivery point:
//
//	store := settings.NewEnvStore()
//	m := mailer.New(mailer.NewSMTPTransport(smtpCfg),
//		resend.Register(store,
//			resend.WithConfig(resend.Config{Timeout: 10 * time.Second}),
//			resend.WithLogger(fileLog),
//		),
//	)
//	err := m.Mail(ctx, mailer.Params{
//		To:      []string{"Jane <jane@example.com>"},
//		Subject: "Hi",
//		Body:    "line one\nline two",
//	})
//
// The hook replays every address and attachment onto a fresh message
// and converts plain text bodies to HTML ("<br />" before each line
// break) because Resend receives the body in its html field.
package resend
