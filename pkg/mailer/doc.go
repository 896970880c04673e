// Package mailer is the host-side mail interface: a composed Message, a
// pluggable Transport and a Mailer that runs prioritized pre-delivery
// hooks before handing the message to whichever transport is active.
//
// # Usage
//
//	m := mailer.New(mailer.NewSMTPTransport(cfg.SMTP),
//		mailer.WithLogger(log),
//		resend.Register(store),
//	)
//
//	err := m.Mail(ctx, mailer.Params{
//		To:      []string{"Jane <jane@example.com>"},
//		Subject: "Hello",
//		Body:    "Plain text body",
//		Headers: []string{"Cc: team@example.com", "Reply-To: support@example.com"},
//	})
//
// # Hooks
//
// A HookFunc receives the Delivery and may edit the message or replace
// the transport. Hooks run in ascending priority; a hook registered at a
// high priority sees every change made by the ones before it.
//
// # Errors
//
//   - ErrNoRecipient: no To, Cc or Bcc address
//   - ErrInvalidAddress: an address could not be parsed
//   - ErrHookFailed: a hook aborted the delivery
//   - ErrSendFailed: the transport did not deliver (see SendError)
//   - ErrTransportUsed: a one-shot transport was reused
//
// Registered FailureHandlers are called for every one of these.
package mailer
