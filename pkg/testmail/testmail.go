package testmail

import (
	"strings"

	"github.com/dmitrymomot/resendrelay/pkg/mailer"
)

const (
	cliTemplate     = "cli.md"
	successTemplate = "success.md"
)

// CLIParams returns the command-line test message addressed to adminEmail.
// The body is plain text; the From header is informational since the
// Resend transport always sends from the configured sender.
func CLIParams(adminEmail string) (mailer.Params, error) {
	return params(cliTemplate, adminEmail, false)
}

// AdminParams returns the HTML test message sent from the admin surface.
func AdminParams(email string) (mailer.Params, error) {
	return params(successTemplate, email, true)
}

func params(name, to string, asHTML bool) (mailer.Params, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return mailer.Params{}, ErrNoRecipient
	}

	r, err := Render(name, map[string]string{"Email": to})
	if err != nil {
		return mailer.Params{}, err
	}

	body := r.Text
	if asHTML {
		body = r.HTML
	}

	return mailer.Params{
		To:      []string{to},
		Subject: r.Subject,
		Body:    body,
		Headers: r.Headers,
	}, nil
}
