package mailer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds native SMTP delivery settings.
// Embed this in your app config for env parsing with caarlos0/env.
type SMTPConfig struct {
	Host     string        `env:"SMTP_HOST" envDefault:"localhost"`
	Username string        `env:"SMTP_USERNAME"`
	Password string        `env:"SMTP_PASSWORD"`
	From     string        `env:"SMTP_FROM"`
	FromName string        `env:"SMTP_FROM_NAME"`
	Port     int           `env:"SMTP_PORT" envDefault:"25"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"30s"`
}

// SMTPTransport is the host's native transport built on go-mail.
type SMTPTransport struct {
	cfg SMTPConfig
}

// NewSMTPTransport creates a native SMTP transport.
func NewSMTPTransport(cfg SMTPConfig) *SMTPTransport {
	return &SMTPTransport{cfg: cfg}
}

// Name implements Transport.
func (t *SMTPTransport) Name() string { return "smtp" }

// Send implements Transport.
func (t *SMTPTransport) Send(ctx context.Context, msg *Message) error {
	m, err := t.buildMsg(msg)
	if err != nil {
		return &SendError{Message: err.Error()}
	}

	client, err := mail.NewClient(t.cfg.Host, t.clientOptions()...)
	if err != nil {
		return &SendError{Message: fmt.Sprintf("failed to create SMTP client: %v", err)}
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return &SendError{Message: err.Error()}
	}
	return nil
}

func (t *SMTPTransport) buildMsg(msg *Message) (*mail.Msg, error) {
	m := mail.NewMsg()

	from := msg.From
	if from.Email == "" {
		from = Address{Email: t.cfg.From, Name: t.cfg.FromName}
	}
	if err := m.FromFormat(from.Name, from.Email); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}

	for _, a := range msg.To() {
		if err := m.AddToFormat(a.Name, a.Email); err != nil {
			return nil, fmt.Errorf("invalid to address: %w", err)
		}
	}
	for _, a := range msg.CC() {
		if err := m.AddCcFormat(a.Name, a.Email); err != nil {
			return nil, fmt.Errorf("invalid cc address: %w", err)
		}
	}
	for _, a := range msg.BCC() {
		if err := m.AddBccFormat(a.Name, a.Email); err != nil {
			return nil, fmt.Errorf("invalid bcc address: %w", err)
		}
	}
	if rt := msg.ReplyTo(); len(rt) > 0 {
		if err := m.ReplyToFormat(rt[0].Name, rt[0].Email); err != nil {
			return nil, fmt.Errorf("invalid reply-to address: %w", err)
		}
	}

	m.Subject(msg.Subject)
	if msg.Charset != "" {
		m.SetCharset(mail.Charset(msg.Charset))
	}

	bodyType := mail.TypeTextPlain
	if msg.ContentType == ContentTypeHTML {
		bodyType = mail.TypeTextHTML
	}
	m.SetBodyString(bodyType, msg.Body)

	for k, v := range msg.Headers {
		m.SetGenHeader(mail.Header(k), v)
	}

	for _, a := range msg.Attachments {
		opts := []mail.FileOption{mail.WithFileName(a.Filename)}
		if a.MIMEType != "" {
			opts = append(opts, mail.WithFileContentType(mail.ContentType(a.MIMEType)))
		}

		content := a.Content
		if !a.Inline {
			data, err := os.ReadFile(a.Path)
			if err != nil {
				return nil, fmt.Errorf("could not access file: %s", a.Path)
			}
			content = data
		}

		attach := m.AttachReader
		if a.Disposition == "inline" {
			attach = m.EmbedReader
		}
		if err := attach(a.Filename, bytes.NewReader(content), opts...); err != nil {
			return nil, fmt.Errorf("failed to attach file %s: %w", a.Filename, err)
		}
	}

	return m, nil
}

// clientOptions picks TLS mode by port the same way mail clients usually do.
func (t *SMTPTransport) clientOptions() []mail.Option {
	opts := []mail.Option{mail.WithPort(t.cfg.Port)}
	if t.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(t.cfg.Timeout))
	}

	switch t.cfg.Port {
	case 465:
		opts = append(opts, mail.WithSSL())
	case 587:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	if t.cfg.Username != "" && t.cfg.Password != "" {
		opts = append(opts,
			mail.WithUsername(t.cfg.Username),
			mail.WithPassword(t.cfg.Password),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	}

	return opts
}
