package resend

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/resendrelay/pkg/mailer"
	"github.com/dmitrymomot/resendrelay/pkg/settings"
	"github.com/dmitrymomot/resendrelay/pkg/source"
)

func TestFormatFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings settings.Settings
		expected string
	}{
		{name: "with name", settings: settings.Settings{FromEmail: "a@x.com", FromName: "A"}, expected: "A <a@x.com>"},
		{name: "without name", settings: settings.Settings{FromEmail: "a@x.com"}, expected: "a@x.com"},
		{name: "nothing configured", settings: settings.Settings{}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, FormatFrom(tt.settings))
		})
	}
}

func TestFormatRecipients_KeepsOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	msg := mailer.NewMessage()
	msg.AddAddress("b@y.com", "B")
	msg.AddAddress("c@y.com", "")
	msg.AddAddress("b@y.com", "B again")

	require.Equal(t, []string{"b@y.com", "c@y.com", "b@y.com"}, FormatRecipients(msg, mailer.FieldTo))
}

func TestFormatRecipients_EachField(t *testing.T) {
	t.Parallel()

	msg := mailer.NewMessage()
	msg.AddAddress("to@x.com", "To")
	msg.AddCC("cc1@x.com", "")
	msg.AddCC("cc2@x.com", "CC 2")
	msg.AddBCC("bcc@x.com", "")
	msg.AddReplyTo("reply@x.com", "Reply")

	require.Equal(t, []string{"to@x.com"}, FormatRecipients(msg, mailer.FieldTo))
	require.Equal(t, []string{"cc1@x.com", "cc2@x.com"}, FormatRecipients(msg, mailer.FieldCC))
	require.Equal(t, []string{"bcc@x.com"}, FormatRecipients(msg, mailer.FieldBCC))
	require.Equal(t, []string{"reply@x.com"}, FormatRecipients(msg, mailer.FieldReplyTo))
}

func TestFormatRecipients_EmptyList(t *testing.T) {
	t.Parallel()

	out := FormatRecipients(mailer.NewMessage(), mailer.FieldCC)
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestFormatRecipients_UnknownFieldPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		FormatRecipients(mailer.NewMessage(), mailer.Field(42))
	})
}

func TestFormatAttachments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pdf := filepath.Join(dir, "invoice.pdf")
	fileData := []byte("%PDF-1.4 fake")
	require.NoError(t, os.WriteFile(pdf, fileData, 0o600))

	msg := mailer.NewMessage()
	msg.AddStringAttachment([]byte("raw,csv,content"), "report.csv", "", "text/csv", "")
	msg.AddAttachment(pdf, "Invoice", "", "", "")
	msg.AddStringAttachment([]byte("raw,csv,content"), "report.csv", "", "text/csv", "")

	out, err := FormatAttachments(context.Background(), msg, source.FileOpener{})
	require.NoError(t, err)
	require.Len(t, out, 3)

	require.Equal(t, "raw,csv,content", out[0].Content)
	require.Equal(t, "report.csv", out[0].Filename)
	require.Equal(t, "text/csv", out[0].Type)

	require.Equal(t, base64.StdEncoding.EncodeToString(fileData), out[1].Content)
	require.Equal(t, "invoice.pdf", out[1].Filename)
	require.Equal(t, "application/pdf", out[1].Type)
	require.Equal(t, fileData, out[1].data)

	require.Equal(t, out[0].Content, out[2].Content)
}

func TestFormatAttachments_UnreadableFile(t *testing.T) {
	t.Parallel()

	msg := mailer.NewMessage()
	msg.AddAttachment(filepath.Join(t.TempDir(), "missing.txt"), "", "", "", "")

	_, err := FormatAttachments(context.Background(), msg, source.FileOpener{})
	require.ErrorIs(t, err, source.ErrNotFound)
}

func TestNormalizeBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		ct       mailer.ContentType
		expected string
	}{
		{name: "plain without breaks", body: "hello", ct: mailer.ContentTypePlain, expected: "hello"},
		{name: "plain two lines", body: "line1\nline2", ct: mailer.ContentTypePlain, expected: "line1<br />\nline2"},
		{name: "crlf is one break", body: "a\r\nb", ct: mailer.ContentTypePlain, expected: "a<br />\r\nb"},
		{name: "lfcr is one break", body: "a\n\rb", ct: mailer.ContentTypePlain, expected: "a<br />\n\rb"},
		{name: "bare cr", body: "a\rb", ct: mailer.ContentTypePlain, expected: "a<br />\rb"},
		{name: "blank line", body: "a\n\nb", ct: mailer.ContentTypePlain, expected: "a<br />\n<br />\nb"},
		{name: "plain is escaped", body: "1 < 2 & 3", ct: mailer.ContentTypePlain, expected: "1 &lt; 2 &amp; 3"},
		{name: "html passes through", body: "<p>a</p>\n<p>b</p>", ct: mailer.ContentTypeHTML, expected: "<p>a</p>\n<p>b</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, NormalizeBody(tt.body, tt.ct))
		})
	}
}
