package testmail

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/resendrelay/pkg/mailer"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("frontmatter and body", func(t *testing.T) {
		t.Parallel()

		doc, err := Parse([]byte("---\nsubject: Hi\nheaders:\n  - \"Cc: a@x.com\"\n---\nBody\n"))
		require.NoError(t, err)
		require.Equal(t, "Hi", doc.Meta.Subject)
		require.Equal(t, []string{"Cc: a@x.com"}, doc.Meta.Headers)
		require.Equal(t, "Body\n", doc.Body)
	})

	t.Run("no frontmatter", func(t *testing.T) {
		t.Parallel()

		doc, err := Parse([]byte("just text"))
		require.NoError(t, err)
		require.Empty(t, doc.Meta.Subject)
		require.Equal(t, "just text", doc.Body)
	})

	t.Run("crlf after closing delimiter", func(t *testing.T) {
		t.Parallel()

		doc, err := Parse([]byte("---\r\nsubject: Hi\r\n---\r\nBody"))
		require.NoError(t, err)
		require.Equal(t, "Body", doc.Body)
	})

	t.Run("unterminated", func(t *testing.T) {
		t.Parallel()

		_, err := Parse([]byte("---\nsubject: Hi\n"))
		require.ErrorIs(t, err, ErrInvalidFrontmatter)
	})

	t.Run("empty after delimiter", func(t *testing.T) {
		t.Parallel()

		_, err := Parse([]byte("---\n"))
		require.ErrorIs(t, err, ErrInvalidFrontmatter)
	})

	t.Run("bad yaml", func(t *testing.T) {
		t.Parallel()

		_, err := Parse([]byte("---\nsubject: [unclosed\n---\nBody"))
		require.ErrorIs(t, err, ErrInvalidFrontmatter)
	})
}

func TestRender(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"templates/hello.md":  &fstest.MapFile{Data: []byte("---\nsubject: Hello {{.Name}}\n---\nHi **{{.Name}}**\n")},
		"templates/broken.md": &fstest.MapFile{Data: []byte("---\nsubject: x\n---\n{{.Missing}}")},
	}

	t.Run("executes subject and body", func(t *testing.T) {
		t.Parallel()

		r, err := render(fsys, "hello.md", map[string]string{"Name": "Ann"})
		require.NoError(t, err)
		require.Equal(t, "Hello Ann", r.Subject)
		require.Equal(t, "Hi **Ann**", r.Text)
		require.Contains(t, r.HTML, "<strong>Ann</strong>")
		require.Contains(t, r.HTML, "<title>Hello Ann</title>")
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		_, err := render(fsys, "broken.md", map[string]string{})
		require.ErrorIs(t, err, ErrRenderFailed)
	})

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()

		_, err := render(fsys, "nope.md", nil)
		require.ErrorIs(t, err, ErrTemplateNotFound)
	})
}

func TestCLIParams(t *testing.T) {
	t.Parallel()

	p, err := CLIParams("admin@example.com")
	require.NoError(t, err)

	require.Equal(t, []string{"admin@example.com"}, p.To)
	require.Equal(t, "Test email from Resend", p.Subject)
	require.Equal(t, "This is a test email from Resend.", p.Body)
	require.Contains(t, p.Headers, "From: Test <info@test.co.uk>")
	require.Contains(t, p.Headers, "Reply-To: david@dkjensen.com")

	msg, err := mailer.Compose(p)
	require.NoError(t, err)
	require.Equal(t, mailer.ContentTypePlain, msg.ContentType)
	require.Len(t, msg.CC(), 2)
	require.Len(t, msg.BCC(), 2)
	require.Len(t, msg.ReplyTo(), 1)
	require.Equal(t, "info@test.co.uk", msg.From.Email)
}

func TestAdminParams(t *testing.T) {
	t.Parallel()

	p, err := AdminParams(" ops@example.com ")
	require.NoError(t, err)
	require.Equal(t, []string{"ops@example.com"}, p.To)
	require.Equal(t, "Test Email", p.Subject)
	require.Contains(t, p.Body, "<strong>ops@example.com</strong>")
	require.Contains(t, p.Body, "<!DOCTYPE html>")

	msg, err := mailer.Compose(p)
	require.NoError(t, err)
	require.Equal(t, mailer.ContentTypeHTML, msg.ContentType)
	require.Equal(t, "UTF-8", msg.Charset)
}

func TestParams_RequireRecipient(t *testing.T) {
	t.Parallel()

	_, err := AdminParams("  ")
	require.ErrorIs(t, err, ErrNoRecipient)

	_, err = CLIParams("")
	require.ErrorIs(t, err, ErrNoRecipient)
}
