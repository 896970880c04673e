// Package testmail holds the canned messages used to verify a Resend
// configuration from the admin surface and the command line.
//
// Messages are markdown files with YAML frontmatter embedded in the
// binary. Frontmatter carries the subject and optional header lines;
// the body is executed as a text/template and rendered to HTML with
// goldmark when the message is sent as HTML.
//
//	p, err := testmail.AdminParams("ops@example.com")
//	if err != nil {
//		return err
//	}
//	err = m.Mail(ctx, p)
package testmail
