package testmail

import "errors"

var (
	ErrTemplateNotFound   = errors.New("testmail: template not found")
	ErrInvalidFrontmatter = errors.New("testmail: invalid frontmatter")
	ErrRenderFailed       = errors.New("testmail: failed to render template")
	ErrNoRecipient        = errors.New("testmail: recipient is required")
)
