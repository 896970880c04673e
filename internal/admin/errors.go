package admin

import "errors"

var (
	ErrNotConfigured = errors.New("admin: resend is not configured")
	ErrServerFailed  = errors.New("admin: http server failed")
)
