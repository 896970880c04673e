package source

import "errors"

// Sentinel errors for source operations.
var (
	ErrInvalidConfig = errors.New("source: invalid configuration")
	ErrInvalidPath   = errors.New("source: invalid path")
	ErrNotFound      = errors.New("source: file not found")
	ErrAccessDenied  = errors.New("source: access denied")
	ErrReadFailed    = errors.New("source: read failed")
	ErrTooLarge      = errors.New("source: file exceeds size limit")
)
