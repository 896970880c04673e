package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("mailer: email must have at least one recipient")

	// ErrInvalidAddress indicates an address header could not be parsed.
	ErrInvalidAddress = errors.New("mailer: invalid address")

	// ErrInvalidField indicates a lookup of an unknown address list.
	ErrInvalidField = errors.New("mailer: invalid recipient field")

	// ErrHookFailed indicates a pre-delivery hook aborted the send.
	ErrHookFailed = errors.New("mailer: pre-delivery hook failed")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("mailer: failed to send email")

	// ErrTransportUsed indicates a one-shot transport was asked to send twice.
	ErrTransportUsed = errors.New("mailer: transport already used")
)

// SendError is the failure a Transport reports when delivery did not happen.
// It matches ErrSendFailed so callers only need errors.Is.
type SendError struct {
	Message string
}

func (e *SendError) Error() string {
	if e.Message == "" {
		return ErrSendFailed.Error()
	}
	return e.Message
}

// Is reports ErrSendFailed as the error kind.
func (e *SendError) Is(target error) bool {
	return target == ErrSendFailed
}
