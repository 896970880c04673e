package resend

// Payload is the body of a send-email API call.
type Payload struct {
	From        string              `json:"from"`
	Subject     string              `json:"subject"`
	HTML        string              `json:"html"`
	To          []string            `json:"to"`
	CC          []string            `json:"cc,omitempty"`
	BCC         []string            `json:"bcc,omitempty"`
	ReplyTo     []string            `json:"reply_to,omitempty"`
	Attachments []AttachmentPayload `json:"attachments,omitempty"`
}

// AttachmentPayload is one attachment in API form.
// Content is base64 for file attachments and the original content for
// raw in-memory attachments.
type AttachmentPayload struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
	Type     string `json:"type"`

	data []byte // decoded bytes handed to the SDK
}

// Result is the outcome of a single API call: either an accepted
// message ID or a failure message. The zero value is a failure.
type Result struct {
	ID      string
	Message string
}

// Success returns an accepted result.
func Success(id string) Result { return Result{ID: id} }

// Failure returns a rejected result.
func Failure(message string) Result { return Result{Message: message} }

// OK reports whether the API accepted the message.
func (r Result) OK() bool { return r.ID != "" }
