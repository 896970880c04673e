package resend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v3"
)

// errNoID is reported when the API answers without a message ID.
const errNoID = "resend: response did not include a message id"

// Client performs send-email API calls.
// Send never returns a raw fault: transport errors become a failed Result.
type Client interface {
	Send(ctx context.Context, p *Payload) Result
}

// ClientFactory builds a Client for an API key.
type ClientFactory func(apiKey string) Client

// sdkClient implements Client on top of resend-go.
type sdkClient struct {
	client *resend.Client
}

// NewClient creates a Client with an explicit HTTP timeout.
func NewClient(apiKey string, cfg Config) Client {
	cfg = cfg.withDefaults()

	c := resend.NewCustomClient(&http.Client{Timeout: cfg.Timeout}, apiKey)
	if u, err := url.Parse(cfg.BaseURL); err == nil {
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		c.BaseURL = u
	}
	return &sdkClient{client: c}
}

// Factory returns a ClientFactory bound to cfg.
func Factory(cfg Config) ClientFactory {
	return func(apiKey string) Client {
		return NewClient(apiKey, cfg)
	}
}

// Send implements Client.
func (c *sdkClient) Send(ctx context.Context, p *Payload) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Failure(fmt.Sprint(r))
		}
	}()

	resp, err := c.client.Emails.SendWithContext(ctx, toRequest(p))
	if err != nil {
		return Failure(err.Error())
	}
	if resp == nil || resp.Id == "" {
		return Failure(errNoID)
	}
	return Success(resp.Id)
}

func toRequest(p *Payload) *resend.SendEmailRequest {
	req := &resend.SendEmailRequest{
		From:    p.From,
		To:      p.To,
		Subject: p.Subject,
		Html:    p.HTML,
		Cc:      p.CC,
		Bcc:     p.BCC,
	}

	// The SDK takes a single reply-to; several go out as one header.
	switch len(p.ReplyTo) {
	case 0:
	case 1:
		req.ReplyTo = p.ReplyTo[0]
	default:
		req.Headers = map[string]string{"Reply-To": strings.Join(p.ReplyTo, ", ")}
	}

	if len(p.Attachments) > 0 {
		req.Attachments = make([]*resend.Attachment, len(p.Attachments))
		for i, a := range p.Attachments {
			data := a.data
			if data == nil {
				data = []byte(a.Content)
			}
			req.Attachments[i] = &resend.Attachment{
				Content:     data,
				Filename:    a.Filename,
				ContentType: a.Type,
			}
		}
	}

	return req
}
