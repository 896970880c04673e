package admin

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/resendrelay/pkg/settings"
)

// Field describes one input of the settings form.
type Field struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

var descriptionPolicy = newDescriptionPolicy()

// Descriptions may carry links and basic emphasis, nothing else.
func newDescriptionPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements("p", "br", "strong", "em", "code")
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Fields returns the settings form schema.
func Fields() []Field {
	fields := []Field{
		{
			ID:          settings.KeyAPIKey,
			Type:        "password",
			Label:       "API Key",
			Description: `You can find your API key here: <a href="https://resend.com/api-keys">https://resend.com/api-keys</a>`,
			Required:    true,
		},
		{
			ID:          settings.KeyFromEmail,
			Type:        "email",
			Label:       "From Email",
			Description: "The email domain should match a verified sending domain.",
			Required:    true,
		},
		{
			ID:    settings.KeyFromName,
			Type:  "text",
			Label: "From Name",
		},
	}
	for i := range fields {
		fields[i].Description = SanitizeDescription(fields[i].Description)
	}
	return fields
}

// SanitizeDescription strips everything but links and inline formatting.
func SanitizeDescription(s string) string {
	if s == "" {
		return ""
	}
	return descriptionPolicy.Sanitize(s)
}
