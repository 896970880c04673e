package resend

import "time"

// DefaultBaseURL is the Resend API root.
const DefaultBaseURL = "https://api.resend.com/"

// Config holds Resend HTTP client configuration.
// Embed this in your app config for env parsing with caarlos0/env.
// Credentials and the sender are not part of it: they come from the
// settings store on every send.
type Config struct {
	BaseURL string        `env:"RESEND_BASE_URL"`
	Timeout time.Duration `env:"RESEND_TIMEOUT" envDefault:"30s"`
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}
