// Package admin serves the settings and test-send HTTP surface of the relay.
//
// Routes:
//
//	GET  /settings         current settings, API key masked
//	PUT  /settings         validate and save settings
//	GET  /settings/fields  form schema with sanitized field descriptions
//	POST /test-email       send the canned HTML test message
//	GET  /livez, /readyz   health probes
//
// Every request carries an X-Request-ID that is attached to log lines.
package admin
