// Package settings reads and stores the Resend transport configuration.
//
// The record holds three keys: api_key, from_email and from_name. Get
// never fails: a missing record or key reads as an empty string and an
// unusable configuration is reported by the Resend API at send time.
//
// Stores:
//
//   - MemoryStore: in-process, for tests and one-off commands
//   - EnvStore: RESEND_API_KEY, RESEND_FROM_EMAIL, RESEND_FROM_NAME (read-only)
//   - PostgresStore: JSON document in the options table (see Migrations)
//   - RedisStore: hash under the resend_settings key
//
// Validate applies the settings form rules before a record is saved.
package settings
