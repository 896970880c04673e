// Package health serves liveness and readiness probes.
//
// Liveness always answers OK while the process runs. Readiness runs a set
// of named checks in parallel under a shared timeout and answers 503 when
// any of them fails:
//
//	r.Get("/livez", health.LivenessHandler())
//	r.Get("/readyz", health.ReadinessHandler(health.Checks{
//		"postgres": db.Healthcheck(pool),
//		"settings": admin.SettingsCheck(store),
//	}, health.WithLogger(log)))
//
// Responses are plain text unless the client asks for JSON with an
// Accept: application/json header or ?format=json.
package health
