package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("no checks", func(t *testing.T) {
		t.Parallel()

		resp, err := Run(context.Background(), nil)
		require.NoError(t, err)
		require.Equal(t, StatusHealthy, resp.Status)
		require.Empty(t, resp.Checks)
	})

	t.Run("one failing", func(t *testing.T) {
		t.Parallel()

		resp, err := Run(context.Background(), Checks{
			"ok":   func(context.Context) error { return nil },
			"down": func(context.Context) error { return errors.New("connection refused") },
			"nil":  nil,
		})
		require.ErrorIs(t, err, ErrCheckFailed)
		require.Equal(t, StatusUnhealthy, resp.Status)
		require.Equal(t, Check{Status: StatusHealthy}, resp.Checks["ok"])
		require.Equal(t, Check{Status: StatusHealthy}, resp.Checks["nil"])
		require.Equal(t, Check{Status: StatusUnhealthy, Error: "connection refused"}, resp.Checks["down"])
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		resp, err := Run(context.Background(), Checks{
			"slow": func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		}, WithTimeout(20*time.Millisecond))
		require.ErrorIs(t, err, ErrCheckFailed)
		require.Contains(t, resp.Checks["slow"].Error, ErrCheckTimeout.Error())
	})
}

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	failing := Checks{"store": func(context.Context) error { return errors.New("no settings") }}

	t.Run("plain", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ReadinessHandler(failing)(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Equal(t, "Service Unavailable", rec.Body.String())
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		req.Header.Set("Accept", "application/json")
		ReadinessHandler(failing)(rec, req)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, StatusUnhealthy, resp.Status)
		require.Equal(t, "no settings", resp.Checks["store"].Error)
	})

	t.Run("healthy json via query", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		ReadinessHandler(Checks{})(rec, httptest.NewRequest(http.MethodGet, "/readyz?format=json", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	})
}
