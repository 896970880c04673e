package resend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	body   map[string]any
	auth   string
	path   string
	method string
}

func newAPIServer(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		_ = json.Unmarshal(raw, &captured.body)
		captured.auth = r.Header.Get("Authorization")
		captured.path = r.URL.Path
		captured.method = r.Method

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func TestClient_Send_Success(t *testing.T) {
	t.Parallel()

	srv, captured := newAPIServer(t, http.StatusOK, `{"id":"abc"}`)
	client := NewClient("re_key", Config{BaseURL: srv.URL, Timeout: time.Second})

	res := client.Send(context.Background(), &Payload{
		From:    "A <a@x.com>",
		To:      []string{"b@y.com"},
		Subject: "Hi",
		HTML:    "hello",
	})

	require.True(t, res.OK())
	require.Equal(t, "abc", res.ID)
	require.Equal(t, http.MethodPost, captured.method)
	require.Equal(t, "/emails", captured.path)
	require.Equal(t, "Bearer re_key", captured.auth)
	require.Equal(t, "A <a@x.com>", captured.body["from"])
	require.Equal(t, "Hi", captured.body["subject"])
	require.Equal(t, "hello", captured.body["html"])
	require.Equal(t, []any{"b@y.com"}, captured.body["to"])
}

func TestClient_Send_MissingID(t *testing.T) {
	t.Parallel()

	srv, _ := newAPIServer(t, http.StatusOK, `{}`)
	client := NewClient("re_key", Config{BaseURL: srv.URL})

	res := client.Send(context.Background(), &Payload{To: []string{"b@y.com"}})

	require.False(t, res.OK())
	require.Equal(t, errNoID, res.Message)
}

func TestClient_Send_APIError(t *testing.T) {
	t.Parallel()

	srv, _ := newAPIServer(t, http.StatusUnprocessableEntity,
		`{"statusCode":422,"name":"validation_error","message":"Invalid from field."}`)
	client := NewClient("re_key", Config{BaseURL: srv.URL})

	res := client.Send(context.Background(), &Payload{To: []string{"b@y.com"}})

	require.False(t, res.OK())
	require.Contains(t, res.Message, "Invalid from field.")
}

func TestClient_Send_NetworkFault(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient("re_key", Config{BaseURL: srv.URL, Timeout: time.Second})

	res := client.Send(context.Background(), &Payload{To: []string{"b@y.com"}})

	require.False(t, res.OK())
	require.NotEmpty(t, res.Message)
}

func TestClient_Send_ReplyTo(t *testing.T) {
	t.Parallel()

	t.Run("single address uses reply_to", func(t *testing.T) {
		t.Parallel()

		srv, captured := newAPIServer(t, http.StatusOK, `{"id":"1"}`)
		NewClient("k", Config{BaseURL: srv.URL}).Send(context.Background(), &Payload{
			To:      []string{"b@y.com"},
			ReplyTo: []string{"r@y.com"},
		})

		require.NotNil(t, captured.body["reply_to"])
		require.Contains(t, captured.body["reply_to"], "r@y.com")
	})

	t.Run("several addresses use a header", func(t *testing.T) {
		t.Parallel()

		srv, captured := newAPIServer(t, http.StatusOK, `{"id":"1"}`)
		NewClient("k", Config{BaseURL: srv.URL}).Send(context.Background(), &Payload{
			To:      []string{"b@y.com"},
			ReplyTo: []string{"r1@y.com", "r2@y.com"},
		})

		headers, ok := captured.body["headers"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "r1@y.com, r2@y.com", headers["Reply-To"])
	})
}

func TestToRequest_Attachments(t *testing.T) {
	t.Parallel()

	req := toRequest(&Payload{
		Attachments: []AttachmentPayload{
			{Content: "aGVsbG8=", Filename: "a.txt", Type: "text/plain", data: []byte("hello")},
			{Content: "raw", Filename: "b.txt", Type: "text/plain"},
		},
	})

	require.Len(t, req.Attachments, 2)
	require.Equal(t, []byte("hello"), req.Attachments[0].Content)
	require.Equal(t, "a.txt", req.Attachments[0].Filename)
	require.Equal(t, "text/plain", req.Attachments[0].ContentType)
	require.Equal(t, []byte("raw"), req.Attachments[1].Content)
}

func TestResult(t *testing.T) {
	t.Parallel()

	require.True(t, Success("x").OK())
	require.False(t, Failure("nope").OK())
	require.False(t, Result{}.OK())
}
