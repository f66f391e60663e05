package alert

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramNotifierSend(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n, err := NewTelegramNotifier(TelegramConfig{
		BaseURL: srv.URL,
		Token:   "test-token",
		ChatID:  "12345",
	})
	require.NoError(t, err)

	require.NoError(t, n.Send(context.Background(), "hello"))
	assert.Equal(t, "12345", got["chat_id"])
	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, "MarkdownV2", got["parse_mode"])
}

func TestTelegramNotifierReportsHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	n, err := NewTelegramNotifier(TelegramConfig{BaseURL: srv.URL, Token: "t", ChatID: "c"})
	require.NoError(t, err)

	err = n.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestTelegramNotifierRequiresCredentials(t *testing.T) {
	_, err := NewTelegramNotifier(TelegramConfig{Token: "", ChatID: "c"})
	assert.Error(t, err)
	_, err = NewTelegramNotifier(TelegramConfig{Token: "t", ChatID: ""})
	assert.Error(t, err)
}
