package linebot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushText(t *testing.T) {
	var got pushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/bot/message/push", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "token", time.Second)
	require.NoError(t, c.PushText(context.Background(), "Cgroup", "สวัสดี"))

	assert.Equal(t, "Cgroup", got.To)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "text", got.Messages[0].Type)
	assert.Equal(t, "สวัสดี", got.Messages[0].Text)
}

func TestPushText_TruncatesLongText(t *testing.T) {
	var got pushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token", time.Second)
	require.NoError(t, c.PushText(context.Background(), "U1", strings.Repeat("ก", maxTextLength+10)))
	assert.Len(t, []rune(got.Messages[0].Text), maxTextLength)
}

func TestPushText_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"The property, 'to', in the request body is invalid"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "token", time.Second).PushText(context.Background(), "bad", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "'to'")
}

func TestPushText_NotConfigured(t *testing.T) {
	err := NewClient("https://api.line.me", "", time.Second).PushText(context.Background(), "U1", "hi")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
