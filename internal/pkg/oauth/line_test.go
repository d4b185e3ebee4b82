package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestService(verifyURL string) *LineServiceImpl {
	return &LineServiceImpl{
		config:     &oauth2.Config{ClientID: "1650000000", Endpoint: Endpoint},
		verifyURL:  verifyURL,
		httpClient: http.DefaultClient,
	}
}

func TestVerifyIDToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "1650000000", r.PostForm.Get("client_id"))
		if r.PostForm.Get("id_token") != "good" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_request"}`))
			return
		}
		_, _ = w.Write([]byte(`{"sub":"U4af4980629a0b1c2d3e4f5a6b7c8d9e0","name":"Somchai"}`))
	}))
	defer srv.Close()

	svc := newTestService(srv.URL)

	profile, err := svc.VerifyIDToken(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "U4af4980629a0b1c2d3e4f5a6b7c8d9e0", profile.UserID)
	assert.Equal(t, "Somchai", profile.Name)

	_, err = svc.VerifyIDToken(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidIDToken)
}

func TestRedirectURL(t *testing.T) {
	svc := NewLineService("1650000000", "secret", "https://example.com/callback", []string{"openid", "profile"})
	u := svc.RedirectURL("xyz")
	assert.Contains(t, u, "https://access.line.me/oauth2/v2.1/authorize")
	assert.Contains(t, u, "state=xyz")
	assert.Contains(t, u, "client_id=1650000000")
}
