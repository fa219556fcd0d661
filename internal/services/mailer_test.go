package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailerSend(t *testing.T) {
	var got mailMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	mailer := NewMailerService(srv.URL, "test-key", "Fleeto <no-reply@fleeto.app>")
	err := mailer.SendOTP("a@b.com", "Asha", "4821")
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", got.To)
	assert.Equal(t, "Your Fleeto verification code", got.Subject)
	assert.Contains(t, got.HTML, "4821")
}

func TestMailerSendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	mailer := NewMailerService(srv.URL, "", "Fleeto <no-reply@fleeto.app>")
	err := mailer.Send("a@b.com", "subject", "<p>body</p>")
	require.Error(t, err)
}

func TestMailerUnconfiguredIsNoop(t *testing.T) {
	mailer := NewMailerService("", "", "Fleeto <no-reply@fleeto.app>")
	require.NoError(t, mailer.Send("a@b.com", "subject", "<p>body</p>"))
}
