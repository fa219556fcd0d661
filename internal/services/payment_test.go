package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckoutSession(t *testing.T) {
	var got checkoutSessionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"url": "https://pay.example.com/cs_123"})
	}))
	defer srv.Close()

	payment := NewPaymentService(srv.URL, "sk-test", "https://fleeto.app/ok", "https://fleeto.app/cancel")
	url, err := payment.CreateCheckoutSession([]CheckoutLineItem{
		{Name: "Veg Biryani", AmountCents: 1200, Quantity: 2},
		{Name: "Delivery fee", AmountCents: 199, Quantity: 1},
	}, "a@b.com", "FLT-004821")
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example.com/cs_123", url)
	assert.Equal(t, "a@b.com", got.CustomerEmail)
	assert.Equal(t, "FLT-004821", got.Reference)
	assert.Len(t, got.LineItems, 2)
	assert.Equal(t, "https://fleeto.app/ok", got.SuccessURL)
}

func TestCreateCheckoutSessionGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"card declined"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	payment := NewPaymentService(srv.URL, "sk-test", "s", "c")
	_, err := payment.CreateCheckoutSession(nil, "a@b.com", "FLT-000001")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGatewayUnavailable))
}

func TestCreateCheckoutSessionUnconfigured(t *testing.T) {
	payment := NewPaymentService("", "", "s", "c")
	_, err := payment.CreateCheckoutSession(nil, "a@b.com", "FLT-000001")
	require.ErrorIs(t, err, ErrGatewayUnavailable)
}
