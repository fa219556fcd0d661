package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ErrGatewayUnavailable is returned when the payment gateway cannot be
// reached or rejects the request; the caller surfaces a retryable error.
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// PaymentService creates hosted checkout sessions on the card gateway.
// Pricing is computed before this call; the gateway only renders and charges
// the line items it is given.
type PaymentService struct {
	gatewayURL string
	apiKey     string
	successURL string
	cancelURL  string
	client     *http.Client
}

// NewPaymentService creates a PaymentService.
func NewPaymentService(gatewayURL, apiKey, successURL, cancelURL string) *PaymentService {
	return &PaymentService{
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		successURL: successURL,
		cancelURL:  cancelURL,
		client:     &http.Client{Timeout: 20 * time.Second},
	}
}

// CheckoutLineItem is one display row on the hosted checkout page.
type CheckoutLineItem struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
	Quantity    int    `json:"quantity"`
}

type checkoutSessionRequest struct {
	LineItems     []CheckoutLineItem `json:"line_items"`
	SuccessURL    string             `json:"success_url"`
	CancelURL     string             `json:"cancel_url"`
	CustomerEmail string             `json:"customer_email"`
	Reference     string             `json:"reference"`
}

type checkoutSessionResponse struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// CreateCheckoutSession registers a checkout session and returns the redirect
// URL the client should open.
func (s *PaymentService) CreateCheckoutSession(items []CheckoutLineItem, customerEmail, reference string) (string, error) {
	if s.gatewayURL == "" {
		return "", fmt.Errorf("%w: gateway not configured", ErrGatewayUnavailable)
	}

	body, err := json.Marshal(checkoutSessionRequest{
		LineItems:     items,
		SuccessURL:    s.successURL,
		CancelURL:     s.cancelURL,
		CustomerEmail: customerEmail,
		Reference:     reference,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, s.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[Payment] checkout session request failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[Payment] gateway returned status %d: %s", resp.StatusCode, raw)
		return "", fmt.Errorf("%w: status %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var parsed checkoutSessionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	if parsed.URL == "" {
		return "", fmt.Errorf("%w: empty redirect url", ErrGatewayUnavailable)
	}

	return parsed.URL, nil
}
