package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// MailerService delivers transactional email through an HTTP mail API.
type MailerService struct {
	apiURL string
	apiKey string
	from   string
	client *http.Client
}

// NewMailerService creates a MailerService.
func NewMailerService(apiURL, apiKey, from string) *MailerService {
	return &MailerService{
		apiURL: apiURL,
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type mailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Send dispatches one email. It returns an error on any non-2xx response so
// callers can abort flows that depend on delivery.
func (s *MailerService) Send(to, subject, htmlBody string) error {
	if s.apiURL == "" {
		log.Println("[Mailer] API URL not configured, skipping send")
		return nil
	}

	body, err := json.Marshal(mailMessage{
		From:    s.from,
		To:      to,
		Subject: subject,
		HTML:    htmlBody,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[Mailer] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[Mailer] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("mail api returned status %d", resp.StatusCode)
	}

	return nil
}

// SendOTP delivers the signup verification code.
func (s *MailerService) SendOTP(to, firstName, code string) error {
	html := fmt.Sprintf(`<div style="font-family:sans-serif">
<h2>Verify your Fleeto account</h2>
<p>Hi %s,</p>
<p>Your verification code is:</p>
<p style="font-size:28px;letter-spacing:6px"><b>%s</b></p>
<p>The code expires in 5 minutes. If you did not sign up, ignore this email.</p>
</div>`, firstName, code)

	return s.Send(to, "Your Fleeto verification code", html)
}
