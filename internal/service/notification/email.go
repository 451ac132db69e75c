package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// DefaultEmailBaseURL is the Resend REST API root.
const DefaultEmailBaseURL = "https://api.resend.com"

// DefaultEmailFrom is the sender of admin emails.
const DefaultEmailFrom = "MMC Services <notifications@resend.dev>"

// EmailConfig holds the email provider credentials.
type EmailConfig struct {
	BaseURL string
	APIKey  string
	From    string
}

// Email is a single HTML email.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// EmailSender sends email through a Resend compatible endpoint.
type EmailSender struct {
	cfg    EmailConfig
	client *http.Client
}

// NewEmailSender creates a new EmailSender. A nil client gets a default one with a timeout.
func NewEmailSender(cfg EmailConfig, client *http.Client) *EmailSender {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultEmailBaseURL
	}
	if cfg.From == "" {
		cfg.From = DefaultEmailFrom
	}

	return &EmailSender{
		cfg:    cfg,
		client: defaultClient(client),
	}
}

// Configured reports whether the API key is present.
func (s *EmailSender) Configured() bool {
	return s.cfg.APIKey != ""
}

type emailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type emailResponse struct {
	ID string `json:"id"`
}

// Send delivers the email.
func (s *EmailSender) Send(ctx context.Context, email Email) Result {
	raw, err := json.Marshal(emailRequest{
		From:    s.cfg.From,
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTML,
	})
	if err != nil {
		return failed(fmt.Sprintf("failed to encode email: %v", err))
	}

	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/emails"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return failed(fmt.Sprintf("failed to build email request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return failed(fmt.Sprintf("failed to send email: %v", err))
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return failed(responseText(resp))
	}

	var data emailResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil || data.ID == "" {
		return failed("email provider did not return a message id")
	}

	return Result{Success: true, Message: fmt.Sprintf("Email sent successfully (ID: %s)", data.ID)}
}
