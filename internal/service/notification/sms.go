package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultSMSBaseURL is the Twilio REST API root.
const DefaultSMSBaseURL = "https://api.twilio.com"

// DefaultSenderID is the alphanumeric sender shown to SMS recipients.
const DefaultSenderID = "MMCServices"

// SMSConfig holds the SMS provider credentials.
type SMSConfig struct {
	BaseURL     string
	AccountSID  string
	AuthToken   string
	PhoneNumber string
	SenderID    string
}

// SMSSender sends SMS through a Twilio compatible Messages endpoint.
type SMSSender struct {
	cfg    SMSConfig
	client *http.Client
}

// NewSMSSender creates a new SMSSender. A nil client gets a default one with a timeout.
func NewSMSSender(cfg SMSConfig, client *http.Client) *SMSSender {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultSMSBaseURL
	}
	if cfg.SenderID == "" {
		cfg.SenderID = DefaultSenderID
	}

	return &SMSSender{
		cfg:    cfg,
		client: defaultClient(client),
	}
}

// Configured reports whether all provider credentials are present.
func (s *SMSSender) Configured() bool {
	return s.cfg.AccountSID != "" && s.cfg.AuthToken != "" && s.cfg.PhoneNumber != ""
}

type smsResponse struct {
	SID string `json:"sid"`
}

// Send delivers body to the E.164 number to.
func (s *SMSSender) Send(ctx context.Context, to, body string) Result {
	endpoint := fmt.Sprintf(
		"%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimRight(s.cfg.BaseURL, "/"),
		url.PathEscape(s.cfg.AccountSID),
	)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", s.cfg.SenderID)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return failed(fmt.Sprintf("failed to build SMS request: %v", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return failed(fmt.Sprintf("failed to send SMS: %v", err))
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		return failed(responseText(resp))
	}

	var data smsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return failed(fmt.Sprintf("failed to decode SMS response: %v", err))
	}

	return Result{Success: true, Message: fmt.Sprintf("SMS sent successfully (SID: %s)", data.SID)}
}
