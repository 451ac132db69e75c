// Package notification delivers booking and order notifications over SMS and email.
//
// Senders never return errors: every outcome, including transport failures, is folded
// into a Result so callers can treat notifications as best effort.
package notification

import (
	"io"
	"net/http"
	"strings"
	"time"
)

// Result is the outcome of a single delivery attempt.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func failed(message string) Result {
	return Result{Success: false, Message: message}
}

const (
	defaultTimeout  = 10 * time.Second
	maxErrorBodyLen = 4 << 10
)

func defaultClient(client *http.Client) *http.Client {
	if client != nil {
		return client
	}

	return &http.Client{Timeout: defaultTimeout}
}

// responseText reads a bounded error body from a provider response.
func responseText(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
	if err != nil || len(strings.TrimSpace(string(raw))) == 0 {
		return resp.Status
	}

	return strings.TrimSpace(string(raw))
}

func isSuccess(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
