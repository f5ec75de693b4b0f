package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// =============================================================================
// WebhookReporter
// =============================================================================

// WebhookReporter POSTs updates as JSON to a generic HTTP webhook.
// Delivery failures are logged, never surfaced to the workflow.
type WebhookReporter struct {
	URL     string
	Headers map[string]string
	Client  *http.Client
	Logger  *slog.Logger
}

// NewWebhookReporter creates a webhook reporter.
func NewWebhookReporter(url string, headers map[string]string) *WebhookReporter {
	return &WebhookReporter{
		URL:     url,
		Headers: headers,
		Client:  &http.Client{Timeout: 10 * time.Second},
		Logger:  slog.Default(),
	}
}

// Report implements Reporter.
func (r *WebhookReporter) Report(ctx context.Context, update Update) {
	body, err := json.Marshal(update)
	if err != nil {
		r.logWarn("marshal update", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(body))
	if err != nil {
		r.logWarn("create request", err)
		return
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		r.logWarn("send webhook", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		r.logWarn("webhook status", nil, "status", resp.StatusCode)
	}
}

func (r *WebhookReporter) logWarn(msg string, err error, args ...any) {
	if r.Logger == nil {
		return
	}
	if err != nil {
		args = append(args, "error", err)
	}
	r.Logger.Warn("progress webhook: "+msg, args...)
}
