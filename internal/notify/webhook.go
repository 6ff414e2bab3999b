package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/codecanvas/beacon/internal/storage"
)

// WebhookDispatcher posts event payloads to every active registered webhook.
// Delivery is best-effort: per-target failures are logged and swallowed.
type WebhookDispatcher struct {
	webhooks storage.WebhookStore
	client   *http.Client
	logger   *slog.Logger
}

func NewWebhookDispatcher(webhooks storage.WebhookStore, client *http.Client, logger *slog.Logger) *WebhookDispatcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookDispatcher{
		webhooks: webhooks,
		client:   client,
		logger:   logger,
	}
}

func (d *WebhookDispatcher) TriggerEvent(ctx context.Context, event string, payload any) {
	targets, err := d.webhooks.ListActive(ctx, event)
	if err != nil {
		d.logger.Error("failed to load webhooks", "event", event, "error", err)
		return
	}
	if len(targets) == 0 {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		d.logger.Error("failed to marshal webhook payload", "event", event, "error", err)
		return
	}

	for _, hook := range targets {
		if err := d.post(ctx, hook.TargetURL, body); err != nil {
			d.logger.Error("webhook delivery failed", "event", event, "target", hook.TargetURL, "error", err)
			continue
		}
		d.logger.Info("webhook triggered", "event", event, "target", hook.TargetURL)
	}
}

func (d *WebhookDispatcher) post(ctx context.Context, targetURL string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("target returned %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}
	return nil
}
