// Package webhook delivers outbound JSON notifications to caller-supplied
// callback URLs.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mboya/payment-simulator/internal/models"
)

// Dispatcher performs one-shot webhook deliveries. Delivery failures are an
// expected outcome of simulation and are reported in the result, never as an
// error.
type Dispatcher struct {
	client *http.Client
	logger *slog.Logger
}

// NewDispatcher creates a Dispatcher whose requests are bounded by timeout.
func NewDispatcher(timeout time.Duration, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Deliver POSTs payload as JSON to url and reports the outcome. A response
// of any status counts as delivered; non-2xx statuses additionally record an
// error. Transport failures yield delivered=false with the error captured.
func (d *Dispatcher) Deliver(ctx context.Context, url string, payload any) models.WebhookResult {
	result := models.WebhookResult{AttemptedAt: time.Now()}

	body, err := json.Marshal(payload)
	if err != nil {
		result.Error = fmt.Sprintf("failed to encode payload: %v", err)
		d.logger.Error("webhook payload encoding failed", "url", url, "error", err)
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		result.Error = fmt.Sprintf("failed to build request: %v", err)
		d.logger.Warn("webhook request build failed", "url", url, "error", err)
		return result
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		result.Error = err.Error()
		d.logger.Warn("webhook delivery failed", "url", url, "error", err)
		return result
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	result.Delivered = true
	result.StatusCode = &resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result.Error = fmt.Sprintf("webhook endpoint returned status %d", resp.StatusCode)
		d.logger.Warn("webhook endpoint rejected delivery",
			"url", url,
			"status", resp.StatusCode,
		)
		return result
	}

	d.logger.Debug("webhook delivered", "url", url, "status", resp.StatusCode)
	return result
}
