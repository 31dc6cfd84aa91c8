// Package notify delivers alert notifications to a chat webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/autoserve/autoserve/pkg/domain"
)

var ErrWebhookFailed = errors.New("webhook failed")

// Notifier sends messages about alert state changes.
type Notifier interface {
	NotifyAlert(ctx context.Context, alert domain.Alert) error
	NotifyResolved(ctx context.Context, alert domain.Alert) error
}

// Webhook posts Slack-style `{"text": "..."}` payloads to a single URL.
//
// The endpoint accepts with any 2xx status code. Other statuses fail the notification.
type Webhook struct {
	URL    string
	Client *http.Client
}

var _ Notifier = Webhook{}

func (w Webhook) NotifyAlert(ctx context.Context, alert domain.Alert) error {
	return w.send(ctx, fmt.Sprintf(
		":warning: [%s] %s on %s: %s (value %.1f, threshold %.1f)",
		strings.ToUpper(string(alert.Severity)),
		alert.Type, alert.ServiceName, alert.Message, alert.Value, alert.Threshold,
	))
}

func (w Webhook) NotifyResolved(ctx context.Context, alert domain.Alert) error {
	return w.send(ctx, fmt.Sprintf(
		":white_check_mark: resolved: %s on %s",
		alert.Type, alert.ServiceName,
	))
}

func (w Webhook) send(ctx context.Context, text string) error {
	if w.URL == "" {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, w.URL, bytes.NewBuffer(payload),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := w.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return errors.Join(err, ErrWebhookFailed)
	}
	defer resp.Body.Close()

	if 200 <= resp.StatusCode && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf(
		"%w (%s %d): %s",
		ErrWebhookFailed, w.URL, resp.StatusCode, string(body),
	)
}

// None discards all notifications. Used when no webhook is configured.
type None struct{}

var _ Notifier = None{}

func (None) NotifyAlert(context.Context, domain.Alert) error    { return nil }
func (None) NotifyResolved(context.Context, domain.Alert) error { return nil }
