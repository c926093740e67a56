package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/avolkov-dev/order-notifier/internal/config"
	"github.com/rs/zerolog"
)

var _ Notifier = (*SlackNotifier)(nil)

// SlackNotifier posts confirmations to a Slack incoming webhook.
// The webhook determines the target channel, so the recipient is only
// mentioned in the message body.
type SlackNotifier struct {
	webhookURL string
	client     *http.Client
	logger     zerolog.Logger
}

// NewSlackNotifier creates a new instance of SlackNotifier.
func NewSlackNotifier(cfg config.SlackConfig, logger *zerolog.Logger) *SlackNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &SlackNotifier{
		webhookURL: cfg.WebhookURL,
		client:     &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "slack_notifier").Logger(),
	}
}

type slackWebhookPayload struct {
	Text string `json:"text"`
}

// Send implements the Notifier interface for Slack.
func (n *SlackNotifier) Send(ctx context.Context, recipient, message string) error {
	payload := slackWebhookPayload{Text: fmt.Sprintf("Notification for %s: %s", recipient, message)}
	body, err := json.Marshal(payload)
	if err != nil {
		return &DeliveryError{Channel: "slack", Recipient: recipient, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return &DeliveryError{Channel: "slack", Recipient: recipient, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Error().Err(err).Str("recipient", recipient).Msg("slack webhook request failed")
		return &DeliveryError{Channel: "slack", Recipient: recipient, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("webhook returned status %d", resp.StatusCode)
		n.logger.Error().Err(err).Str("recipient", recipient).Msg("slack webhook rejected message")
		return &DeliveryError{Channel: "slack", Recipient: recipient, Err: err}
	}

	n.logger.Info().Str("recipient", recipient).Msg("slack message sent successfully")
	return nil
}
