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

var _ Notifier = (*SMSNotifier)(nil)

// SMSNotifier delivers confirmations through an HTTP SMS gateway.
type SMSNotifier struct {
	gatewayURL string
	apiKey     string
	sender     string
	client     *http.Client
	logger     zerolog.Logger
}

// NewSMSNotifier creates a new instance of SMSNotifier.
func NewSMSNotifier(cfg config.SMSConfig, logger *zerolog.Logger) *SMSNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &SMSNotifier{
		gatewayURL: cfg.GatewayURL,
		apiKey:     cfg.APIKey,
		sender:     cfg.Sender,
		client:     &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "sms_notifier").Logger(),
	}
}

type smsGatewayRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

// Send implements the Notifier interface for SMS. The recipient is expected
// to be a phone number in whatever format the gateway accepts.
func (n *SMSNotifier) Send(ctx context.Context, recipient, message string) error {
	body, err := json.Marshal(smsGatewayRequest{From: n.sender, To: recipient, Text: message})
	if err != nil {
		return &DeliveryError{Channel: "sms", Recipient: recipient, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return &DeliveryError{Channel: "sms", Recipient: recipient, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Error().Err(err).Str("recipient", recipient).Msg("sms gateway request failed")
		return &DeliveryError{Channel: "sms", Recipient: recipient, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("gateway returned status %d", resp.StatusCode)
		n.logger.Error().Err(err).Str("recipient", recipient).Msg("sms gateway rejected message")
		return &DeliveryError{Channel: "sms", Recipient: recipient, Err: err}
	}

	n.logger.Info().Str("recipient", recipient).Msg("sms sent successfully")
	return nil
}
