package notify

import (
	"context"

	"github.com/avolkov-dev/order-notifier/internal/config"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

var _ Notifier = (*EmailNotifier)(nil)

// EmailNotifier delivers confirmations via SMTP.
type EmailNotifier struct {
	dialer  *gomail.Dialer
	from    string
	subject string
	logger  zerolog.Logger
}

// NewEmailNotifier creates a new instance of EmailNotifier.
func NewEmailNotifier(cfg config.EmailConfig, logger *zerolog.Logger) *EmailNotifier {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &EmailNotifier{
		dialer:  d,
		from:    cfg.From,
		subject: "Your order confirmation",
		logger:  logger.With().Str("component", "email_notifier").Logger(),
	}
}

// Send implements the Notifier interface for email. The recipient is expected
// to be an email address; validation happens upstream.
func (n *EmailNotifier) Send(_ context.Context, recipient, message string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", n.subject)
	m.SetBody("text/plain", message)

	// DialAndSend opens a connection, sends the email, and closes it.
	if err := n.dialer.DialAndSend(m); err != nil {
		n.logger.Error().Err(err).Str("recipient", recipient).Msg("failed to send email")
		return &DeliveryError{Channel: "email", Recipient: recipient, Err: err}
	}

	n.logger.Info().Str("recipient", recipient).Msg("email sent successfully")
	return nil
}
