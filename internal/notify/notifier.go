// Package notify provides the delivery capability the order workflow depends
// on. The high-level service only ever sees the Notifier interface; concrete
// channels (SMTP, SMS gateway, Slack webhook, Telegram bot) can be swapped or
// stacked through dependency injection without touching the workflow.
package notify

import (
	"context"
	"fmt"
)

// Notifier defines the interface for any notification sending service.
// This allows us to easily swap or add new delivery channels.
type Notifier interface {
	// Send delivers message to recipient. The recipient format (email address,
	// phone number, chat id) is the caller's responsibility to match to the
	// channel behind the interface.
	Send(ctx context.Context, recipient, message string) error
}

// DeliveryError describes a failed delivery attempt on a concrete channel.
// Channel implementations wrap transport failures in it so callers can react
// without knowing which concrete type sits behind the Notifier interface.
type DeliveryError struct {
	Channel   string
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s delivery to %s failed: %v", e.Channel, e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
