package notify

import (
	"context"
	"errors"
)

var _ Notifier = (*Composite)(nil)

// Composite fans a single Send out to an ordered list of channels.
// It implements the Notifier interface itself, so a Composite is a valid
// substitute anywhere a single channel is expected.
//
// Delivery is fail-soft: every channel is attempted even when an earlier one
// fails, because the channels are independent transports and a reachable one
// should still get the message. Failures are aggregated into a single error.
type Composite struct {
	notifiers []Notifier
}

// NewComposite creates a Composite over the given channels. The channels are
// invoked in argument order. An empty Composite is valid and sends nothing.
func NewComposite(notifiers ...Notifier) *Composite {
	return &Composite{notifiers: notifiers}
}

// Send implements the Notifier interface. Each held channel receives the same
// recipient and message, in order. The returned error joins every channel
// failure; individual DeliveryErrors stay reachable via errors.As.
func (c *Composite) Send(ctx context.Context, recipient, message string) error {
	var errs []error
	for _, n := range c.notifiers {
		if err := n.Send(ctx, recipient, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
