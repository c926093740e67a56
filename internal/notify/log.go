package notify

import (
	"context"

	"github.com/rs/zerolog"
)

var _ Notifier = (*LogNotifier)(nil)

// LogNotifier is a mock channel that implements the Notifier interface.
// It simply logs the delivery details to the console instead of sending them
// through a real channel. This is extremely useful for development and testing.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a new instance of LogNotifier.
func NewLogNotifier(logger *zerolog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger.With().Str("component", "log_notifier").Logger(),
	}
}

// Send implements the Notifier interface.
func (n *LogNotifier) Send(_ context.Context, recipient, message string) error {
	n.logger.Info().
		Str("recipient", recipient).
		Str("message", message).
		Msg(">>> MOCK SEND: notification dispatched")

	return nil
}
