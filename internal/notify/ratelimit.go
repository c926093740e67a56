package notify

import (
	"context"

	"golang.org/x/time/rate"
)

var _ Notifier = (*RateLimitedNotifier)(nil)

// RateLimitedNotifier throttles an underlying channel with a token bucket.
// It blocks until a token is available or the context is cancelled, so the
// caller's retry machinery sees cancellation rather than a burst of failures.
type RateLimitedNotifier struct {
	limiter *rate.Limiter
	next    Notifier
}

// RateLimit wraps next with a token bucket of perSecond tokens and the given burst.
func RateLimit(perSecond float64, burst int, next Notifier) *RateLimitedNotifier {
	return &RateLimitedNotifier{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		next:    next,
	}
}

// Send implements the Notifier interface.
func (n *RateLimitedNotifier) Send(ctx context.Context, recipient, message string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}
	return n.next.Send(ctx, recipient, message)
}
