package notify

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	sendsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_notifier_sends_total",
		Help: "Delivery attempts per channel and outcome",
	}, []string{"channel", "outcome"})

	sendDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "order_notifier_send_seconds",
		Help: "Time spent in a single channel Send call",
	}, []string{"channel"})
)

func init() {
	prometheus.MustRegister(sendsTotal, sendDuration)
}

var _ Notifier = (*InstrumentedNotifier)(nil)

// InstrumentedNotifier wraps a channel and counts its delivery attempts.
type InstrumentedNotifier struct {
	channel string
	next    Notifier
}

// Instrument wraps next with prometheus counters labelled by channel name.
func Instrument(channel string, next Notifier) *InstrumentedNotifier {
	return &InstrumentedNotifier{channel: channel, next: next}
}

// Send implements the Notifier interface.
func (n *InstrumentedNotifier) Send(ctx context.Context, recipient, message string) error {
	start := time.Now()
	err := n.next.Send(ctx, recipient, message)
	sendDuration.WithLabelValues(n.channel).Observe(time.Since(start).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "fail"
	}
	sendsTotal.WithLabelValues(n.channel, outcome).Inc()
	return err
}
