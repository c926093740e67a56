package notify

import (
	"fmt"

	"github.com/avolkov-dev/order-notifier/internal/config"
	"github.com/rs/zerolog"
)

// BuildNotifier assembles the channel stack from the application's
// configuration mode and returns it behind the Notifier interface.
//
// In "development" mode the stack is a single LogNotifier. In "production"
// mode every configured channel is enabled, instrumented, and fanned out
// through a Composite; channels without configuration are skipped. An
// optional token bucket throttles the whole stack.
func BuildNotifier(cfg *config.Config, logger *zerolog.Logger) (Notifier, error) {
	log := logger.With().Str("component", "notifier_factory").Logger()
	log.Info().Str("mode", cfg.Notifiers.Mode).Msg("initializing notifiers")

	var channels []Notifier

	if cfg.Notifiers.Mode == "production" {
		if cfg.Notifiers.Email.Host != "" {
			channels = append(channels, Instrument("email", NewEmailNotifier(cfg.Notifiers.Email, logger)))
			log.Info().Msg("email notifier enabled")
		}
		if cfg.Notifiers.SMS.GatewayURL != "" {
			channels = append(channels, Instrument("sms", NewSMSNotifier(cfg.Notifiers.SMS, logger)))
			log.Info().Msg("sms notifier enabled")
		}
		if cfg.Notifiers.Slack.WebhookURL != "" {
			channels = append(channels, Instrument("slack", NewSlackNotifier(cfg.Notifiers.Slack, logger)))
			log.Info().Msg("slack notifier enabled")
		}
		if cfg.Notifiers.Telegram.BotToken != "" {
			tgNotifier, err := NewTelegramNotifier(cfg.Notifiers.Telegram, logger)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize telegram notifier: %w", err)
			}
			channels = append(channels, Instrument("telegram", tgNotifier))
			log.Info().Msg("telegram notifier enabled")
		}
	}

	// Fall back to the mock channel so a misconfigured production deployment
	// still surfaces deliveries in the logs instead of dropping them.
	if len(channels) == 0 {
		channels = append(channels, Instrument("log", NewLogNotifier(logger)))
		log.Info().Msg("log notifier enabled")
	}

	var stack Notifier = NewComposite(channels...)

	if cfg.Notifiers.RatePerSecond > 0 {
		burst := cfg.Notifiers.RateBurst
		if burst < 1 {
			burst = 1
		}
		stack = RateLimit(cfg.Notifiers.RatePerSecond, burst, stack)
		log.Info().Float64("per_second", cfg.Notifiers.RatePerSecond).Int("burst", burst).Msg("send rate limit enabled")
	}

	return stack, nil
}
