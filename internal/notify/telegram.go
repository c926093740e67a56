package notify

import (
	"context"
	"fmt"

	"github.com/avolkov-dev/order-notifier/internal/config"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

var _ Notifier = (*TelegramNotifier)(nil)

// TelegramNotifier delivers confirmations via a Telegram bot to a fixed chat
// (e.g., an order-desk channel watched by support staff).
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegramNotifier creates a new instance of TelegramNotifier.
func NewTelegramNotifier(cfg config.TelegramConfig, logger *zerolog.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot api: %w", err)
	}
	return &TelegramNotifier{
		bot:    bot,
		chatID: cfg.ChatID,
		logger: logger.With().Str("component", "telegram_notifier").Logger(),
	}, nil
}

// Send implements the Notifier interface for Telegram.
func (n *TelegramNotifier) Send(_ context.Context, recipient, message string) error {
	fullMessage := fmt.Sprintf("*%s*\n\n%s", recipient, message)

	msg := tgbotapi.NewMessage(n.chatID, fullMessage)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error().Err(err).Str("recipient", recipient).Msg("failed to send telegram message")
		return &DeliveryError{Channel: "telegram", Recipient: recipient, Err: err}
	}

	n.logger.Info().Int64("chat_id", n.chatID).Str("recipient", recipient).Msg("telegram message sent successfully")
	return nil
}
