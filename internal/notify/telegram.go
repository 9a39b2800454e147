// Package notify delivers alignment alerts over Telegram. Delivery is best
// effort: the caller logs failures and moves on, a dead bot never blocks a
// tick.
package notify

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TelegramNotifier sends messages to a fixed chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegramNotifier authorizes the bot once at startup.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger := log.With().Str("component", "telegram_notifier").Logger()
	logger.Info().Str("username", bot.Self.UserName).Msg("Authorized on Telegram")

	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}, nil
}

// Notify sends one message. The context is accepted for interface symmetry;
// the Telegram client manages its own request timeout.
func (n *TelegramNotifier) Notify(ctx context.Context, message string) error {
	msg := tgbotapi.NewMessage(n.chatID, message)
	if _, err := n.bot.Send(msg); err != nil {
		return err
	}
	n.logger.Debug().Str("message", message).Msg("Alert sent")
	return nil
}

// NopNotifier is used when no Telegram credentials are configured.
type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, message string) error { return nil }
