package dispatch

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/telebot.v4"
)

// Telegram delivers messages to a single chat through a bot account.
type Telegram struct {
	bot    *telebot.Bot
	chatID int64
}

// NewTelegram builds a Telegram channel from a bot token and a numeric chat
// ID. offline skips the token verification round-trip (tests).
func NewTelegram(token, chatID string, offline bool) (*Telegram, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid telegram chat ID %q: %w", chatID, err)
	}
	bot, err := telebot.NewBot(telebot.Settings{Token: token, Offline: offline})
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: id}, nil
}

func (t *Telegram) Name() string { return "Telegram" }

func (t *Telegram) Notify(ctx context.Context, message string) error {
	_ = ctx // telebot manages its own request timeouts
	if _, err := t.bot.Send(telebot.ChatID(t.chatID), message); err != nil {
		return fmt.Errorf("send to telegram: %w", err)
	}
	return nil
}
