package notify

import (
	"context"
	"fmt"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// telegramLimit is the maximum message length accepted by the Bot API.
const telegramLimit = 4096

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts notifications to an admin chat.
type Telegram struct {
	s      sender
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &Telegram{s: api, chatID: chatID}, nil
}

func (t *Telegram) Name() string { return "telegram" }

func (t *Telegram) Send(_ context.Context, subject, body string) error {
	text := subject + "\n\n" + body
	if utf8.RuneCountInString(text) > telegramLimit {
		runes := []rune(text)
		text = string(runes[:telegramLimit-1]) + "…"
	}
	if _, err := t.s.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
