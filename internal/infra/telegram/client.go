// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"

	"worktime_notifier/internal/domain/notifier"

	"gopkg.in/telebot.v3"
)

// Sender is the part of *telebot.Bot the adapter uses.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
	ChatByID(id int64) (*telebot.Chat, error)
}

// TelebotAdapter implements notifier.Notifier using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot    Sender
	chatID int64
}

// NewTelebotNotifier validates credentials and creates an offline bot
// (no getMe round trip at construction).
func NewTelebotNotifier(token string, chatID int64) (*TelebotAdapter, error) {
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required: %w", notifier.ErrMissingToken)
	}
	if chatID == 0 {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID is required: %w", notifier.ErrMissingChannel)
	}
	b, err := telebot.NewBot(telebot.Settings{Token: token, Offline: true})
	if err != nil {
		return nil, fmt.Errorf("could not create Telegram bot: %w", err)
	}
	return NewTelebotAdapter(b, chatID), nil
}

func NewTelebotAdapter(b Sender, chatID int64) *TelebotAdapter {
	return &TelebotAdapter{bot: b, chatID: chatID}
}

// Send sends a text message to the configured chat.
// telebot has no context support, so ctx is only checked before the call.
func (tba *TelebotAdapter) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	recipient := &telebot.Chat{ID: tba.chatID}
	if _, err := tba.bot.Send(recipient, text, &telebot.SendOptions{DisableWebPagePreview: true}); err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	return nil
}

// CheckConnectivity resolves the target chat, which also proves the token works.
func (tba *TelebotAdapter) CheckConnectivity(ctx context.Context) (notifier.Connectivity, error) {
	conn := notifier.Connectivity{Provider: "telegram", Channel: fmt.Sprint(tba.chatID)}
	if err := ctx.Err(); err != nil {
		return conn, err
	}
	chat, err := tba.bot.ChatByID(tba.chatID)
	if err != nil {
		return conn, fmt.Errorf("cannot access chat %d: %w", tba.chatID, err)
	}
	conn.Identity = "bot"
	if chat.Title != "" {
		conn.Channel = chat.Title
	} else if chat.Username != "" {
		conn.Channel = "@" + chat.Username
	}
	return conn, nil
}
