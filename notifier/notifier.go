// Package notifier posts connector run digests to an ops Telegram channel.
package notifier

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// Notifier delivers operational messages about connector runs.
type Notifier interface {
	Notify(msg string) error
}

// TelegramNotifier posts messages to a Telegram channel.
type TelegramNotifier struct {
	ChannelID string // Telegram channel id (e.g. @mas_connector_ops)
	BotAPI    *tgbotapi.BotAPI
}

// NewTelegramNotifier creates a notifier for the given channel.
func NewTelegramNotifier(channelID, token string) (*TelegramNotifier, error) {
	b, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramNotifier{
		ChannelID: channelID,
		BotAPI:    b,
	}, nil
}

// Notify posts a message to the channel.
func (t *TelegramNotifier) Notify(msg string) error {
	tgMsg := tgbotapi.NewMessageToChannel(t.ChannelID, msg)

	_, err := t.BotAPI.Send(tgMsg)
	return err
}
