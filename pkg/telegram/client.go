package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client wraps the bot API for outbound delivery only; this service
// never polls for updates.
type Client struct {
	Bot *tgbotapi.BotAPI
}

func NewClient(token string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Client{Bot: bot}, nil
}

// Send delivers a titled message to a chat.
func (c *Client) Send(chatID int64, title, message string) error {
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("%s\n\n%s", title, message))
	_, err := c.Bot.Send(msg)
	return err
}
