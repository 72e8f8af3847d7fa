package telegram

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// BotClient adapts github.com/go-telegram/bot to the Client interface.
type BotClient struct {
	b *bot.Bot
}

func NewBotClient(b *bot.Bot) *BotClient {
	return &BotClient{b: b}
}

func (c *BotClient) SendMessage(ctx context.Context, chatID int64, text string, markup models.ReplyMarkup) (int, error) {
	msg, err := c.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

func (c *BotClient) EditMessage(ctx context.Context, chatID int64, messageID int, text string, markup models.ReplyMarkup) error {
	_, err := c.b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ReplyMarkup: markup,
	})
	return err
}

func (c *BotClient) SendDocument(ctx context.Context, chatID int64, filename string, data io.Reader, caption string) error {
	_, err := c.b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileUpload{Filename: filename, Data: data},
		Caption:  caption,
	})
	return err
}

func (c *BotClient) SendVideo(ctx context.Context, chatID int64, filename string, data io.Reader, caption string) error {
	_, err := c.b.SendVideo(ctx, &bot.SendVideoParams{
		ChatID:            chatID,
		Video:             &models.InputFileUpload{Filename: filename, Data: data},
		Caption:           caption,
		SupportsStreaming: true,
	})
	return err
}

func (c *BotClient) SendChatAction(ctx context.Context, chatID int64, action ChatAction) error {
	_, err := c.b.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: action,
	})
	return err
}

func (c *BotClient) CopyMessage(ctx context.Context, toChatID, fromChatID int64, messageID int) error {
	_, err := c.b.CopyMessage(ctx, &bot.CopyMessageParams{
		ChatID:     toChatID,
		FromChatID: fromChatID,
		MessageID:  messageID,
	})
	return err
}

func (c *BotClient) AnswerCallback(ctx context.Context, callbackID, text string, showAlert bool) error {
	_, err := c.b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       showAlert,
	})
	return err
}

// IsTransient classifies an outbound-send failure as retryable: timeouts and
// network-level errors qualify, anything the API rejected outright does not.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
