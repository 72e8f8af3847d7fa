// Package telegram narrows the bot transport to the calls this system makes.
// Handlers and services depend on Client, not on the concrete library, which
// keeps them testable with in-memory fakes.
package telegram

import (
	"context"
	"io"

	"github.com/go-telegram/bot/models"
)

// ChatAction mirrors the transport's typing/uploading indicators.
type ChatAction = models.ChatAction

const (
	ActionUploadDocument = models.ChatActionUploadDocument
	ActionUploadVideo    = models.ChatActionUploadVideo
)

// Client is the outbound surface of the bot transport.
type Client interface {
	// SendMessage sends text with an optional keyboard and returns the new
	// message's ID (used later for placeholder edits).
	SendMessage(ctx context.Context, chatID int64, text string, markup models.ReplyMarkup) (int, error)

	// EditMessage rewrites a previously sent message in place.
	EditMessage(ctx context.Context, chatID int64, messageID int, text string, markup models.ReplyMarkup) error

	// SendDocument uploads a file as a document attachment.
	SendDocument(ctx context.Context, chatID int64, filename string, data io.Reader, caption string) error

	// SendVideo uploads a file as a streaming video.
	SendVideo(ctx context.Context, chatID int64, filename string, data io.Reader, caption string) error

	// SendChatAction shows an activity indicator in the chat.
	SendChatAction(ctx context.Context, chatID int64, action ChatAction) error

	// CopyMessage relays an existing message to another chat without the
	// forward header.
	CopyMessage(ctx context.Context, toChatID, fromChatID int64, messageID int) error

	// AnswerCallback acknowledges a button press, optionally with an alert.
	AnswerCallback(ctx context.Context, callbackID, text string, showAlert bool) error
}
