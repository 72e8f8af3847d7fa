// Package delivery sends local material files to a chat. Outbound large
// media over the bot transport is empirically flaky, so this is the one
// place in the system with a retry policy.
package delivery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/ttradingco/eventbot/internal/logging"
	"github.com/ttradingco/eventbot/internal/menu"
	"github.com/ttradingco/eventbot/internal/telegram"
)

// Policy bounds the retry loop: total attempts, the base of the exponential
// backoff (attempt n waits base·2^(n-1)), and the predicate separating
// transient transport failures from permanent ones.
type Policy struct {
	MaxAttempts int
	BaseBackoff time.Duration
	Retryable   func(error) bool
}

// DefaultPolicy matches the deployed behavior: 3 attempts, 2s/4s waits,
// retry on timeouts and network errors only.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseBackoff: 2 * time.Second,
		Retryable:   telegram.IsTransient,
	}
}

var videoExtensions = map[string]bool{
	".mp4": true,
	".mov": true,
	".m4v": true,
}

// Sender delivers one file per call, managing the placeholder progress
// message itself.
type Sender struct {
	client telegram.Client
	log    logging.Logger
	policy Policy
}

func NewSender(client telegram.Client, log logging.Logger, policy Policy) *Sender {
	return &Sender{client: client, log: log, policy: policy}
}

// Send delivers the file at path to chatID under the given display title.
// A missing file is reported to the user and makes zero transmission
// attempts. The returned error is for logging; every outcome has already
// been surfaced in the chat.
func (s *Sender) Send(ctx context.Context, chatID int64, path, title string) error {
	if _, err := os.Stat(path); err != nil {
		_, sendErr := s.client.SendMessage(ctx, chatID, fmt.Sprintf("⚠️ No encuentro el archivo: %s", title), nil)
		if sendErr != nil {
			return sendErr
		}
		return nil
	}

	isVideo := videoExtensions[strings.ToLower(filepath.Ext(path))]

	action := telegram.ActionUploadDocument
	waitText := "⏳ Preparando y enviando el archivo…"
	if isVideo {
		action = telegram.ActionUploadVideo
		waitText = "⏳ Preparando y enviando el video… puede tardar unos minutos."
	}

	if err := s.client.SendChatAction(ctx, chatID, action); err != nil {
		s.log.Warn(ctx, "chat action failed", "error", err)
	}
	placeholderID, err := s.client.SendMessage(ctx, chatID, waitText, nil)
	if err != nil {
		return fmt.Errorf("placeholder send: %w", err)
	}

	attempt := 0
	backoff := retry.WithMaxRetries(uint64(s.policy.MaxAttempts-1), retry.NewExponential(s.policy.BaseBackoff))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := s.transmit(ctx, chatID, path, title, isVideo); err != nil {
			if s.policy.Retryable(err) && attempt < s.policy.MaxAttempts {
				wait := s.policy.BaseBackoff << (attempt - 1)
				s.editPlaceholder(ctx, chatID, placeholderID,
					fmt.Sprintf("⚠️ Conexión inestable, reintentando en %s… (intento %d/%d)", wait, attempt, s.policy.MaxAttempts))
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})

	if err != nil {
		if s.policy.Retryable(err) {
			// Retries exhausted; the raw error detail is deliberately shown
			// so attendees can report something actionable.
			s.editPlaceholder(ctx, chatID, placeholderID, fmt.Sprintf("❌ No se pudo enviar el archivo. Detalle: %v", err))
		} else {
			s.editPlaceholder(ctx, chatID, placeholderID, fmt.Sprintf("❌ Error al enviar el archivo: %v", err))
		}
		s.log.Error(ctx, "file delivery failed", "path", path, "attempts", attempt, "error", err)
		return err
	}

	s.editPlaceholder(ctx, chatID, placeholderID, "✅ Archivo enviado.")
	if _, err := s.client.SendMessage(ctx, chatID, "¿Qué deseas hacer ahora?", menu.Main()); err != nil {
		s.log.Warn(ctx, "post-delivery menu render failed", "error", err)
	}
	return nil
}

// transmit performs one upload attempt, reopening the file each time so a
// half-consumed reader from a failed attempt is never reused.
func (s *Sender) transmit(ctx context.Context, chatID int64, path, title string, isVideo bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if isVideo {
		return s.client.SendVideo(ctx, chatID, filepath.Base(path), f, title)
	}
	return s.client.SendDocument(ctx, chatID, filepath.Base(path), f, title)
}

func (s *Sender) editPlaceholder(ctx context.Context, chatID int64, messageID int, text string) {
	if err := s.client.EditMessage(ctx, chatID, messageID, text, nil); err != nil {
		s.log.Warn(ctx, "placeholder edit failed", "error", err)
	}
}
