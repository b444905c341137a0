// Package notifier formats analyses for Telegram and delivers them.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Sender is satisfied by *tgbotapi.BotAPI.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram delivers Markdown messages, retrying transient failures.
type Telegram struct {
	InitialInterval time.Duration
	MaxElapsedTime  time.Duration

	bot    Sender
	logger zerolog.Logger
}

func NewTelegram(bot Sender) *Telegram {
	return &Telegram{
		InitialInterval: 500 * time.Millisecond,
		MaxElapsedTime:  30 * time.Second,
		bot:             bot,
		logger:          log.With().Str("component", "telegram").Logger(),
	}
}

// Send delivers Markdown text to chatID.
func (t *Telegram) Send(ctx context.Context, chatID int64, text string) error {
	return t.SendMessage(ctx, markdown(chatID, text))
}

// SendMessage delivers a prepared message. Client errors other than 429 are not retried.
func (t *Telegram) SendMessage(ctx context.Context, msg tgbotapi.MessageConfig) error {
	chatID := msg.ChatID
	attempt := 0
	operation := func() error {
		attempt++
		_, err := t.bot.Send(msg)
		if err == nil {
			return nil
		}

		if isClientError(err) {
			return backoff.Permanent(err)
		}
		t.logger.Warn().Err(err).Int64("chat_id", chatID).Int("attempt", attempt).Msg("send failed, retrying")
		return err
	}

	if err := backoff.Retry(operation, backoff.WithContext(t.backOff(), ctx)); err != nil {
		return fmt.Errorf("sending to chat %d: %w", chatID, err)
	}
	return nil
}

func markdown(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	return msg
}

func (t *Telegram) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = t.InitialInterval
	b.MaxElapsedTime = t.MaxElapsedTime
	return b
}

// Connect authorizes the bot, retrying while Telegram is unreachable.
func Connect(ctx context.Context, token string) (*tgbotapi.BotAPI, error) {
	if token == "" {
		return nil, errors.New("telegram bot token is empty")
	}

	var bot *tgbotapi.BotAPI
	operation := func() error {
		var err error
		bot, err = tgbotapi.NewBotAPI(token)
		if isClientError(err) {
			return backoff.Permanent(err)
		}
		if err != nil {
			log.Warn().Err(err).Str("component", "telegram").Msg("authorization failed, retrying")
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = time.Minute
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	return bot, nil
}

// isClientError reports a Telegram API rejection that retrying cannot fix.
func isClientError(err error) bool {
	var tgErr *tgbotapi.Error
	if !errors.As(err, &tgErr) {
		return false
	}
	return tgErr.Code >= 400 && tgErr.Code < 500 && tgErr.Code != http.StatusTooManyRequests
}
