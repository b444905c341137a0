package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/CryptoPredictor/internal/model"
)

// Menu buttons
const (
	ButtonPrice    = "Spot Price"
	ButtonAnalysis = "Run Analysis"
)

// Predictor is what the bot asks for prices and analyses.
type Predictor interface {
	GetSpotPrice(ctx context.Context) (*model.SpotPrice, error)
	GetAnalysis(ctx context.Context) (*model.Analysis, error)
}

// Bot answers chat commands and broadcasts periodic analyses.
type Bot struct {
	predictor Predictor
	telegram  *Telegram
	symbol    string
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewBot creates a bot. timeout bounds the work done for one command.
func NewBot(p Predictor, t *Telegram, symbol string, timeout time.Duration) *Bot {
	if timeout == 0 {
		timeout = time.Minute
	}
	return &Bot{
		predictor: p,
		telegram:  t,
		symbol:    symbol,
		timeout:   timeout,
		logger:    log.With().Str("component", "tgbot").Logger(),
	}
}

// HandleUpdate processes one incoming update. Only text messages are handled.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	message := update.Message
	chatID := message.Chat.ID

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	command := message.Command()
	if command == "" {
		command = buttonCommand(message.Text)
	}

	var err error
	switch command {
	case "start", "help":
		msg := markdown(chatID, b.welcome())
		msg.ReplyMarkup = mainMenuKeyboard()
		err = b.telegram.SendMessage(ctx, msg)
	case "price":
		err = b.replyPrice(ctx, chatID)
	case "analysis":
		err = b.replyAnalysis(ctx, chatID)
	default:
		err = b.telegram.Send(ctx, chatID, "Unknown command. Use /price or /analysis.")
	}

	if err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Str("command", command).Msg("failed to answer")
	}
}

// Broadcast sends a fresh analysis to chatID.
func (b *Bot) Broadcast(ctx context.Context, chatID int64) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	analysis, err := b.predictor.GetAnalysis(ctx)
	if err != nil {
		return fmt.Errorf("broadcast analysis: %w", err)
	}
	if err := b.telegram.Send(ctx, chatID, FormatAnalysis(b.symbol, analysis)); err != nil {
		return err
	}

	b.logger.Info().Int64("chat_id", chatID).Str("analysis_id", analysis.ID).Msg("broadcast sent")
	return nil
}

func (b *Bot) replyPrice(ctx context.Context, chatID int64) error {
	spot, err := b.predictor.GetSpotPrice(ctx)
	if err != nil {
		b.logger.Warn().Err(err).Msg("spot price unavailable")
		return b.telegram.Send(ctx, chatID, "Price data is unavailable right now, please try again later.")
	}
	return b.telegram.Send(ctx, chatID, FormatSpotPrice(b.symbol, spot))
}

func (b *Bot) replyAnalysis(ctx context.Context, chatID int64) error {
	if err := b.telegram.Send(ctx, chatID, fmt.Sprintf("Running analysis for %s...", b.symbol)); err != nil {
		return err
	}

	analysis, err := b.predictor.GetAnalysis(ctx)
	if err != nil {
		b.logger.Warn().Err(err).Msg("analysis unavailable")
		return b.telegram.Send(ctx, chatID, "Market history is unavailable right now, please try again later.")
	}
	return b.telegram.Send(ctx, chatID, FormatAnalysis(b.symbol, analysis))
}

func (b *Bot) welcome() string {
	return fmt.Sprintf("Welcome to the *%s* Predictor Bot!\n\n/price - current spot price\n/analysis - indicators and predictions", b.symbol)
}

func buttonCommand(text string) string {
	switch strings.TrimSpace(text) {
	case ButtonPrice:
		return "price"
	case ButtonAnalysis:
		return "analysis"
	}
	return ""
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonPrice),
			tgbotapi.NewKeyboardButton(ButtonAnalysis),
		),
	)
}
