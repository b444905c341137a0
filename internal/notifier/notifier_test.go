package notifier

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/CryptoPredictor/internal/model"
)

type fakeBot struct {
	errs  []error
	calls int
	sent  []tgbotapi.MessageConfig
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.calls++
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return tgbotapi.Message{}, err
	}
	return tgbotapi.Message{MessageID: f.calls}, nil
}

func fastTelegram(bot Sender) *Telegram {
	t := NewTelegram(bot)
	t.InitialInterval = time.Millisecond
	t.MaxElapsedTime = time.Second
	return t
}

func TestSendRetriesTransientErrors(t *testing.T) {
	bot := &fakeBot{errs: []error{errors.New("connection reset"), &tgbotapi.Error{Code: 429, Message: "Too Many Requests"}}}

	err := fastTelegram(bot).Send(context.Background(), 42, "*hello*")
	require.NoError(t, err)
	require.Equal(t, 3, bot.calls)
	require.Equal(t, int64(42), bot.sent[0].ChatID)
	require.Equal(t, tgbotapi.ModeMarkdown, bot.sent[0].ParseMode)
}

func TestSendDoesNotRetryClientErrors(t *testing.T) {
	bot := &fakeBot{errs: []error{&tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}}}

	err := fastTelegram(bot).Send(context.Background(), 42, "hi")
	require.ErrorContains(t, err, "blocked")
	require.Equal(t, 1, bot.calls)
}

func TestSendStopsOnCancelledContext(t *testing.T) {
	bot := &fakeBot{errs: []error{errors.New("down"), errors.New("down"), errors.New("down")}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fastTelegram(bot).Send(ctx, 1, "hi")
	require.Error(t, err)
	require.LessOrEqual(t, bot.calls, 1)
}

func TestConnectRequiresToken(t *testing.T) {
	_, err := Connect(context.Background(), "")
	require.Error(t, err)
}

func TestFormatSpotPrice(t *testing.T) {
	msg := FormatSpotPrice("BTC", &model.SpotPrice{Price: 50123.456, Timestamp: 1_700_000_000_000, Source: "kraken"})
	require.Contains(t, msg, "$50123.46")
	require.Contains(t, msg, "kraken")
	require.Contains(t, msg, "22:13:20 UTC")
}

func TestFormatAnalysis(t *testing.T) {
	a := &model.Analysis{
		CurrentPrice: 50000,
		Predictions: []model.Prediction{
			{
				Timeframe: "1H", Direction: model.DirectionDown, TargetPrice: 48500, Confidence: 85,
				Reasoning: []string{"RSI overbought", "Price at resistance"},
				StopLoss:  51000, TakeProfit: 48500, RiskRewardRatio: 1.5, RiskRewardDefined: true,
			},
			{Timeframe: "4H", Direction: model.DirectionNeutral, TargetPrice: 50000, Confidence: 50, StopLoss: 50000},
		},
		Onchain:     model.OnchainSnapshot{MempoolSize: 1200, NetworkHealth: model.NetworkGood},
		MarketHours: model.MarketSessionState{Europe: model.SessionStatus{Active: true, Peak: true}, America: model.SessionStatus{Active: true}},
	}

	msg := FormatAnalysis("BTC", a)
	require.Contains(t, msg, "*1H* 🔽 down → $48500.00 (85.0%)")
	require.Contains(t, msg, "R/R: 1.50")
	require.Contains(t, msg, "R/R: n/a")
	require.Contains(t, msg, "Factors: RSI overbought, Price at resistance")
	require.Contains(t, msg, "Mempool: 1200 (good)")
	require.True(t, strings.HasSuffix(msg, "Europe (peak), America"))
}
