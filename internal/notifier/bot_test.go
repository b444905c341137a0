package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/CryptoPredictor/internal/model"
)

type fakePredictor struct {
	spot        *model.SpotPrice
	analysis    *model.Analysis
	err         error
	analysisRun int
}

func (f *fakePredictor) GetSpotPrice(ctx context.Context) (*model.SpotPrice, error) {
	return f.spot, f.err
}

func (f *fakePredictor) GetAnalysis(ctx context.Context) (*model.Analysis, error) {
	f.analysisRun++
	return f.analysis, f.err
}

func commandUpdate(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
	}}
}

func textUpdate(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}, Text: text}}
}

func newTestBot(p Predictor, sender *fakeBot) *Bot {
	return NewBot(p, fastTelegram(sender), "BTC", time.Second)
}

func TestHandleStart(t *testing.T) {
	sender := &fakeBot{}
	newTestBot(&fakePredictor{}, sender).HandleUpdate(context.Background(), commandUpdate(7, "/start"))

	require.Len(t, sender.sent, 1)
	require.Equal(t, int64(7), sender.sent[0].ChatID)
	require.Contains(t, sender.sent[0].Text, "/analysis")
	require.IsType(t, tgbotapi.ReplyKeyboardMarkup{}, sender.sent[0].ReplyMarkup)
}

func TestHandlePrice(t *testing.T) {
	sender := &fakeBot{}
	p := &fakePredictor{spot: &model.SpotPrice{Price: 50000, Timestamp: 1_700_000_000_000, Source: "coingecko"}}

	newTestBot(p, sender).HandleUpdate(context.Background(), commandUpdate(7, "/price"))

	require.Len(t, sender.sent, 1)
	require.Contains(t, sender.sent[0].Text, "$50000.00")
}

func TestHandleAnalysisButton(t *testing.T) {
	sender := &fakeBot{}
	p := &fakePredictor{analysis: &model.Analysis{
		ID:           "abc",
		CurrentPrice: 50000,
		Predictions:  []model.Prediction{{Timeframe: "1H", Direction: model.DirectionUp, TargetPrice: 51000, Confidence: 70}},
	}}

	newTestBot(p, sender).HandleUpdate(context.Background(), textUpdate(7, ButtonAnalysis))

	require.Equal(t, 1, p.analysisRun)
	require.Len(t, sender.sent, 2)
	require.Contains(t, sender.sent[0].Text, "Running analysis")
	require.Contains(t, sender.sent[1].Text, "*1H*")
}

func TestHandlePredictorFailure(t *testing.T) {
	sender := &fakeBot{}
	p := &fakePredictor{err: errors.New("all sources exhausted")}

	newTestBot(p, sender).HandleUpdate(context.Background(), commandUpdate(7, "/price"))

	require.Len(t, sender.sent, 1)
	require.Contains(t, sender.sent[0].Text, "unavailable")
	require.NotContains(t, sender.sent[0].Text, "$")
}

func TestHandleUnknownAndNonMessage(t *testing.T) {
	sender := &fakeBot{}
	bot := newTestBot(&fakePredictor{}, sender)

	bot.HandleUpdate(context.Background(), tgbotapi.Update{})
	require.Empty(t, sender.sent)

	bot.HandleUpdate(context.Background(), textUpdate(7, "moon?"))
	require.Len(t, sender.sent, 1)
	require.Contains(t, sender.sent[0].Text, "Unknown command")
}

func TestBroadcast(t *testing.T) {
	sender := &fakeBot{}
	p := &fakePredictor{analysis: &model.Analysis{ID: "abc", CurrentPrice: 50000}}

	require.NoError(t, newTestBot(p, sender).Broadcast(context.Background(), -100123))
	require.Len(t, sender.sent, 1)
	require.Equal(t, int64(-100123), sender.sent[0].ChatID)

	p.err = errors.New("history exhausted")
	require.Error(t, newTestBot(p, sender).Broadcast(context.Background(), -100123))
	require.Len(t, sender.sent, 1)
}
