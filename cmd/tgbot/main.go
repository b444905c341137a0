package main

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/CryptoPredictor/internal/config"
	"github.com/Alias1177/CryptoPredictor/internal/instrumentation"
	"github.com/Alias1177/CryptoPredictor/internal/notifier"
	"github.com/Alias1177/CryptoPredictor/internal/platform/logging"
	"github.com/Alias1177/CryptoPredictor/internal/predictor"
)

func main() {
	ctx, cancel := logging.SignalContext(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Setup(cfg.LogLevel)

	svc, err := predictor.NewFromConfig(cfg, instrumentation.NewMetrics(prometheus.DefaultRegisterer))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build predictor")
	}

	api, err := notifier.Connect(ctx, cfg.TelegramBotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}
	log.Info().Str("username", api.Self.UserName).Msg("Authorized on Telegram")

	bot := notifier.NewBot(svc, notifier.NewTelegram(api), cfg.Symbol, 6*cfg.Timeout())

	// Scheduled broadcast to a channel, if configured
	if cfg.TelegramChatID != 0 {
		scheduler := cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
		_, err := scheduler.AddFunc(cfg.BroadcastCron, func() {
			if err := bot.Broadcast(ctx, cfg.TelegramChatID); err != nil {
				log.Error().Err(err).Int64("chat_id", cfg.TelegramChatID).Msg("Broadcast failed")
			}
		})
		if err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.BroadcastCron).Msg("Invalid broadcast schedule")
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
		log.Info().Str("schedule", cfg.BroadcastCron).Int64("chat_id", cfg.TelegramChatID).Msg("Broadcast scheduled")
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			api.StopReceivingUpdates()
			log.Info().Msg("Bot stopped")
			return
		case update := <-updates:
			bot.HandleUpdate(ctx, update)
		}
	}
}
