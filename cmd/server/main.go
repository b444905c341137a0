package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/CryptoPredictor/internal/config"
	"github.com/Alias1177/CryptoPredictor/internal/instrumentation"
	"github.com/Alias1177/CryptoPredictor/internal/platform/logging"
	"github.com/Alias1177/CryptoPredictor/internal/predictor"
	"github.com/Alias1177/CryptoPredictor/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := logging.SignalContext(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Setup(cfg.LogLevel)

	metrics := instrumentation.NewMetrics(prometheus.DefaultRegisterer)
	svc, err := predictor.NewFromConfig(cfg, metrics)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build predictor")
	}

	// One request may walk a whole fallback chain, so allow several provider timeouts.
	router := server.NewRouter(svc, server.Options{
		RequestTimeout: 6 * cfg.Timeout(),
		Gatherer:       prometheus.DefaultGatherer,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("symbol", cfg.Symbol).Msg("Starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
		return
	}
	log.Info().Msg("Server stopped")
}
