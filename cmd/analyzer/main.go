package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/CryptoPredictor/internal/config"
	"github.com/Alias1177/CryptoPredictor/internal/model"
	"github.com/Alias1177/CryptoPredictor/internal/platform/logging"
	"github.com/Alias1177/CryptoPredictor/internal/predictor"
)

func main() {
	// Setup context with cancellation for graceful shutdown
	ctx, cancel := logging.SignalContext(context.Background())
	defer cancel()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// 2. Configure logging
	logging.Setup(cfg.LogLevel)
	log.Info().Msg("Starting Crypto Analyzer")
	printConfig(cfg)

	// 3. Wire providers
	svc, err := predictor.NewFromConfig(cfg, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build predictor")
	}

	// 4. Spot price
	spot, err := svc.GetSpotPrice(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch spot price")
	}
	printSpotPrice(cfg.Symbol, spot)

	// 5. Full analysis
	analysis, err := svc.GetAnalysis(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Analysis failed")
	}
	printMarketAnalysis(analysis)
	printPredictions(analysis.Predictions)
}

// printConfig outputs the current configuration
func printConfig(cfg *config.Config) {
	labels := make([]string, len(cfg.Timeframes))
	for i, tf := range cfg.Timeframes {
		labels[i] = tf.Label
	}

	log.Info().
		Str("Symbol", cfg.Symbol).
		Int("RequestTimeout", cfg.RequestTimeout).
		Int("RequestsPerSec", cfg.RequestsPerSec).
		Int("HistoryHours", cfg.HistoryHours).
		Strs("Timeframes", labels).
		Bool("LunarCrush", cfg.LunarCrushAPIKey != "").
		Float64("WhaleThresholdBTC", cfg.WhaleThresholdBTC).
		Msg("Configuration loaded")
}

func printSpotPrice(symbol string, spot *model.SpotPrice) {
	fmt.Println("\n===== SPOT PRICE =====")
	fmt.Printf("%s/USD: %.2f (source: %s, at %s)\n",
		symbol, spot.Price, spot.Source, time.UnixMilli(spot.Timestamp).UTC().Format(time.RFC3339))
}

// printMarketAnalysis outputs indicators and signals
func printMarketAnalysis(a *model.Analysis) {
	fmt.Println("\n===== MARKET ANALYSIS =====")
	fmt.Printf("Current Price: %.2f (history: %s)\n", a.CurrentPrice, a.HistorySource)

	ind := a.Indicators
	fmt.Printf("\nKey Indicators:\n")
	fmt.Printf("RSI: %.2f | MACD: %.2f | ATR: %.2f | Volume ratio: %.2f\n",
		ind.RSI, ind.MACD, ind.ATR, ind.VolumeRatio)
	fmt.Printf("Bollinger Bands: Upper: %.2f, Middle: %.2f, Lower: %.2f\n",
		ind.Bollinger.Upper, ind.Bollinger.Middle, ind.Bollinger.Lower)
	fmt.Printf("Support: %.2f / %.2f | Resistance: %.2f / %.2f\n",
		ind.SupportResistance.Support, ind.SupportResistance.Support2,
		ind.SupportResistance.Resistance2, ind.SupportResistance.Resistance)

	fmt.Printf("\nSentiment: reddit %.2f, lunarcrush %.2f, news %.2f\n",
		a.Sentiment.Reddit, a.Sentiment.LunarCrush, a.NewsSentiment)
	fmt.Printf("Fear & Greed: %.2f | Mempool: %d (%s) | Whales: %d | Tx volume 24h: %.0f\n",
		a.Onchain.FearGreedIndex, a.Onchain.MempoolSize, a.Onchain.NetworkHealth,
		a.Onchain.WhaleTransactions, a.Onchain.TxVolume24h)

	fmt.Printf("\nMarket Regime: %s (Strength: %.2f)\n", a.Regime.Type, a.Regime.Strength)
	fmt.Printf("Direction: %s | Volatility: %s | Momentum: %.2f\n",
		a.Regime.Direction, a.Regime.Volatility, a.Regime.Momentum)
	if a.Anomaly.Detected {
		fmt.Printf("\nANOMALY DETECTED: %s (Score: %.2f)\n", strings.Join(a.Anomaly.Kinds, ", "), a.Anomaly.Score)
		for _, d := range a.Anomaly.Details {
			fmt.Printf("- %s\n", d)
		}
	}

	var sessions []string
	for _, r := range []struct {
		name   string
		status model.SessionStatus
	}{
		{"asia", a.MarketHours.Asia},
		{"europe", a.MarketHours.Europe},
		{"america", a.MarketHours.America},
	} {
		switch {
		case r.status.Peak:
			sessions = append(sessions, r.name+" (peak)")
		case r.status.Active:
			sessions = append(sessions, r.name)
		}
	}
	if len(sessions) == 0 {
		sessions = []string{"none"}
	}
	fmt.Printf("Open sessions: %s\n", strings.Join(sessions, ", "))
}

// printPredictions outputs one block per timeframe
func printPredictions(predictions []model.Prediction) {
	fmt.Println("\n===== PREDICTIONS =====")
	for _, p := range predictions {
		fmt.Printf("\n[%s] %s -> %.2f by %s | Confidence: %.1f%%\n",
			p.Timeframe, strings.ToUpper(string(p.Direction)), p.TargetPrice,
			p.TargetTime.Format(time.RFC3339), p.Confidence)

		rr := "undefined"
		if p.RiskRewardDefined {
			rr = fmt.Sprintf("%.2f", p.RiskRewardRatio)
		}
		fmt.Printf("Stop loss: %.2f | Take profit: %.2f | R/R: %s\n", p.StopLoss, p.TakeProfit, rr)

		for _, reason := range p.Reasoning {
			fmt.Printf("- %s\n", reason)
		}
	}
	fmt.Println()
}
