// Package predictor runs the full pipeline behind the two public operations:
// GetSpotPrice and GetAnalysis.
package predictor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Alias1177/CryptoPredictor/internal/analysis/market"
	"github.com/Alias1177/CryptoPredictor/internal/analysis/prediction"
	"github.com/Alias1177/CryptoPredictor/internal/analysis/technical"
	"github.com/Alias1177/CryptoPredictor/internal/fallback"
	"github.com/Alias1177/CryptoPredictor/internal/model"
)

// PriceFetcher is satisfied by *fallback.Chain[float64].
type PriceFetcher interface {
	Fetch(ctx context.Context) (fallback.Result[float64], error)
}

// HistoryFetcher is satisfied by *fallback.Chain[*model.History].
type HistoryFetcher interface {
	Fetch(ctx context.Context) (fallback.Result[*model.History], error)
}

// SignalCollector is satisfied by *signals.Aggregator. It never fails.
type SignalCollector interface {
	Collect(ctx context.Context) model.Signals
}

// Recorder receives pipeline timings.
type Recorder interface {
	ObservePipeline(operation string, elapsed time.Duration, err error)
}

// Options tunes the analysis.
type Options struct {
	Timeframes   []model.Timeframe
	HistoryHours int
	Params       technical.Params
	Recorder     Recorder
}

// Service is stateless between calls and safe for concurrent use.
type Service struct {
	prices  PriceFetcher
	history HistoryFetcher
	signals SignalCollector

	timeframes   []model.Timeframe
	historyHours int
	params       technical.Params
	recorder     Recorder
	now          func() time.Time
}

func NewService(prices PriceFetcher, history HistoryFetcher, signals SignalCollector, opts Options) *Service {
	if len(opts.Timeframes) == 0 {
		opts.Timeframes = model.DefaultTimeframes()
	}
	if opts.Params == (technical.Params{}) {
		opts.Params = technical.DefaultParams()
	}
	return &Service{
		prices:       prices,
		history:      history,
		signals:      signals,
		timeframes:   opts.Timeframes,
		historyHours: opts.HistoryHours,
		params:       opts.Params,
		recorder:     opts.Recorder,
		now:          time.Now,
	}
}

// Timeframes returns the configured horizons in prediction order.
func (s *Service) Timeframes() []model.Timeframe {
	return append([]model.Timeframe(nil), s.timeframes...)
}

// GetSpotPrice returns the first valid price from the price chain. When every
// source fails the error matches fallback.ErrAllSourcesExhausted.
func (s *Service) GetSpotPrice(ctx context.Context) (_ *model.SpotPrice, err error) {
	start := time.Now()
	defer func() { s.record("spot_price", start, err) }()

	res, err := s.prices.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching spot price: %w", err)
	}

	return &model.SpotPrice{
		Price:     res.Value,
		Timestamp: s.now().UnixMilli(),
		Source:    res.Source,
	}, nil
}

// GetAnalysis fetches history and signals concurrently, computes indicators
// and produces one prediction per timeframe.
func (s *Service) GetAnalysis(ctx context.Context) (_ *model.Analysis, err error) {
	start := time.Now()
	defer func() { s.record("analysis", start, err) }()

	logger := log.With().Str("component", "predictor").Logger()

	var (
		history fallback.Result[*model.History]
		sig     model.Signals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		history, err = s.history.Fetch(gctx)
		return err
	})
	g.Go(func() error {
		sig = s.signals.Collect(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching price history: %w", err)
	}

	h := history.Value
	h.Tail(s.historyHours)

	current := h.Latest().Price
	indicators := technical.CalculateAllIndicators(h, s.params)
	closes := h.Prices.Closes()

	now := s.now()
	predictions := prediction.GeneratePredictions(prediction.Inputs{
		CurrentPrice:  current,
		ATR:           indicators.ATR,
		Indicators:    indicators,
		Sentiment:     sig.Sentiment,
		NewsSentiment: sig.NewsSentiment,
	}, s.timeframes, now)

	analysis := &model.Analysis{
		ID:            uuid.NewString(),
		CurrentPrice:  current,
		HistorySource: history.Source,
		Predictions:   predictions,
		Sentiment:     sig.Sentiment,
		NewsSentiment: sig.NewsSentiment,
		Indicators:    indicators,
		Onchain:       sig.Onchain,
		MarketHours:   sig.MarketHours,
		Regime:        market.ClassifyRegime(closes),
		Anomaly:       market.DetectAnomalies(closes, h.Volumes.Values()),
		Timestamp:     now.UTC(),
	}

	logger.Info().
		Str("analysis_id", analysis.ID).
		Str("history_source", history.Source).
		Int("samples", len(h.Prices)).
		Float64("price", current).
		Float64("rsi", indicators.RSI).
		Str("regime", string(analysis.Regime.Type)).
		Bool("anomaly", analysis.Anomaly.Detected).
		Msg("analysis complete")

	return analysis, nil
}

func (s *Service) record(operation string, start time.Time, err error) {
	if s.recorder != nil {
		s.recorder.ObservePipeline(operation, time.Since(start), err)
	}
}
