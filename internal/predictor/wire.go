package predictor

import (
	"github.com/Alias1177/CryptoPredictor/internal/api/exchange"
	"github.com/Alias1177/CryptoPredictor/internal/config"
	"github.com/Alias1177/CryptoPredictor/internal/fallback"
	"github.com/Alias1177/CryptoPredictor/internal/instrumentation"
	"github.com/Alias1177/CryptoPredictor/internal/model"
	httpClient "github.com/Alias1177/CryptoPredictor/internal/platform/http"
	"github.com/Alias1177/CryptoPredictor/internal/signals"
)

// NewFromConfig wires the production providers. metrics may be nil.
func NewFromConfig(cfg *config.Config, metrics *instrumentation.Metrics) (*Service, error) {
	asset, err := exchange.AssetFor(cfg.Symbol)
	if err != nil {
		return nil, err
	}

	client := httpClient.NewClient(httpClient.ClientOptions{
		Timeout:        cfg.Timeout(),
		RequestsPerSec: cfg.RequestsPerSec,
	})

	prices := fallback.NewChain("price",
		exchange.PriceSources(exchange.DefaultPriceProviders(client, asset)),
		fallback.ValidatePositivePrice)

	history := fallback.NewChain("history",
		exchange.HistorySources(exchange.DefaultHistoryProviders(client, asset, cfg.CryptoCompareAPIKey), cfg.HistoryHours),
		exchange.ValidateHistory)

	aggregator := signals.NewAggregator(client, signals.Options{
		Symbol:            asset.Symbol,
		LunarCrushAPIKey:  cfg.LunarCrushAPIKey,
		CryptoCompareKey:  cfg.CryptoCompareAPIKey,
		WhaleThresholdBTC: cfg.WhaleThresholdBTC,
	})

	opts := Options{
		Timeframes:   cfg.Timeframes,
		HistoryHours: cfg.HistoryHours,
	}

	if metrics != nil {
		prices.WithObserver(metrics)
		history.WithObserver(metrics)
		aggregator.WithObserver(metrics)
		opts.Recorder = metrics
	}

	return NewService(prices, history, aggregator, opts), nil
}

var (
	_ PriceFetcher    = (*fallback.Chain[float64])(nil)
	_ HistoryFetcher  = (*fallback.Chain[*model.History])(nil)
	_ SignalCollector = (*signals.Aggregator)(nil)
)
