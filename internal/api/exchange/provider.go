// Package exchange normalizes public market data providers into spot prices
// and hourly price/volume histories.
package exchange

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Alias1177/CryptoPredictor/internal/fallback"
	"github.com/Alias1177/CryptoPredictor/internal/model"
	httpClient "github.com/Alias1177/CryptoPredictor/internal/platform/http"
)

// PriceProvider fetches the current spot price
type PriceProvider interface {
	Name() string
	SpotPrice(ctx context.Context) (float64, error)
}

// HistoryProvider fetches the most recent hourly samples
type HistoryProvider interface {
	Name() string
	History(ctx context.Context, hours int) (*model.History, error)
}

// Asset maps our symbol onto each provider's identifiers
type Asset struct {
	Symbol       string
	CoinGeckoID  string
	CoinCapID    string
	BinancePair  string
	CoinbasePair string
	KrakenPair   string
	BitstampPair string
}

var knownAssets = map[string]Asset{
	"BTC": {
		Symbol:       "BTC",
		CoinGeckoID:  "bitcoin",
		CoinCapID:    "bitcoin",
		BinancePair:  "BTCUSDT",
		CoinbasePair: "BTC-USD",
		KrakenPair:   "XBTUSD",
		BitstampPair: "btcusd",
	},
	"ETH": {
		Symbol:       "ETH",
		CoinGeckoID:  "ethereum",
		CoinCapID:    "ethereum",
		BinancePair:  "ETHUSDT",
		CoinbasePair: "ETH-USD",
		KrakenPair:   "ETHUSD",
		BitstampPair: "ethusd",
	},
}

// AssetFor returns provider identifiers for a supported symbol.
func AssetFor(symbol string) (Asset, error) {
	a, ok := knownAssets[strings.ToUpper(symbol)]
	if !ok {
		return Asset{}, fmt.Errorf("unsupported symbol %q", symbol)
	}
	return a, nil
}

// DefaultPriceProviders returns the spot price providers in fallback order.
func DefaultPriceProviders(client *httpClient.Client, asset Asset) []PriceProvider {
	return []PriceProvider{
		NewCoinGecko(client, asset),
		NewBinance(client, asset),
		NewCoinbase(client, asset),
		NewKraken(client, asset),
		NewBitstamp(client, asset),
		NewCoinCap(client, asset),
	}
}

// DefaultHistoryProviders returns the history providers in fallback order.
func DefaultHistoryProviders(client *httpClient.Client, asset Asset, cryptoCompareKey string) []HistoryProvider {
	return []HistoryProvider{
		NewCoinGecko(client, asset),
		NewBinance(client, asset),
		NewCryptoCompare(client, asset, cryptoCompareKey),
	}
}

// PriceSources wraps providers for a fallback chain.
func PriceSources(providers []PriceProvider) []fallback.Source[float64] {
	sources := make([]fallback.Source[float64], len(providers))
	for i, p := range providers {
		sources[i] = fallback.SourceFunc[float64]{Label: p.Name(), Fn: p.SpotPrice}
	}
	return sources
}

// HistorySources wraps providers for a fallback chain.
func HistorySources(providers []HistoryProvider, hours int) []fallback.Source[*model.History] {
	sources := make([]fallback.Source[*model.History], len(providers))
	for i, p := range providers {
		p := p
		sources[i] = fallback.SourceFunc[*model.History]{
			Label: p.Name(),
			Fn: func(ctx context.Context) (*model.History, error) {
				return p.History(ctx, hours)
			},
		}
	}
	return sources
}

// ValidateHistory is the fallback validator for history chains.
func ValidateHistory(h *model.History) error {
	if h == nil {
		return fmt.Errorf("%w: empty history", fallback.ErrMalformed)
	}
	return h.Validate()
}

// sample is an intermediate row before it becomes aligned series
type sample struct {
	ts     int64
	price  float64
	volume float64
}

// buildHistory sorts rows oldest first, keeps the last `hours` and splits
// them into aligned series.
func buildHistory(source string, rows []sample, hours int) *model.History {
	sort.Slice(rows, func(i, j int) bool { return rows[i].ts < rows[j].ts })
	if hours > 0 && len(rows) > hours {
		rows = rows[len(rows)-hours:]
	}

	h := &model.History{
		Source:  source,
		Prices:  make(model.PriceSeries, 0, len(rows)),
		Volumes: make(model.VolumeSeries, 0, len(rows)),
	}
	for _, r := range rows {
		h.Prices = append(h.Prices, model.PricePoint{Timestamp: r.ts, Price: r.price})
		h.Volumes = append(h.Volumes, model.VolumePoint{Timestamp: r.ts, Volume: r.volume})
	}
	return h
}

func parsePrice(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: price %q: %v", fallback.ErrMalformed, raw, err)
	}
	return v, nil
}
