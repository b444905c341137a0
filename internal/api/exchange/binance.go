package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/Alias1177/CryptoPredictor/internal/fallback"
	"github.com/Alias1177/CryptoPredictor/internal/model"
	httpClient "github.com/Alias1177/CryptoPredictor/internal/platform/http"
)

const binanceBaseURL = "https://api.binance.com"

// Binance serves the ticker price and hourly klines.
type Binance struct {
	BaseURL string
	client  *httpClient.Client
	asset   Asset
}

func NewBinance(client *httpClient.Client, asset Asset) *Binance {
	return &Binance{BaseURL: binanceBaseURL, client: client, asset: asset}
}

func (b *Binance) Name() string { return "binance" }

func (b *Binance) SpotPrice(ctx context.Context) (float64, error) {
	var resp struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	endpoint := b.BaseURL + "/api/v3/ticker/price?symbol=" + url.QueryEscape(b.asset.BinancePair)
	if err := b.client.GetJSON(ctx, endpoint, nil, &resp); err != nil {
		return 0, err
	}
	return parsePrice(resp.Price)
}

// History reads 1h klines. Each kline is a heterogeneous array:
// [openTime, open, high, low, close, volume, closeTime, ...]
func (b *Binance) History(ctx context.Context, hours int) (*model.History, error) {
	q := url.Values{}
	q.Set("symbol", b.asset.BinancePair)
	q.Set("interval", "1h")
	q.Set("limit", fmt.Sprint(hours))

	var klines [][]json.RawMessage
	if err := b.client.GetJSON(ctx, b.BaseURL+"/api/v3/klines?"+q.Encode(), nil, &klines); err != nil {
		return nil, err
	}

	rows := make([]sample, 0, len(klines))
	for i, k := range klines {
		if len(k) < 6 {
			return nil, fmt.Errorf("%w: kline %d has %d fields", fallback.ErrMalformed, i, len(k))
		}
		var (
			openTime         int64
			closeStr, volume string
		)
		if err := json.Unmarshal(k[0], &openTime); err != nil {
			return nil, fmt.Errorf("%w: kline %d open time: %v", fallback.ErrMalformed, i, err)
		}
		if err := json.Unmarshal(k[4], &closeStr); err != nil {
			return nil, fmt.Errorf("%w: kline %d close: %v", fallback.ErrMalformed, i, err)
		}
		if err := json.Unmarshal(k[5], &volume); err != nil {
			return nil, fmt.Errorf("%w: kline %d volume: %v", fallback.ErrMalformed, i, err)
		}

		price, err := parsePrice(closeStr)
		if err != nil {
			return nil, err
		}
		vol, err := parsePrice(volume)
		if err != nil {
			return nil, err
		}
		rows = append(rows, sample{ts: openTime, price: price, volume: vol})
	}
	return buildHistory(b.Name(), rows, hours), nil
}
