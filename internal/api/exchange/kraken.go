package exchange

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Alias1177/CryptoPredictor/internal/fallback"
	httpClient "github.com/Alias1177/CryptoPredictor/internal/platform/http"
)

const krakenBaseURL = "https://api.kraken.com"

type Kraken struct {
	BaseURL string
	client  *httpClient.Client
	asset   Asset
}

func NewKraken(client *httpClient.Client, asset Asset) *Kraken {
	return &Kraken{BaseURL: krakenBaseURL, client: client, asset: asset}
}

func (k *Kraken) Name() string { return "kraken" }

type krakenTicker struct {
	Error  []string `json:"error"`
	Result map[string]struct {
		// c = last trade closed [price, lot volume]
		C []string `json:"c"`
	} `json:"result"`
}

// SpotPrice returns the last trade price. Kraken reports application
// errors with a 200 status and a non-empty error array.
func (k *Kraken) SpotPrice(ctx context.Context) (float64, error) {
	var resp krakenTicker
	endpoint := k.BaseURL + "/0/public/Ticker?pair=" + url.QueryEscape(k.asset.KrakenPair)
	if err := k.client.GetJSON(ctx, endpoint, nil, &resp); err != nil {
		return 0, err
	}
	if len(resp.Error) > 0 {
		return 0, fmt.Errorf("kraken: %s", strings.Join(resp.Error, ", "))
	}
	// result is keyed by Kraken's own pair name (XXBTZUSD for XBTUSD)
	for _, ticker := range resp.Result {
		if len(ticker.C) == 0 {
			break
		}
		return parsePrice(ticker.C[0])
	}
	return 0, fmt.Errorf("%w: empty ticker result", fallback.ErrMalformed)
}
