package exchange

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Alias1177/CryptoPredictor/internal/fallback"
	"github.com/Alias1177/CryptoPredictor/internal/model"
	httpClient "github.com/Alias1177/CryptoPredictor/internal/platform/http"
)

const coinGeckoBaseURL = "https://api.coingecko.com"

// CoinGecko serves both the spot price and the hourly market chart.
type CoinGecko struct {
	BaseURL string
	client  *httpClient.Client
	asset   Asset
}

func NewCoinGecko(client *httpClient.Client, asset Asset) *CoinGecko {
	return &CoinGecko{BaseURL: coinGeckoBaseURL, client: client, asset: asset}
}

func (c *CoinGecko) Name() string { return "coingecko" }

func (c *CoinGecko) SpotPrice(ctx context.Context) (float64, error) {
	q := url.Values{}
	q.Set("ids", c.asset.CoinGeckoID)
	q.Set("vs_currencies", "usd")

	var resp map[string]map[string]float64
	if err := c.client.GetJSON(ctx, c.BaseURL+"/api/v3/simple/price?"+q.Encode(), nil, &resp); err != nil {
		return 0, err
	}
	price, ok := resp[c.asset.CoinGeckoID]["usd"]
	if !ok {
		return 0, fmt.Errorf("%w: no usd price for %s", fallback.ErrMalformed, c.asset.CoinGeckoID)
	}
	return price, nil
}

type marketChart struct {
	Prices       [][2]float64 `json:"prices"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}

// History uses the market chart endpoint which returns hourly granularity
// for ranges between 2 and 90 days.
func (c *CoinGecko) History(ctx context.Context, hours int) (*model.History, error) {
	days := (hours + 23) / 24
	if days < 2 {
		days = 2
	}
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("days", fmt.Sprint(days))

	var resp marketChart
	endpoint := fmt.Sprintf("%s/api/v3/coins/%s/market_chart?%s", c.BaseURL, c.asset.CoinGeckoID, q.Encode())
	if err := c.client.GetJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Prices) != len(resp.TotalVolumes) {
		return nil, fmt.Errorf("%w: %d prices vs %d volumes", model.ErrHistoryMisaligned, len(resp.Prices), len(resp.TotalVolumes))
	}

	rows := make([]sample, len(resp.Prices))
	for i, p := range resp.Prices {
		rows[i] = sample{ts: int64(p[0]), price: p[1], volume: resp.TotalVolumes[i][1]}
	}
	return buildHistory(c.Name(), rows, hours), nil
}
