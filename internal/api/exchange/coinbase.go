package exchange

import (
	"context"

	httpClient "github.com/Alias1177/CryptoPredictor/internal/platform/http"
)

const coinbaseBaseURL = "https://api.coinbase.com"

type Coinbase struct {
	BaseURL string
	client  *httpClient.Client
	asset   Asset
}

func NewCoinbase(client *httpClient.Client, asset Asset) *Coinbase {
	return &Coinbase{BaseURL: coinbaseBaseURL, client: client, asset: asset}
}

func (c *Coinbase) Name() string { return "coinbase" }

func (c *Coinbase) SpotPrice(ctx context.Context) (float64, error) {
	var resp struct {
		Data struct {
			Amount   string `json:"amount"`
			Currency string `json:"currency"`
		} `json:"data"`
	}
	if err := c.client.GetJSON(ctx, c.BaseURL+"/v2/prices/"+c.asset.CoinbasePair+"/spot", nil, &resp); err != nil {
		return 0, err
	}
	return parsePrice(resp.Data.Amount)
}
