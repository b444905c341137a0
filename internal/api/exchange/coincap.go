package exchange

import (
	"context"

	httpClient "github.com/Alias1177/CryptoPredictor/internal/platform/http"
)

const coinCapBaseURL = "https://api.coincap.io"

type CoinCap struct {
	BaseURL string
	client  *httpClient.Client
	asset   Asset
}

func NewCoinCap(client *httpClient.Client, asset Asset) *CoinCap {
	return &CoinCap{BaseURL: coinCapBaseURL, client: client, asset: asset}
}

func (c *CoinCap) Name() string { return "coincap" }

func (c *CoinCap) SpotPrice(ctx context.Context) (float64, error) {
	var resp struct {
		Data struct {
			PriceUsd string `json:"priceUsd"`
		} `json:"data"`
	}
	if err := c.client.GetJSON(ctx, c.BaseURL+"/v2/assets/"+c.asset.CoinCapID, nil, &resp); err != nil {
		return 0, err
	}
	return parsePrice(resp.Data.PriceUsd)
}
