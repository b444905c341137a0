package exchange

import (
	"context"

	httpClient "github.com/Alias1177/CryptoPredictor/internal/platform/http"
)

const bitstampBaseURL = "https://www.bitstamp.net"

type Bitstamp struct {
	BaseURL string
	client  *httpClient.Client
	asset   Asset
}

func NewBitstamp(client *httpClient.Client, asset Asset) *Bitstamp {
	return &Bitstamp{BaseURL: bitstampBaseURL, client: client, asset: asset}
}

func (b *Bitstamp) Name() string { return "bitstamp" }

func (b *Bitstamp) SpotPrice(ctx context.Context) (float64, error) {
	var resp struct {
		Last string `json:"last"`
	}
	if err := b.client.GetJSON(ctx, b.BaseURL+"/api/v2/ticker/"+b.asset.BitstampPair+"/", nil, &resp); err != nil {
		return 0, err
	}
	return parsePrice(resp.Last)
}
