package exchange

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Alias1177/CryptoPredictor/internal/model"
	httpClient "github.com/Alias1177/CryptoPredictor/internal/platform/http"
)

const cryptoCompareBaseURL = "https://min-api.cryptocompare.com"

// CryptoCompare serves hourly OHLCV. The API key is optional.
type CryptoCompare struct {
	BaseURL string
	client  *httpClient.Client
	asset   Asset
	apiKey  string
}

func NewCryptoCompare(client *httpClient.Client, asset Asset, apiKey string) *CryptoCompare {
	return &CryptoCompare{BaseURL: cryptoCompareBaseURL, client: client, asset: asset, apiKey: apiKey}
}

func (c *CryptoCompare) Name() string { return "cryptocompare" }

type histoHour struct {
	Response string `json:"Response"`
	Message  string `json:"Message"`
	Data     struct {
		Data []struct {
			Time       int64   `json:"time"`
			Close      float64 `json:"close"`
			VolumeFrom float64 `json:"volumefrom"`
		} `json:"Data"`
	} `json:"Data"`
}

func (c *CryptoCompare) History(ctx context.Context, hours int) (*model.History, error) {
	q := url.Values{}
	q.Set("fsym", c.asset.Symbol)
	q.Set("tsym", "USD")
	// limit counts intervals, the response carries limit+1 points
	q.Set("limit", fmt.Sprint(hours-1))

	var headers map[string]string
	if c.apiKey != "" {
		headers = map[string]string{"authorization": "Apikey " + c.apiKey}
	}

	var resp histoHour
	if err := c.client.GetJSON(ctx, c.BaseURL+"/data/v2/histohour?"+q.Encode(), headers, &resp); err != nil {
		return nil, err
	}
	if resp.Response != "Success" {
		return nil, fmt.Errorf("cryptocompare: %s", resp.Message)
	}

	rows := make([]sample, len(resp.Data.Data))
	for i, d := range resp.Data.Data {
		// seconds to milliseconds to match the other providers
		rows[i] = sample{ts: d.Time * 1000, price: d.Close, volume: d.VolumeFrom}
	}
	return buildHistory(c.Name(), rows, hours), nil
}
