package signals

import (
	"context"
	"fmt"

	"github.com/Alias1177/CryptoPredictor/internal/fallback"
	httpClient "github.com/Alias1177/CryptoPredictor/internal/platform/http"
)

const cryptoCompareNewsURL = "https://min-api.cryptocompare.com"

// News scores the latest CryptoCompare headlines.
type News struct {
	BaseURL   string
	Headlines int
	apiKey    string
	client    *httpClient.Client
}

func NewNews(client *httpClient.Client, apiKey string) *News {
	return &News{BaseURL: cryptoCompareNewsURL, Headlines: 10, apiKey: apiKey, client: client}
}

func (n *News) Name() string { return "news" }

// Sentiment returns a score in [-1,1].
func (n *News) Sentiment(ctx context.Context) (float64, error) {
	var resp struct {
		Type    int    `json:"Type"`
		Message string `json:"Message"`
		Data    []struct {
			Title string `json:"title"`
		} `json:"Data"`
	}

	var headers map[string]string
	if n.apiKey != "" {
		headers = map[string]string{"authorization": "Apikey " + n.apiKey}
	}
	if err := n.client.GetJSON(ctx, n.BaseURL+"/data/v2/news/?lang=EN", headers, &resp); err != nil {
		return 0, err
	}
	if len(resp.Data) == 0 {
		return 0, fmt.Errorf("%w: no headlines: %s", fallback.ErrMalformed, resp.Message)
	}

	items := resp.Data
	if len(items) > n.Headlines {
		items = items[:n.Headlines]
	}
	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = it.Title
	}
	return ScoreHeadlines(titles), nil
}
