package signals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Alias1177/CryptoPredictor/internal/fallback"
	httpClient "github.com/Alias1177/CryptoPredictor/internal/platform/http"
)

const (
	redditBaseURL     = "https://www.reddit.com"
	lunarCrushBaseURL = "https://lunarcrush.com"
)

// ErrMissingAPIKey is returned without any request when a keyed source has no key.
var ErrMissingAPIKey = errors.New("api key not configured")

// Reddit scores the hot posts of a subreddit by keyword.
type Reddit struct {
	BaseURL   string
	Subreddit string
	Limit     int
	client    *httpClient.Client
}

func NewReddit(client *httpClient.Client) *Reddit {
	return &Reddit{BaseURL: redditBaseURL, Subreddit: "Bitcoin", Limit: 25, client: client}
}

func (r *Reddit) Name() string { return "reddit" }

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title    string `json:"title"`
				Selftext string `json:"selftext"`
				Stickied bool   `json:"stickied"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Sentiment returns a score in [-1,1].
func (r *Reddit) Sentiment(ctx context.Context) (float64, error) {
	endpoint := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", r.BaseURL, r.Subreddit, r.Limit)

	var listing redditListing
	if err := r.client.GetJSON(ctx, endpoint, nil, &listing); err != nil {
		return 0, err
	}

	var texts []string
	for _, c := range listing.Data.Children {
		if c.Data.Stickied {
			continue
		}
		texts = append(texts, c.Data.Title)
	}
	if len(texts) == 0 {
		return 0, fmt.Errorf("%w: no posts in r/%s", fallback.ErrMalformed, r.Subreddit)
	}
	return ScoreHeadlines(texts), nil
}

// LunarCrush reads the percentage of positive social posts for a coin.
type LunarCrush struct {
	BaseURL string
	Symbol  string
	apiKey  string
	client  *httpClient.Client
}

func NewLunarCrush(client *httpClient.Client, symbol, apiKey string) *LunarCrush {
	return &LunarCrush{BaseURL: lunarCrushBaseURL, Symbol: symbol, apiKey: apiKey, client: client}
}

func (l *LunarCrush) Name() string { return "lunarcrush" }

// Sentiment maps the 0-100 positive share onto [-1,1].
func (l *LunarCrush) Sentiment(ctx context.Context) (float64, error) {
	if strings.TrimSpace(l.apiKey) == "" {
		return 0, ErrMissingAPIKey
	}

	var resp struct {
		Data struct {
			Sentiment *float64 `json:"sentiment"`
		} `json:"data"`
	}
	endpoint := fmt.Sprintf("%s/api4/public/coins/%s/v1", l.BaseURL, strings.ToLower(l.Symbol))
	headers := map[string]string{"Authorization": "Bearer " + l.apiKey}
	if err := l.client.GetJSON(ctx, endpoint, headers, &resp); err != nil {
		return 0, err
	}
	if resp.Data.Sentiment == nil {
		return 0, fmt.Errorf("%w: sentiment missing", fallback.ErrMalformed)
	}
	return clamp((*resp.Data.Sentiment-50)/50, -1, 1), nil
}
