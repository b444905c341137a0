// Package signals gathers auxiliary market signals (social and news
// sentiment, on-chain metrics, session state). No signal can fail the
// pipeline: any error is logged and replaced by its neutral value.
package signals

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Alias1177/CryptoPredictor/internal/analysis/market"
	"github.com/Alias1177/CryptoPredictor/internal/model"
	httpClient "github.com/Alias1177/CryptoPredictor/internal/platform/http"
)

// Observer is notified of every signal fetch outcome.
type Observer interface {
	ObserveSignal(name string, ok bool)
}

// Options configures the default providers.
type Options struct {
	Symbol            string
	LunarCrushAPIKey  string
	CryptoCompareKey  string
	WhaleThresholdBTC float64
}

// Aggregator fetches every signal concurrently.
type Aggregator struct {
	Reddit     *Reddit
	LunarCrush *LunarCrush
	News       *News
	FearGreed  *FearGreed
	Mempool    *Mempool
	Blockchain *BlockchainInfo

	observer Observer
	now      func() time.Time
}

func NewAggregator(client *httpClient.Client, opts Options) *Aggregator {
	return &Aggregator{
		Reddit:     NewReddit(client),
		LunarCrush: NewLunarCrush(client, opts.Symbol, opts.LunarCrushAPIKey),
		News:       NewNews(client, opts.CryptoCompareKey),
		FearGreed:  NewFearGreed(client),
		Mempool:    NewMempool(client),
		Blockchain: NewBlockchainInfo(client, opts.WhaleThresholdBTC),
		now:        time.Now,
	}
}

// WithObserver attaches a fetch outcome observer.
func (a *Aggregator) WithObserver(o Observer) *Aggregator {
	a.observer = o
	return a
}

// Collect never returns an error. Each fetch writes only its own field.
func (a *Aggregator) Collect(ctx context.Context) model.Signals {
	signals := model.Signals{
		Onchain:     model.NeutralOnchain(),
		MarketHours: market.SessionState(a.now()),
	}

	var g errgroup.Group

	g.Go(func() error {
		signals.Sentiment.Reddit = neutralOnError(ctx, a, "reddit", a.Reddit.Sentiment)
		return nil
	})
	g.Go(func() error {
		signals.Sentiment.LunarCrush = neutralOnError(ctx, a, "lunarcrush", a.LunarCrush.Sentiment)
		return nil
	})
	g.Go(func() error {
		signals.NewsSentiment = neutralOnError(ctx, a, "news", a.News.Sentiment)
		return nil
	})
	g.Go(func() error {
		signals.Onchain.FearGreedIndex = neutralOnError(ctx, a, "fear_greed", a.FearGreed.Index)
		return nil
	})
	g.Go(func() error {
		size := neutralOnError(ctx, a, "mempool", a.Mempool.Size)
		signals.Onchain.MempoolSize = size
		signals.Onchain.NetworkHealth = NetworkHealthFor(size)
		return nil
	})
	g.Go(func() error {
		signals.Onchain.WhaleTransactions = neutralOnError(ctx, a, "whale_transactions", a.Blockchain.WhaleTransactions)
		return nil
	})
	g.Go(func() error {
		signals.Onchain.TxVolume24h = neutralOnError(ctx, a, "tx_volume", a.Blockchain.Volume24h)
		return nil
	})

	_ = g.Wait()
	return signals
}

func (a *Aggregator) observe(name string, ok bool) {
	if a.observer != nil {
		a.observer.ObserveSignal(name, ok)
	}
}

func neutralOnError[T any](ctx context.Context, a *Aggregator, name string, fetch func(context.Context) (T, error)) T {
	v, err := fetch(ctx)
	if err != nil {
		log.Warn().Err(err).Str("component", "signals").Str("signal", name).Msg("signal unavailable, using neutral value")
		a.observe(name, false)
		var zero T
		return zero
	}
	a.observe(name, true)
	return v
}
