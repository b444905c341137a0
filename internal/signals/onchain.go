package signals

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Alias1177/CryptoPredictor/internal/fallback"
	"github.com/Alias1177/CryptoPredictor/internal/model"
	httpClient "github.com/Alias1177/CryptoPredictor/internal/platform/http"
)

const (
	fearGreedBaseURL      = "https://api.alternative.me"
	mempoolBaseURL        = "https://mempool.space"
	blockchainInfoBaseURL = "https://blockchain.info"

	satoshisPerBTC = 100_000_000

	congestedMempool = 100_000
	degradedMempool  = 50_000
)

// FearGreed reads the alternative.me Fear & Greed index.
type FearGreed struct {
	BaseURL string
	client  *httpClient.Client
}

func NewFearGreed(client *httpClient.Client) *FearGreed {
	return &FearGreed{BaseURL: fearGreedBaseURL, client: client}
}

func (f *FearGreed) Name() string { return "fear_greed" }

// Index maps the 0-100 index onto [-1,1].
func (f *FearGreed) Index(ctx context.Context) (float64, error) {
	var resp struct {
		Data []struct {
			Value          string `json:"value"`
			Classification string `json:"value_classification"`
		} `json:"data"`
	}
	if err := f.client.GetJSON(ctx, f.BaseURL+"/fng/?limit=1", nil, &resp); err != nil {
		return 0, err
	}
	if len(resp.Data) == 0 {
		return 0, fmt.Errorf("%w: empty index", fallback.ErrMalformed)
	}

	value, err := strconv.ParseFloat(resp.Data[0].Value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: index value %q", fallback.ErrMalformed, resp.Data[0].Value)
	}
	return clamp((value-50)/50, -1, 1), nil
}

// Mempool reads the unconfirmed transaction count from mempool.space.
type Mempool struct {
	BaseURL string
	client  *httpClient.Client
}

func NewMempool(client *httpClient.Client) *Mempool {
	return &Mempool{BaseURL: mempoolBaseURL, client: client}
}

func (m *Mempool) Name() string { return "mempool" }

func (m *Mempool) Size(ctx context.Context) (int64, error) {
	var resp struct {
		Count *int64 `json:"count"`
		VSize int64  `json:"vsize"`
	}
	if err := m.client.GetJSON(ctx, m.BaseURL+"/api/mempool", nil, &resp); err != nil {
		return 0, err
	}
	if resp.Count == nil || *resp.Count < 0 {
		return 0, fmt.Errorf("%w: mempool count missing", fallback.ErrMalformed)
	}
	return *resp.Count, nil
}

// NetworkHealthFor classifies congestion from the mempool size.
func NetworkHealthFor(mempoolSize int64) model.NetworkHealth {
	switch {
	case mempoolSize > congestedMempool:
		return model.NetworkCongested
	case mempoolSize > degradedMempool:
		return model.NetworkDegraded
	default:
		return model.NetworkGood
	}
}

// BlockchainInfo provides whale activity and 24h volume.
type BlockchainInfo struct {
	BaseURL string
	// WhaleThreshold is the minimum single output, in BTC.
	WhaleThreshold float64
	client         *httpClient.Client
}

func NewBlockchainInfo(client *httpClient.Client, whaleThresholdBTC float64) *BlockchainInfo {
	return &BlockchainInfo{BaseURL: blockchainInfoBaseURL, WhaleThreshold: whaleThresholdBTC, client: client}
}

func (b *BlockchainInfo) Name() string { return "blockchain_info" }

// WhaleTransactions counts unconfirmed transactions with at least one output
// at or above the threshold.
func (b *BlockchainInfo) WhaleTransactions(ctx context.Context) (int64, error) {
	var resp struct {
		Txs []struct {
			Hash string `json:"hash"`
			Out  []struct {
				Value int64 `json:"value"` // satoshis
			} `json:"out"`
		} `json:"txs"`
	}
	if err := b.client.GetJSON(ctx, b.BaseURL+"/unconfirmed-transactions?format=json", nil, &resp); err != nil {
		return 0, err
	}

	threshold := int64(b.WhaleThreshold * satoshisPerBTC)
	var whales int64
	for _, tx := range resp.Txs {
		for _, out := range tx.Out {
			if out.Value >= threshold {
				whales++
				break
			}
		}
	}
	return whales, nil
}

// Volume24h returns the estimated USD transaction volume of the last 24h.
func (b *BlockchainInfo) Volume24h(ctx context.Context) (float64, error) {
	var resp struct {
		EstimatedTransactionVolumeUSD *float64 `json:"estimated_transaction_volume_usd"`
		NTx                           int64    `json:"n_tx"`
	}
	if err := b.client.GetJSON(ctx, b.BaseURL+"/stats?format=json", nil, &resp); err != nil {
		return 0, err
	}
	if resp.EstimatedTransactionVolumeUSD == nil {
		return 0, fmt.Errorf("%w: volume missing", fallback.ErrMalformed)
	}
	return *resp.EstimatedTransactionVolumeUSD, nil
}
