package model

// SocialSentiment combines two independently fetched streams, each in [-1,1].
// 0 means neutral or unknown.
type SocialSentiment struct {
	Reddit     float64 `json:"reddit"`
	LunarCrush float64 `json:"lunarcrush"`
}

// Average is the arithmetic mean of both streams
func (s SocialSentiment) Average() float64 {
	return (s.Reddit + s.LunarCrush) / 2
}

// NetworkHealth describes mempool congestion
type NetworkHealth string

const (
	NetworkGood      NetworkHealth = "good"
	NetworkDegraded  NetworkHealth = "degraded"
	NetworkCongested NetworkHealth = "congested"
)

// OnchainSnapshot holds on-chain and fear & greed metrics.
// Unresolved fields stay at their zero value; NetworkHealth defaults to good.
type OnchainSnapshot struct {
	FearGreedIndex    float64       `json:"fear_greed_index"` // [-1,1]
	MempoolSize       int64         `json:"mempool_size"`
	WhaleTransactions int64         `json:"whale_transactions"`
	TxVolume24h       float64       `json:"tx_volume_24h"`
	NetworkHealth     NetworkHealth `json:"network_health"`
}

// NeutralOnchain returns the default snapshot used when every metric fails.
func NeutralOnchain() OnchainSnapshot {
	return OnchainSnapshot{NetworkHealth: NetworkGood}
}

// SessionStatus is the state of one trading region
type SessionStatus struct {
	Active bool `json:"active"`
	Peak   bool `json:"peak"`
}

// MarketSessionState represents which regional sessions are open
type MarketSessionState struct {
	Asia    SessionStatus `json:"asia"`
	Europe  SessionStatus `json:"europe"`
	America SessionStatus `json:"america"`
}

// Signals is everything the aggregator gathers besides price data
type Signals struct {
	Sentiment     SocialSentiment    `json:"sentiment"`
	NewsSentiment float64            `json:"news_sentiment"`
	Onchain       OnchainSnapshot    `json:"onchain_metrics"`
	MarketHours   MarketSessionState `json:"market_hours"`
}
