package model

import "time"

// Direction of a prediction
type Direction string

const (
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionNeutral Direction = "neutral"
)

// Timeframe is one prediction horizon
type Timeframe struct {
	Label                string  `json:"label" yaml:"label"`
	HoursAhead           int     `json:"hours_ahead" yaml:"hours_ahead"`
	VolatilityMultiplier float64 `json:"volatility_multiplier" yaml:"volatility_multiplier"`
}

// DefaultTimeframes is the ordered set of horizons predicted by default.
func DefaultTimeframes() []Timeframe {
	return []Timeframe{
		{Label: "1H", HoursAhead: 1, VolatilityMultiplier: 1.0},
		{Label: "4H", HoursAhead: 4, VolatilityMultiplier: 2.0},
		{Label: "24H", HoursAhead: 24, VolatilityMultiplier: 4.0},
		{Label: "7D", HoursAhead: 168, VolatilityMultiplier: 8.0},
	}
}

// Prediction is the outcome for one timeframe
type Prediction struct {
	Timeframe         string    `json:"timeframe"`
	TargetTime        time.Time `json:"target_time"`
	TargetPrice       float64   `json:"target_price"`
	Direction         Direction `json:"direction"`
	Confidence        float64   `json:"confidence"` // percent, [50,95]
	Reasoning         []string  `json:"reasoning"`
	StopLoss          float64   `json:"stop_loss"`
	TakeProfit        float64   `json:"take_profit"`
	RiskRewardRatio   float64   `json:"risk_reward_ratio"`
	RiskRewardDefined bool      `json:"risk_reward_defined"` // false when stop-loss equals current price
}

// Analysis is the result of GetAnalysis
type Analysis struct {
	ID            string              `json:"id"`
	CurrentPrice  float64             `json:"current_price"`
	HistorySource string              `json:"history_source"`
	Predictions   []Prediction        `json:"predictions"`
	Sentiment     SocialSentiment     `json:"sentiment"`
	NewsSentiment float64             `json:"news_sentiment"`
	Indicators    TechnicalIndicators `json:"indicators"`
	Onchain       OnchainSnapshot     `json:"onchain_metrics"`
	MarketHours   MarketSessionState  `json:"market_hours"`
	Regime        MarketRegime        `json:"regime"`
	Anomaly       Anomaly             `json:"anomaly"`
	Timestamp     time.Time           `json:"timestamp"`
}
