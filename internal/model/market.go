package model

// RegimeType is the broad character of recent price action
type RegimeType string

const (
	RegimeUnknown  RegimeType = "unknown"
	RegimeTrending RegimeType = "trending"
	RegimeRanging  RegimeType = "ranging"
	RegimeChoppy   RegimeType = "choppy"
	RegimeVolatile RegimeType = "volatile"
)

// VolatilityLevel compares short-term to long-term volatility
type VolatilityLevel string

const (
	VolatilityLow    VolatilityLevel = "low"
	VolatilityNormal VolatilityLevel = "normal"
	VolatilityHigh   VolatilityLevel = "high"
)

// MarketRegime is informational context. It does not feed the prediction rules.
type MarketRegime struct {
	Type       RegimeType      `json:"type"`
	Direction  Direction       `json:"direction"`
	Strength   float64         `json:"strength"` // [0,1]
	Momentum   float64         `json:"momentum"` // [0,1]
	Volatility VolatilityLevel `json:"volatility"`
}

// UnknownRegime is reported when the series is too short to classify.
func UnknownRegime() MarketRegime {
	return MarketRegime{Type: RegimeUnknown, Direction: DirectionNeutral, Volatility: VolatilityNormal}
}

// Anomaly kinds
const (
	AnomalyPriceSpike         = "price_spike"
	AnomalyVolumeSpike        = "volume_spike"
	AnomalyVolatilityBreakout = "volatility_breakout"
	AnomalyExtremeRSI         = "extreme_rsi"
)

// Anomaly flags unusual conditions in the latest sample. Informational only.
type Anomaly struct {
	Detected bool     `json:"detected"`
	Kinds    []string `json:"kinds,omitempty"`
	Score    float64  `json:"score"` // [0,1]
	Details  []string `json:"details,omitempty"`
}
