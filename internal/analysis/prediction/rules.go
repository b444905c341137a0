package prediction

import "github.com/Alias1177/CryptoPredictor/internal/model"

// Inputs is everything a rule may look at. ATR is already scaled for the
// timeframe being predicted.
type Inputs struct {
	CurrentPrice  float64
	ATR           float64
	Indicators    model.TechnicalIndicators
	Sentiment     model.SocialSentiment
	NewsSentiment float64
}

// State is the scoring accumulator passed from rule to rule. Rules never
// modify the State they receive.
type State struct {
	Direction  model.Direction
	Confidence float64
	Target     float64
	Reasoning  []string
}

// Rule is a pure scoring step.
type Rule func(s State, in Inputs) State

// Rules is the fixed evaluation order. Later rules may override the
// direction set by earlier ones; confidence accumulates.
var Rules = []Rule{
	RSIRule,
	MACDRule,
	BollingerRule,
	VolumeRule,
	SocialSentimentRule,
	NewsSentimentRule,
}

const (
	baseConfidence = 0.5
	minConfidence  = 0.5
	maxConfidence  = 0.95
)

func initialState(current float64) State {
	return State{Direction: model.DirectionNeutral, Confidence: baseConfidence, Target: current}
}

func (s State) because(label string) State {
	reasons := make([]string, len(s.Reasoning), len(s.Reasoning)+1)
	copy(reasons, s.Reasoning)
	s.Reasoning = append(reasons, label)
	return s
}

// RSIRule fades overbought and oversold readings.
func RSIRule(s State, in Inputs) State {
	switch {
	case in.Indicators.RSI > 70:
		s.Direction = model.DirectionDown
		s.Confidence += 0.15
		s.Target -= 1.5 * in.ATR
		return s.because("RSI overbought")
	case in.Indicators.RSI < 30:
		s.Direction = model.DirectionUp
		s.Confidence += 0.15
		s.Target += 1.5 * in.ATR
		return s.because("RSI oversold")
	}
	return s
}

// MACDRule follows momentum unless an earlier rule already points the other
// way, in which case only the observation is recorded.
func MACDRule(s State, in Inputs) State {
	switch {
	case in.Indicators.MACD > 0:
		if s.Direction != model.DirectionDown {
			s.Direction = model.DirectionUp
			s.Confidence += 0.12
			s.Target += 0.8 * in.ATR
		}
		return s.because("MACD positive")
	case in.Indicators.MACD < -50:
		if s.Direction != model.DirectionUp {
			s.Direction = model.DirectionDown
			s.Confidence += 0.12
			s.Target -= 0.8 * in.ATR
		}
		return s.because("MACD negative")
	}
	return s
}

// BollingerRule overrides direction when price breaks out of the bands and
// snaps the target to the opposite inner level.
func BollingerRule(s State, in Inputs) State {
	bb := in.Indicators.Bollinger
	sr := in.Indicators.SupportResistance
	switch {
	case in.CurrentPrice > bb.Upper*1.02:
		s.Direction = model.DirectionDown
		s.Confidence += 0.2
		s.Target = sr.Support2
		return s.because("Price at resistance")
	case in.CurrentPrice < bb.Lower*0.98:
		s.Direction = model.DirectionUp
		s.Confidence += 0.2
		s.Target = sr.Resistance2
		return s.because("Price at support")
	}
	return s
}

// VolumeRule strengthens an existing direction on heavy volume.
func VolumeRule(s State, in Inputs) State {
	if in.Indicators.VolumeRatio <= 1.5 {
		return s
	}
	switch s.Direction {
	case model.DirectionUp:
		s.Confidence += 0.15
		s.Target *= 1.01
	case model.DirectionDown:
		s.Confidence += 0.15
		s.Target *= 0.99
	default:
		return s
	}
	return s.because("High volume confirmation")
}

func SocialSentimentRule(s State, in Inputs) State {
	avg := in.Sentiment.Average()
	switch {
	case avg > 0.2:
		s.Confidence += 0.10
		s.Target *= 1.005
		return s.because("Positive social sentiment")
	case avg < -0.2:
		s.Confidence += 0.10
		s.Target *= 0.995
		return s.because("Negative social sentiment")
	}
	return s
}

func NewsSentimentRule(s State, in Inputs) State {
	switch {
	case in.NewsSentiment > 0.3:
		s.Confidence += 0.08
		s.Target *= 1.003
		return s.because("Positive news sentiment")
	case in.NewsSentiment < -0.3:
		s.Confidence += 0.08
		s.Target *= 0.997
		return s.because("Negative news sentiment")
	}
	return s
}
