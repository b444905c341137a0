package prediction

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alias1177/CryptoPredictor/internal/model"
)

// Score runs the ordered rule chain and clamps the final confidence.
func Score(in Inputs) State {
	s := initialState(in.CurrentPrice)
	for _, rule := range Rules {
		s = rule(s, in)
	}
	s.Confidence = math.Max(minConfidence, math.Min(maxConfidence, s.Confidence))
	return s
}

// GeneratePrediction produces the prediction for one timeframe. The ATR in
// `in` is the unscaled indicator value.
func GeneratePrediction(in Inputs, tf model.Timeframe, now time.Time) model.Prediction {
	scaled := in
	scaled.ATR = in.ATR * tf.VolatilityMultiplier

	s := Score(scaled)
	stopLoss := StopLoss(s.Direction, in.CurrentPrice, scaled.ATR)
	ratio, defined := RiskReward(in.CurrentPrice, s.Target, stopLoss)

	reasoning := s.Reasoning
	if reasoning == nil {
		reasoning = []string{}
	}

	return model.Prediction{
		Timeframe:         tf.Label,
		TargetTime:        now.Add(time.Duration(tf.HoursAhead) * time.Hour).UTC(),
		TargetPrice:       round(s.Target, 2),
		Direction:         s.Direction,
		Confidence:        round(s.Confidence*100, 1),
		Reasoning:         reasoning,
		StopLoss:          round(stopLoss, 2),
		TakeProfit:        round(s.Target, 2),
		RiskRewardRatio:   round(ratio, 2),
		RiskRewardDefined: defined,
	}
}

// GeneratePredictions produces one prediction per timeframe, in order.
func GeneratePredictions(in Inputs, timeframes []model.Timeframe, now time.Time) []model.Prediction {
	out := make([]model.Prediction, 0, len(timeframes))
	for _, tf := range timeframes {
		out = append(out, GeneratePrediction(in, tf, now))
	}
	return out
}

// StopLoss sits 2 ATR against the trade. Anything that is not "up",
// including neutral, uses the short-side formula.
func StopLoss(direction model.Direction, current, atr float64) float64 {
	if direction == model.DirectionUp {
		return current - 2*atr
	}
	return current + 2*atr
}

// RiskReward returns |target-current| / |current-stopLoss|. When the stop is
// at the current price the ratio is undefined and reported as (0, false).
func RiskReward(current, target, stopLoss float64) (float64, bool) {
	risk := math.Abs(current - stopLoss)
	if risk == 0 {
		return 0, false
	}
	return math.Abs(target-current) / risk, true
}

func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
