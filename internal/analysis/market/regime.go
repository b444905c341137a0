// Package market derives context from the price series and the wall clock:
// regional trading sessions, the market regime and anomalies.
package market

import (
	"math"

	"github.com/Alias1177/CryptoPredictor/internal/analysis/technical"
	"github.com/Alias1177/CryptoPredictor/internal/model"
)

const regimeLookback = 20

// ClassifyRegime classifies recent hourly closes. Trend strength is measured
// with the efficiency ratio (net move over path length) since only closes
// are available.
func ClassifyRegime(prices []float64) model.MarketRegime {
	n := len(prices)
	if n < 31 {
		return model.UnknownRegime()
	}

	regime := model.UnknownRegime()

	atr10 := technical.CalculateATR(prices, 10)
	atr30 := technical.CalculateATR(prices, 30)

	// Flat series
	if atr10 == 0 {
		regime.Type = model.RegimeRanging
		regime.Strength = 1
		regime.Volatility = model.VolatilityLow
		return regime
	}

	// Volatility analysis
	volatilityRatio := 1.0
	if atr30 > 0 {
		volatilityRatio = atr10 / atr30
	}
	if volatilityRatio > 1.5 {
		regime.Volatility = model.VolatilityHigh
	} else if volatilityRatio < 0.7 {
		regime.Volatility = model.VolatilityLow
	}

	// Momentum analysis, shorter term changes weigh more
	current := prices[n-1]
	momentum5 := (current - prices[n-6]) / prices[n-6]
	momentum10 := (current - prices[n-11]) / prices[n-11]
	momentum20 := (current - prices[n-21]) / prices[n-21]

	momentumScore := momentum5*0.5 + momentum10*0.3 + momentum20*0.2
	regime.Momentum = math.Min(math.Abs(momentumScore)*10, 1.0)
	if momentumScore > 0 {
		regime.Direction = model.DirectionUp
	} else if momentumScore < 0 {
		regime.Direction = model.DirectionDown
	}

	window := prices[n-regimeLookback-1:]
	efficiency := efficiencyRatio(window)

	if efficiency > 0.5 {
		regime.Type = model.RegimeTrending
		regime.Strength = math.Min(efficiency, 1.0)
		return regime
	}

	// Range-bound when the whole window spans only a few average moves
	lo, hi := window[0], window[0]
	for _, p := range window {
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	if (hi-lo)/atr10 < 5.0 {
		regime.Type = model.RegimeRanging
		regime.Strength = math.Min(1-efficiency, 1.0)
		return regime
	}

	changes := directionalChanges(window)
	switch {
	case changes > 8:
		regime.Type = model.RegimeChoppy
		regime.Strength = math.Min(float64(changes)/15.0, 1.0)
	case volatilityRatio > 1.8:
		regime.Type = model.RegimeVolatile
		regime.Strength = math.Min(volatilityRatio/3.0, 1.0)
	default:
		// mild trend, capped
		regime.Type = model.RegimeTrending
		regime.Strength = math.Min(efficiency, 0.7)
	}

	return regime
}

func efficiencyRatio(prices []float64) float64 {
	var path float64
	for i := 1; i < len(prices); i++ {
		path += math.Abs(prices[i] - prices[i-1])
	}
	if path == 0 {
		return 0
	}
	return math.Abs(prices[len(prices)-1]-prices[0]) / path
}

func directionalChanges(prices []float64) int {
	var changes int
	prevUp := prices[1] > prices[0]
	for i := 2; i < len(prices); i++ {
		up := prices[i] > prices[i-1]
		if up != prevUp {
			changes++
			prevUp = up
		}
	}
	return changes
}
