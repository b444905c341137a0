package technical

import (
	"math"

	"github.com/Alias1177/CryptoPredictor/internal/model"
)

// CalculateBollingerBands calculates Bollinger Bands from the simple moving
// average and population standard deviation of the last `period` prices.
func CalculateBollingerBands(prices []float64, period int, stdDev float64) model.BollingerBands {
	window := tail(prices, period)
	if len(window) == 0 {
		return model.BollingerBands{}
	}

	// Calculate SMA
	var sum float64
	for _, p := range window {
		sum += p
	}
	middle := sum / float64(len(window))

	// Calculate standard deviation
	var variance float64
	for _, p := range window {
		variance += math.Pow(p-middle, 2)
	}
	sd := math.Sqrt(variance / float64(len(window)))

	return model.BollingerBands{
		Upper:  middle + sd*stdDev,
		Middle: middle,
		Lower:  middle - sd*stdDev,
	}
}

// CalculateATR calculates Average True Range. Only closes are available, so
// the true range of a step is the absolute close-to-close change.
func CalculateATR(prices []float64, period int) float64 {
	if len(prices) < 2 || period < 1 {
		return 0
	}

	// If we don't have enough data for the period, use what we have
	transitions := period
	if len(prices)-1 < transitions {
		transitions = len(prices) - 1
	}

	var sum float64
	for i := len(prices) - transitions; i < len(prices); i++ {
		sum += math.Abs(prices[i] - prices[i-1])
	}

	return sum / float64(transitions)
}
