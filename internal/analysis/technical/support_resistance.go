package technical

import (
	"sort"

	"github.com/Alias1177/CryptoPredictor/internal/model"
)

// IdentifySupportResistance finds the outer (min/max) and inner
// (25th/75th percentile) levels over the last `window` prices.
func IdentifySupportResistance(prices []float64, window int) model.SupportResistance {
	recent := tail(prices, window)
	if len(recent) == 0 {
		return model.SupportResistance{}
	}

	sorted := make([]float64, len(recent))
	copy(sorted, recent)
	sort.Float64s(sorted)

	n := len(sorted)
	return model.SupportResistance{
		Support:     sorted[0],
		Support2:    sorted[n/4],
		Resistance2: sorted[n*3/4],
		Resistance:  sorted[n-1],
	}
}
