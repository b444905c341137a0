package technical

// CalculateRSI calculates the Relative Strength Index over the last `period`
// transitions using simple averages of gains and losses.
func CalculateRSI(prices []float64, period int) float64 {
	if len(prices) < 2 || period < 1 {
		return 50.0 // Default value if not enough data
	}

	transitions := period
	if len(prices)-1 < transitions {
		transitions = len(prices) - 1
	}

	var gains, losses float64
	for i := len(prices) - transitions; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(transitions)
	avgLoss := losses / float64(transitions)

	// no losses at all (including a flat window)
	if avgLoss == 0 {
		return 100.0
	}

	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs))
}

// CalculateEMA calculates the Exponential Moving Average seeded with the
// price at len-period.
func CalculateEMA(prices []float64, period int) float64 {
	if len(prices) == 0 || period < 1 {
		return 0
	}

	start := len(prices) - period
	if start < 0 {
		start = 0
	}

	k := 2.0 / float64(period+1)
	ema := prices[start]
	for i := start + 1; i < len(prices); i++ {
		ema = prices[i]*k + ema*(1-k)
	}

	return ema
}

// CalculateMACD returns EMA(fast) - EMA(slow). There is no signal line.
func CalculateMACD(prices []float64, fastPeriod, slowPeriod int) float64 {
	return CalculateEMA(prices, fastPeriod) - CalculateEMA(prices, slowPeriod)
}

// tail returns the last n values, or all of them if there are fewer.
func tail(values []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
