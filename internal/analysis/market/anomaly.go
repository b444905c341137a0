package market

import (
	"fmt"
	"math"

	"github.com/Alias1177/CryptoPredictor/internal/analysis/technical"
	"github.com/Alias1177/CryptoPredictor/internal/model"
)

// DetectAnomalies checks the latest sample against the recent baseline:
// price spikes, volume spikes, volatility breakouts and extreme RSI.
// Each extra finding raises the score of the first one.
func DetectAnomalies(prices, volumes []float64) model.Anomaly {
	n := len(prices)
	if n < 21 {
		return model.Anomaly{}
	}

	var anomaly model.Anomaly
	flag := func(kind string, score float64, bump float64, details string) {
		if anomaly.Detected {
			anomaly.Score = math.Min(anomaly.Score+bump, 1.0)
		} else {
			anomaly.Detected = true
			anomaly.Score = math.Min(score, 1.0)
		}
		anomaly.Kinds = append(anomaly.Kinds, kind)
		anomaly.Details = append(anomaly.Details, details)
	}

	// Baseline excludes the latest step
	baseline := technical.CalculateATR(prices[:n-1], 10)

	// 1. Price spike
	if baseline > 0 {
		move := math.Abs(prices[n-1]-prices[n-2]) / baseline
		if move > 3.0 {
			flag(model.AnomalyPriceSpike, move/6.0, 0,
				fmt.Sprintf("Price moved %.1f times the normal range", move))
		}
	}

	// 2. Volume spike against the previous 10 samples
	if len(volumes) == n && volumes[n-1] > 0 {
		var total float64
		for _, v := range volumes[n-11 : n-1] {
			total += v
		}
		if avg := total / 10; avg > 0 {
			ratio := volumes[n-1] / avg
			if ratio > 3.0 {
				flag(model.AnomalyVolumeSpike, ratio/5.0, 0.2,
					fmt.Sprintf("Volume %.1f times the average", ratio))
			}
		}
	}

	// 3. Volatility breakout
	atr10 := technical.CalculateATR(prices, 10)
	atr50 := technical.CalculateATR(prices, 50)
	if atr50 > 0 {
		ratio := atr10 / atr50
		if ratio > 2.5 {
			flag(model.AnomalyVolatilityBreakout, ratio/4.0, 0.1,
				fmt.Sprintf("Recent volatility %.1f times the baseline", ratio))
		}
	}

	// 4. Extreme RSI
	rsi := technical.CalculateRSI(prices, 14)
	if rsi < 10 || rsi > 90 {
		flag(model.AnomalyExtremeRSI, math.Abs(rsi-50)/50, 0.1,
			fmt.Sprintf("RSI at extreme level %.1f", rsi))
	}

	return anomaly
}
