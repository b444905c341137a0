package technical

import "github.com/Alias1177/CryptoPredictor/internal/model"

// Params holds the indicator periods.
type Params struct {
	RSIPeriod         int
	MACDFastPeriod    int
	MACDSlowPeriod    int
	BBPeriod          int
	BBStdDev          float64
	ATRPeriod         int
	SRWindow          int
	VolumeWindow      int
	VolumeBucketWidth float64
}

// DefaultParams returns the standard periods used for hourly data.
func DefaultParams() Params {
	return Params{
		RSIPeriod:         14,
		MACDFastPeriod:    12,
		MACDSlowPeriod:    26,
		BBPeriod:          20,
		BBStdDev:          2.0,
		ATRPeriod:         14,
		SRWindow:          model.MinHistorySamples,
		VolumeWindow:      24,
		VolumeBucketWidth: 100,
	}
}

// CalculateAllIndicators computes the full indicator snapshot for a history.
// The history is not modified.
func CalculateAllIndicators(h *model.History, params Params) model.TechnicalIndicators {
	prices := h.Prices.Closes()
	volumes := h.Volumes.Values()

	return model.TechnicalIndicators{
		RSI:               CalculateRSI(prices, params.RSIPeriod),
		MACD:              CalculateMACD(prices, params.MACDFastPeriod, params.MACDSlowPeriod),
		Bollinger:         CalculateBollingerBands(prices, params.BBPeriod, params.BBStdDev),
		ATR:               CalculateATR(prices, params.ATRPeriod),
		SupportResistance: IdentifySupportResistance(prices, params.SRWindow),
		VolumeRatio:       CalculateVolumeRatio(volumes, params.VolumeWindow),
		VolumeProfile:     CalculateVolumeProfile(prices, volumes, params.VolumeWindow, params.VolumeBucketWidth),
	}
}
