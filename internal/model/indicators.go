package model

import "sort"

// BollingerBands holds the envelope around the simple moving average
type BollingerBands struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// SupportResistance holds the outer (min/max) and inner (percentile) bands.
// Invariant: Support <= Support2 <= Resistance2 <= Resistance.
type SupportResistance struct {
	Support     float64 `json:"support"`
	Support2    float64 `json:"support2"`
	Resistance  float64 `json:"resistance"`
	Resistance2 float64 `json:"resistance2"`
}

// PriceBucket is the lower bound of a fixed-width price bin
type PriceBucket int64

// VolumeBucket is the accumulated volume traded inside a PriceBucket
type VolumeBucket struct {
	Bucket PriceBucket `json:"bucket"`
	Volume float64     `json:"volume"`
}

// VolumeProfile is sorted ascending by Bucket
type VolumeProfile []VolumeBucket

// Volume returns the accumulated volume for a bucket, 0 if absent.
func (p VolumeProfile) Volume(bucket PriceBucket) float64 {
	i := sort.Search(len(p), func(i int) bool { return p[i].Bucket >= bucket })
	if i < len(p) && p[i].Bucket == bucket {
		return p[i].Volume
	}
	return 0
}

// TechnicalIndicators holds all calculated technical indicators
type TechnicalIndicators struct {
	RSI               float64           `json:"rsi"`
	MACD              float64           `json:"macd"`
	Bollinger         BollingerBands    `json:"bollinger"`
	ATR               float64           `json:"atr"`
	SupportResistance SupportResistance `json:"support_resistance"`
	VolumeRatio       float64           `json:"volume_ratio"`
	VolumeProfile     VolumeProfile     `json:"volume_profile"`
}
