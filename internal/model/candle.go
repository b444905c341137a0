package model

import (
	"errors"
	"fmt"
)

// MinHistorySamples is the widest indicator window (support/resistance).
const MinHistorySamples = 50

// PricePoint is a single (timestampMillis, price) sample
type PricePoint struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
}

// VolumePoint is aligned 1:1 by index with a PricePoint
type VolumePoint struct {
	Timestamp int64   `json:"timestamp"`
	Volume    float64 `json:"volume"`
}

// PriceSeries is ordered oldest first
type PriceSeries []PricePoint

// VolumeSeries is ordered oldest first
type VolumeSeries []VolumePoint

// Closes returns the raw price values of the series.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Price
	}
	return out
}

// Values returns the raw volume values of the series.
func (s VolumeSeries) Values() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.Volume
	}
	return out
}

// History is the result of a candle source: hourly prices and volumes
type History struct {
	Prices  PriceSeries  `json:"prices"`
	Volumes VolumeSeries `json:"volumes"`
	Source  string       `json:"source"`
}

var (
	ErrHistoryTooShort      = errors.New("history shorter than indicator window")
	ErrHistoryMisaligned    = errors.New("price and volume series are misaligned")
	ErrHistoryNotIncreasing = errors.New("timestamps are not strictly increasing")
	ErrNonPositivePrice     = errors.New("non-positive price")
)

// Validate checks the invariants every history source must satisfy.
func (h *History) Validate() error {
	if len(h.Prices) < MinHistorySamples {
		return fmt.Errorf("%w: got %d samples, need %d", ErrHistoryTooShort, len(h.Prices), MinHistorySamples)
	}
	if len(h.Prices) != len(h.Volumes) {
		return fmt.Errorf("%w: %d prices vs %d volumes", ErrHistoryMisaligned, len(h.Prices), len(h.Volumes))
	}

	for i := range h.Prices {
		if h.Prices[i].Timestamp != h.Volumes[i].Timestamp {
			return fmt.Errorf("%w: index %d", ErrHistoryMisaligned, i)
		}
		if !(h.Prices[i].Price > 0) {
			return fmt.Errorf("%w at index %d", ErrNonPositivePrice, i)
		}
		if h.Volumes[i].Volume < 0 {
			return fmt.Errorf("negative volume at index %d", i)
		}
		if i > 0 && h.Prices[i].Timestamp <= h.Prices[i-1].Timestamp {
			return fmt.Errorf("%w: index %d", ErrHistoryNotIncreasing, i)
		}
	}

	return nil
}

// Tail keeps only the most recent n samples of both series.
func (h *History) Tail(n int) {
	if n <= 0 || len(h.Prices) <= n {
		return
	}
	h.Prices = h.Prices[len(h.Prices)-n:]
	h.Volumes = h.Volumes[len(h.Volumes)-n:]
}

// Latest returns the most recent price sample.
func (h *History) Latest() PricePoint {
	return h.Prices[len(h.Prices)-1]
}

// SpotPrice is the result of GetSpotPrice
type SpotPrice struct {
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
	Source    string  `json:"source"`
}
