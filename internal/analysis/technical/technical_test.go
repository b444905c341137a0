package technical

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Alias1177/CryptoPredictor/internal/model"
)

func randomWalk(r *rand.Rand, n int, start float64) []float64 {
	prices := make([]float64, n)
	p := start
	for i := range prices {
		p *= 1 + (r.Float64()-0.5)*0.02
		prices[i] = p
	}
	return prices
}

func TestCalculateRSI(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		period int
		want   float64
	}{
		{name: "not enough data", prices: []float64{100}, period: 14, want: 50},
		{name: "only gains", prices: []float64{1, 2, 3, 4, 5}, period: 14, want: 100},
		{name: "flat window", prices: []float64{7, 7, 7, 7}, period: 3, want: 100},
		{name: "only losses", prices: []float64{5, 4, 3, 2, 1}, period: 4, want: 0},
		{name: "mixed", prices: []float64{10, 12, 11}, period: 2, want: 100 - 100.0/3},
		{name: "uses tail only", prices: []float64{100, 1, 10, 12, 11}, period: 2, want: 100 - 100.0/3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, CalculateRSI(tt.prices, tt.period), 1e-9)
		})
	}
}

func TestCalculateEMA(t *testing.T) {
	require.InDelta(t, 4.25, CalculateEMA([]float64{1, 2, 3, 4, 5}, 3), 1e-9)
	// shorter than the period seeds at the first price
	require.InDelta(t, 8.0/3, CalculateEMA([]float64{2, 4}, 5), 1e-9)
	require.Zero(t, CalculateEMA(nil, 12))
}

func TestCalculateMACD(t *testing.T) {
	flat := make([]float64, 60)
	rising := make([]float64, 60)
	for i := range flat {
		flat[i] = 100
		rising[i] = float64(100 + i)
	}

	require.InDelta(t, 0, CalculateMACD(flat, 12, 26), 1e-9)
	require.Greater(t, CalculateMACD(rising, 12, 26), 0.0)
}

func TestCalculateBollingerBands(t *testing.T) {
	bb := CalculateBollingerBands([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 8, 2)
	require.InDelta(t, 5, bb.Middle, 1e-9)
	require.InDelta(t, 9, bb.Upper, 1e-9)
	require.InDelta(t, 1, bb.Lower, 1e-9)

	require.Equal(t, model.BollingerBands{}, CalculateBollingerBands(nil, 20, 2))
}

func TestCalculateATR(t *testing.T) {
	prices := []float64{10, 12, 11, 15}
	require.InDelta(t, 7.0/3, CalculateATR(prices, 14), 1e-9)
	require.InDelta(t, 2.5, CalculateATR(prices, 2), 1e-9)
	require.Zero(t, CalculateATR([]float64{10}, 14))
}

func TestIdentifySupportResistance(t *testing.T) {
	prices := make([]float64, 100)
	for i := range prices {
		prices[i] = float64(i + 1)
	}
	// shuffle to make sure levels come from the sorted window
	r := rand.New(rand.NewSource(3))
	window := prices[50:]
	r.Shuffle(len(window), func(i, j int) { window[i], window[j] = window[j], window[i] })

	sr := IdentifySupportResistance(prices, 50)
	require.Equal(t, model.SupportResistance{Support: 51, Support2: 63, Resistance2: 88, Resistance: 100}, sr)
}

func TestCalculateVolumeProfile(t *testing.T) {
	prices := []float64{1, 50010, 50090, 50150, 49999}
	volumes := []float64{99, 1, 2, 3, 4}

	profile := CalculateVolumeProfile(prices, volumes, 4, 100)
	require.Equal(t, model.VolumeProfile{
		{Bucket: 49900, Volume: 4},
		{Bucket: 50000, Volume: 3},
		{Bucket: 50100, Volume: 3},
	}, profile)
	require.Equal(t, 3.0, profile.Volume(50000))
	require.Zero(t, profile.Volume(0))
}

func TestCalculateVolumeRatio(t *testing.T) {
	require.InDelta(t, 1.6, CalculateVolumeRatio([]float64{999, 10, 10, 10, 20}, 4), 1e-9)
	require.Zero(t, CalculateVolumeRatio([]float64{0, 0, 0}, 24))
	require.Zero(t, CalculateVolumeRatio(nil, 24))
}

func TestIndicatorInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	params := DefaultParams()

	for run := 0; run < 200; run++ {
		prices := randomWalk(r, 168+r.Intn(100), 20000+r.Float64()*50000)

		rsi := CalculateRSI(prices, params.RSIPeriod)
		require.GreaterOrEqual(t, rsi, 0.0)
		require.LessOrEqual(t, rsi, 100.0)

		bb := CalculateBollingerBands(prices, params.BBPeriod, params.BBStdDev)
		require.GreaterOrEqual(t, bb.Upper, bb.Middle)
		require.GreaterOrEqual(t, bb.Middle, bb.Lower)

		sr := IdentifySupportResistance(prices, params.SRWindow)
		require.LessOrEqual(t, sr.Support, sr.Support2)
		require.LessOrEqual(t, sr.Support2, sr.Resistance2)
		require.LessOrEqual(t, sr.Resistance2, sr.Resistance)

		require.GreaterOrEqual(t, CalculateATR(prices, params.ATRPeriod), 0.0)
	}
}

func TestCalculateAllIndicators(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	prices := randomWalk(r, 168, 50000)

	h := &model.History{}
	for i, p := range prices {
		ts := int64(i) * 3_600_000
		h.Prices = append(h.Prices, model.PricePoint{Timestamp: ts, Price: p})
		h.Volumes = append(h.Volumes, model.VolumePoint{Timestamp: ts, Volume: 100 + float64(i%5)})
	}
	before := append(model.PriceSeries(nil), h.Prices...)

	ind := CalculateAllIndicators(h, DefaultParams())
	require.Equal(t, before, h.Prices, "history must not be modified")
	require.Equal(t, CalculateRSI(prices, 14), ind.RSI)
	require.Equal(t, CalculateMACD(prices, 12, 26), ind.MACD)
	require.Greater(t, ind.ATR, 0.0)
	require.Greater(t, ind.VolumeRatio, 0.0)
	require.NotEmpty(t, ind.VolumeProfile)
	require.False(t, math.IsNaN(ind.Bollinger.Upper))

	var total float64
	for _, b := range ind.VolumeProfile {
		total += b.Volume
	}
	var want float64
	for _, v := range h.Volumes[len(h.Volumes)-24:] {
		want += v.Volume
	}
	require.InDelta(t, want, total, 1e-9)
}
