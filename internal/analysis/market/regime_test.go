package market

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Alias1177/CryptoPredictor/internal/model"
)

func ramp(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func zigzag(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i%2)
	}
	return out
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestClassifyRegime(t *testing.T) {
	t.Run("short series", func(t *testing.T) {
		require.Equal(t, model.UnknownRegime(), ClassifyRegime(ramp(10, 100, 1)))
	})

	t.Run("uptrend", func(t *testing.T) {
		r := ClassifyRegime(ramp(60, 100, 1))
		require.Equal(t, model.RegimeTrending, r.Type)
		require.Equal(t, model.DirectionUp, r.Direction)
		require.Equal(t, model.VolatilityNormal, r.Volatility)
		require.InDelta(t, 1.0, r.Strength, 1e-9)
		require.Greater(t, r.Momentum, 0.0)
	})

	t.Run("downtrend", func(t *testing.T) {
		r := ClassifyRegime(ramp(60, 200, -1))
		require.Equal(t, model.RegimeTrending, r.Type)
		require.Equal(t, model.DirectionDown, r.Direction)
	})

	t.Run("range", func(t *testing.T) {
		r := ClassifyRegime(zigzag(60))
		require.Equal(t, model.RegimeRanging, r.Type)
		require.InDelta(t, 1.0, r.Strength, 1e-9)
	})

	t.Run("flat", func(t *testing.T) {
		r := ClassifyRegime(constant(60, 100))
		require.Equal(t, model.RegimeRanging, r.Type)
		require.Equal(t, model.VolatilityLow, r.Volatility)
		require.Equal(t, model.DirectionNeutral, r.Direction)
	})
}

func TestDetectAnomalies(t *testing.T) {
	t.Run("short series", func(t *testing.T) {
		require.False(t, DetectAnomalies(ramp(10, 100, 1), constant(10, 1)).Detected)
	})

	t.Run("quiet market", func(t *testing.T) {
		a := DetectAnomalies(zigzag(60), constant(60, 10))
		require.False(t, a.Detected)
		require.Empty(t, a.Kinds)
	})

	t.Run("price spike", func(t *testing.T) {
		prices := zigzag(60)
		prices[59] = prices[58] + 20

		a := DetectAnomalies(prices, constant(60, 10))
		require.True(t, a.Detected)
		require.Equal(t, []string{model.AnomalyPriceSpike}, a.Kinds)
		require.Equal(t, 1.0, a.Score)
		require.Len(t, a.Details, 1)
	})

	t.Run("volume spike", func(t *testing.T) {
		volumes := constant(60, 10)
		volumes[59] = 100

		a := DetectAnomalies(zigzag(60), volumes)
		require.True(t, a.Detected)
		require.Equal(t, []string{model.AnomalyVolumeSpike}, a.Kinds)
		require.Equal(t, 1.0, a.Score)
	})

	t.Run("extreme rsi on steady climb", func(t *testing.T) {
		a := DetectAnomalies(ramp(60, 100, 1), constant(60, 10))
		require.True(t, a.Detected)
		require.Contains(t, a.Kinds, model.AnomalyExtremeRSI)
	})
}
