package technical

import (
	"math"
	"sort"

	"github.com/Alias1177/CryptoPredictor/internal/model"
)

// CalculateVolumeProfile buckets the last `window` (price, volume) pairs into
// fixed-width price bins and sums volume per bin.
func CalculateVolumeProfile(prices, volumes []float64, window int, bucketSize float64) model.VolumeProfile {
	n := len(prices)
	if len(volumes) < n {
		n = len(volumes)
	}
	if window < n {
		n = window
	}
	if n <= 0 || bucketSize <= 0 {
		return model.VolumeProfile{}
	}

	prices = prices[len(prices)-n:]
	volumes = volumes[len(volumes)-n:]

	totals := make(map[model.PriceBucket]float64)
	for i, p := range prices {
		bucket := model.PriceBucket(math.Floor(p/bucketSize) * bucketSize)
		totals[bucket] += volumes[i]
	}

	profile := make(model.VolumeProfile, 0, len(totals))
	for bucket, vol := range totals {
		profile = append(profile, model.VolumeBucket{Bucket: bucket, Volume: vol})
	}
	sort.Slice(profile, func(i, j int) bool { return profile[i].Bucket < profile[j].Bucket })

	return profile
}

// CalculateVolumeRatio is the most recent volume divided by the mean of the
// last `window` volumes. Returns 0 when there is no volume data.
func CalculateVolumeRatio(volumes []float64, window int) float64 {
	recent := tail(volumes, window)
	if len(recent) == 0 {
		return 0
	}

	var sum float64
	for _, v := range recent {
		sum += v
	}
	mean := sum / float64(len(recent))
	if mean == 0 {
		return 0
	}

	return recent[len(recent)-1] / mean
}
