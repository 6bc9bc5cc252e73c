package analytics

import (
	"math"

	"tradetrackr/internal/models"
)

// DefaultBucketCount is the number of histogram buckets used when the
// caller does not specify one.
const DefaultBucketCount = 10

// Bucket is one bar of the P&L distribution histogram. Ranges are
// inclusive of Lower and exclusive of Upper, except the last bucket
// which includes its upper bound.
type Bucket struct {
	Lower      float64
	Upper      float64
	Count      int
	Percentage float64
	Winning    bool
}

// BuildDistribution bins per-trade P&L into equal-width buckets spanning
// the observed min..max range. Invalid trades are skipped; an empty or
// fully-invalid input yields no buckets.
func BuildDistribution(trades []models.Trade, bucketCount int) []Bucket {
	normalized, _ := NormalizeAll(trades)
	return buildDistribution(normalized, bucketCount)
}

func buildDistribution(trades []NormalizedTrade, bucketCount int) []Bucket {
	if len(trades) == 0 {
		return nil
	}
	if bucketCount <= 0 {
		bucketCount = DefaultBucketCount
	}

	min, max := trades[0].ProfitLoss, trades[0].ProfitLoss
	for _, t := range trades[1:] {
		if t.ProfitLoss < min {
			min = t.ProfitLoss
		}
		if t.ProfitLoss > max {
			max = t.ProfitLoss
		}
	}
	if min == max {
		// All trades share one P&L value. Widen the range so that a
		// well-formed single-bucket histogram still comes out.
		eps := math.Max(math.Abs(min)*0.001, 0.01)
		min -= eps
		max += eps
	}

	width := (max - min) / float64(bucketCount)
	buckets := make([]Bucket, bucketCount)
	for i := range buckets {
		lower := min + float64(i)*width
		buckets[i] = Bucket{
			Lower:   lower,
			Upper:   lower + width,
			Winning: lower+width/2 >= 0,
		}
	}
	buckets[bucketCount-1].Upper = max

	for _, t := range trades {
		idx := int((t.ProfitLoss - min) / width)
		if idx >= bucketCount {
			idx = bucketCount - 1
		}
		buckets[idx].Count++
	}

	total := float64(len(trades))
	for i := range buckets {
		buckets[i].Percentage = float64(buckets[i].Count) / total * 100
	}

	return buckets
}
