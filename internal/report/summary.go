package report

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/avasek/smesim/internal/gridconv"
)

// Summary holds the descriptive statistics of one trajectory batch.
type Summary struct {
	Scheme string  `json:"scheme"`
	Count  int     `json:"count"`
	Failed int     `json:"failed"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize reduces a batch to its rate statistics. Failed trajectories are
// counted but excluded from the moments.
func Summarize(scheme string, results []gridconv.TrajectoryRate) Summary {
	rates := gridconv.Rates(results)
	s := Summary{
		Scheme: scheme,
		Count:  len(results),
		Failed: len(results) - len(rates),
	}
	if len(rates) == 0 {
		s.Mean = math.NaN()
		s.Std = math.NaN()
		s.Median = math.NaN()
		s.Min = math.NaN()
		s.Max = math.NaN()
		return s
	}

	sorted := append([]float64(nil), rates...)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(sorted, nil)
	s.Std = math.Sqrt(stat.Variance(sorted, nil))
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	return s
}

// Histogram bins the successful rates into n equal-width buckets for
// plotting. Returns nil when fewer than two distinct values exist.
func Histogram(results []gridconv.TrajectoryRate, n int) []float64 {
	rates := gridconv.Rates(results)
	if len(rates) == 0 || n <= 0 {
		return nil
	}

	lo, hi := rates[0], rates[0]
	for _, r := range rates[1:] {
		lo = math.Min(lo, r)
		hi = math.Max(hi, r)
	}
	if hi == lo {
		return nil
	}

	bins := make([]float64, n)
	width := (hi - lo) / float64(n)
	for _, r := range rates {
		idx := int((r - lo) / width)
		if idx >= n {
			idx = n - 1
		}
		bins[idx]++
	}
	return bins
}
