package indicators

import (
	"math"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
)

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// SMA is the plain rolling mean over window points.
// A position is NaN when its window holds an undefined value or fewer than window points.
func SMA(series []float64, window int) []float64 {
	out := nanSlice(len(series))
	if window <= 0 {
		return out
	}

	// cinar operates on a gap-free stream, so feed it each maximal run of defined values
	start := -1
	for i := 0; i <= len(series); i++ {
		defined := i < len(series) && !math.IsNaN(series[i])
		if defined && start < 0 {
			start = i
			continue
		}
		if !defined && start >= 0 {
			smaRun(series[start:i], window, out[start:i])
			start = -1
		}
	}
	return out
}

func smaRun(run []float64, window int, dst []float64) {
	if len(run) < window {
		return
	}
	if window == 1 {
		copy(dst, run)
		return
	}

	sma := trend.NewSmaWithPeriod[float64](window)
	avg := helper.ChanToSlice(sma.Compute(helper.SliceToChan(run)))
	copy(dst[len(dst)-len(avg):], avg)
}

// Diff returns v[i] - v[i-1]; the first value is NaN
func Diff(series []float64) []float64 {
	out := nanSlice(len(series))
	for i := 1; i < len(series); i++ {
		out[i] = series[i] - series[i-1]
	}
	return out
}

// PercentChange returns (v[i] - v[i-1]) / v[i-1] * 100; the first value is NaN
func PercentChange(series []float64) []float64 {
	out := nanSlice(len(series))
	for i := 1; i < len(series); i++ {
		out[i] = (series[i] - series[i-1]) / series[i-1] * 100
	}
	return out
}

// Last returns the final value, NaN for an empty series
func Last(series []float64) float64 {
	if len(series) == 0 {
		return math.NaN()
	}
	return series[len(series)-1]
}

// LastDiff returns the final one-step change, NaN with fewer than two points
func LastDiff(series []float64) float64 {
	if len(series) < 2 {
		return math.NaN()
	}
	return series[len(series)-1] - series[len(series)-2]
}
