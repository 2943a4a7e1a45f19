package indicators

import "math"

// ADXDI returns the +DI and -DI series.
// True range and directional movement are smoothed with a plain SMA(length);
// undefined results (warm-up, 0/0) are reported as 0.
func ADXDI(high, low, close []float64, length int) (plusDI, minusDI []float64) {
	n := len(close)
	if len(high) < n {
		n = len(high)
	}
	if len(low) < n {
		n = len(low)
	}

	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)

	for i := 0; i < n; i++ {
		tr[i] = high[i] - low[i]
		if i == 0 {
			continue
		}

		prevClose := close[i-1]
		tr[i] = maxDefined(tr[i], math.Abs(high[i]-prevClose), math.Abs(low[i]-prevClose))

		up := high[i] - high[i-1]
		down := low[i-1] - low[i]
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}

	atr := SMA(tr, length)
	plusAvg := SMA(plusDM, length)
	minusAvg := SMA(minusDM, length)

	plusDI = make([]float64, n)
	minusDI = make([]float64, n)
	for i := 0; i < n; i++ {
		plusDI[i] = zeroIfNaN(plusAvg[i] / atr[i] * 100)
		minusDI[i] = zeroIfNaN(minusAvg[i] / atr[i] * 100)
	}
	return plusDI, minusDI
}

func maxDefined(values ...float64) float64 {
	out := math.NaN()
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(out) || v > out {
			out = v
		}
	}
	return out
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
