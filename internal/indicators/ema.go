package indicators

import "math"

// EMA is the exponential moving average with alpha = 2/(length+1),
// seeded from the first defined value without bias correction.
func EMA(series []float64, length int) []float64 {
	if length < 1 {
		return nanSlice(len(series))
	}
	return ewm(series, 2.0/float64(length+1))
}

// ewm is the recursive average y = (1-a)*y + a*x seeded with the first defined x.
// Leading undefined inputs stay NaN; later ones hold the previous average.
func ewm(series []float64, alpha float64) []float64 {
	out := nanSlice(len(series))
	seeded := false
	avg := 0.0

	for i, v := range series {
		if math.IsNaN(v) {
			if seeded {
				out[i] = avg
			}
			continue
		}
		if !seeded {
			avg = v
			seeded = true
		} else {
			avg = (1-alpha)*avg + alpha*v
		}
		out[i] = avg
	}
	return out
}
