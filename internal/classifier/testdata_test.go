package classifier

// bars builds high/low/close columns from a close path with a fixed half-range
func bars(closes []float64, halfRange float64) (high, low, close []float64) {
	high = make([]float64, len(closes))
	low = make([]float64, len(closes))
	for i, c := range closes {
		high[i] = c + halfRange
		low[i] = c - halfRange
	}
	return high, low, closes
}

func ramp(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func flat(n int, v float64) []float64 {
	return ramp(n, v, 0)
}

// flatThenRamp is n flat bars followed by k bars moving by step each
func flatThenRamp(n, k int, v, step float64) []float64 {
	out := flat(n, v)
	for i := 1; i <= k; i++ {
		out = append(out, v+float64(i)*step)
	}
	return out
}
