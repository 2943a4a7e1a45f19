package indicators

// RSI uses Wilder smoothing (alpha = 1/length) of gains and losses.
// The first length-1 values are NaN. A flat window (0/0) is NaN, a window without losses is 100.
func RSI(series []float64, length int) []float64 {
	n := len(series)
	out := nanSlice(n)
	if length < 1 || n == 0 {
		return out
	}

	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		delta := series[i] - series[i-1]
		if delta > 0 {
			gains[i] = delta
		}
		if delta < 0 {
			losses[i] = -delta
		}
	}

	alpha := 1.0 / float64(length)
	avgGain := ewm(gains, alpha)
	avgLoss := ewm(losses, alpha)

	for i := length - 1; i < n; i++ {
		rs := avgGain[i] / avgLoss[i]
		out[i] = 100 - 100/(1+rs)
	}
	return out
}
