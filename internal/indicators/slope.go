package indicators

// SlopeOfAverage smooths the percent change of EMA(series, maLength) over slopeWindow points
func SlopeOfAverage(series []float64, maLength, slopeWindow int) []float64 {
	return SMA(PercentChange(EMA(series, maLength)), slopeWindow)
}

// LastSlopes returns the final SlopeOfAverage value for each EMA length
func LastSlopes(series []float64, emaLengths [4]int, slopeWindow int) [4]float64 {
	var out [4]float64
	for i, l := range emaLengths {
		out[i] = Last(SlopeOfAverage(series, l, slopeWindow))
	}
	return out
}
