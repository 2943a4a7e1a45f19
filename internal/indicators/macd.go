package indicators

// MACD returns the MACD line (EMA fast - EMA slow), its signal EMA and the histogram
func MACD(series []float64, fast, slow, signal int) (line, signalLine, histogram []float64) {
	emaFast := EMA(series, fast)
	emaSlow := EMA(series, slow)

	line = make([]float64, len(series))
	for i := range series {
		line[i] = emaFast[i] - emaSlow[i]
	}

	signalLine = EMA(line, signal)

	histogram = make([]float64, len(series))
	for i := range series {
		histogram[i] = line[i] - signalLine[i]
	}
	return line, signalLine, histogram
}
