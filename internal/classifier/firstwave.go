package classifier

import (
	"math"

	"github.com/perfhelf/FXview/internal/contracts"
	"github.com/perfhelf/FXview/internal/indicators"
)

// MACDCounts is the first-wave MACD reading: latest DIF/DEA and strict slope votes
type MACDCounts struct {
	DIF  float64
	DEA  float64
	Up   int
	Down int
}

// ADXCounts is the first-wave ADX reading.
// Slope counts use >= 0 / <= 0; position counts cover every +DI-MA x -DI-MA pair.
type ADXCounts struct {
	PUp    int
	PDown  int
	MUp    int
	MDown  int
	PBelow int
	PAbove int
	MBelow int
	MAbove int
}

// RSIFirstWaveDaily uses all RSI MA lengths with the daily threshold
func (c *Classifier) RSIFirstWaveDaily(close []float64) contracts.Signal {
	return c.rsiFirstWave(close, c.p.RSIMALengths, c.p.RSIDailyMinBars, c.p.RSIDailyThreshold)
}

// RSIFirstWaveWeekly uses the short RSI MA lengths with the weekly threshold
func (c *Classifier) RSIFirstWaveWeekly(close []float64) contracts.Signal {
	return c.rsiFirstWave(close, c.p.ShortMALengths, c.p.RSIWeeklyMinBars, c.p.RSIWeeklyThreshold)
}

// rsiFirstWave checks each side against the threshold independently
func (c *Classifier) rsiFirstWave(close []float64, lengths []int, minBars, threshold int) contracts.Signal {
	rsi := indicators.RSI(close, c.p.RSILength)
	if len(rsi) < minBars {
		return contracts.Neutral
	}
	up, down := TallySlopes(maSlopes(rsi, lengths))
	return contracts.Signal{Long: up >= threshold, Short: down >= threshold}
}

// MACDFirstWave votes on the DIF slope, the DEA slope and the slopes of
// SMA(histogram) for each short length. Zero slopes do not vote.
func (c *Classifier) MACDFirstWave(close []float64) MACDCounts {
	line, signal, hist := indicators.MACD(close, c.p.MACDFast, c.p.MACDSlow, c.p.MACDSignal)
	if len(line) < c.p.MACDMinBars {
		return MACDCounts{}
	}

	dif := indicators.Last(line)
	dea := indicators.Last(signal)
	if math.IsNaN(dif) || math.IsNaN(dea) {
		return MACDCounts{}
	}

	out := MACDCounts{DIF: dif, DEA: dea}
	vote := func(slope float64) {
		switch {
		case slope > 0:
			out.Up++
		case slope < 0:
			out.Down++
		}
	}

	vote(indicators.LastDiff(line))
	vote(indicators.LastDiff(signal))
	for _, slope := range maSlopes(hist, c.p.ShortMALengths) {
		vote(slope)
	}
	return out
}

// ADXFirstWave returns slope and position counts of the +DI and -DI moving averages
func (c *Classifier) ADXFirstWave(high, low, close []float64) ADXCounts {
	plus, minus := indicators.ADXDI(high, low, close, c.p.ADXLength)
	if len(plus) < c.p.ADXMinBars {
		return ADXCounts{}
	}

	pVals := lastAverages(plus, c.p.ADXMALengths)
	mVals := lastAverages(minus, c.p.ADXMALengths)
	if anyNaN(pVals) || anyNaN(mVals) {
		return ADXCounts{}
	}

	var out ADXCounts
	out.PUp, out.PDown = TallySlopes(maSlopes(plus, c.p.ADXMALengths))
	out.MUp, out.MDown = TallySlopes(maSlopes(minus, c.p.ADXMALengths))

	for _, p := range pVals {
		for _, m := range mVals {
			if p < m {
				out.PBelow++
				out.MAbove++
			}
			if p > m {
				out.PAbove++
				out.MBelow++
			}
		}
	}
	return out
}
