// Package classifier turns indicator readings into long/short votes.
package classifier

import (
	"math"

	"github.com/perfhelf/FXview/internal/contracts"
	"github.com/perfhelf/FXview/internal/indicators"
)

// Classifier evaluates the standard and first-wave vote classifiers
// ⭐ SSOT: 투표 분류 로직은 여기서만
type Classifier struct {
	p Params
}

// New creates a classifier with the given params
func New(p Params) *Classifier {
	return &Classifier{p: p}
}

// Params returns the injected params
func (c *Classifier) Params() Params {
	return c.p
}

// RSIVotes votes on the slopes of several moving averages of RSI
func (c *Classifier) RSIVotes(close []float64, nVotes int) contracts.Signal {
	rsi := indicators.RSI(close, c.p.RSILength)
	if len(rsi) == 0 {
		return contracts.Neutral
	}
	up, down := TallySlopes(maSlopes(rsi, c.p.RSIMALengths))
	return DecideVotes(up, down, nVotes)
}

// TallySlopes counts slopes >= 0 as up and <= 0 as down; a zero counts for both.
// Undefined slopes cast no vote.
func TallySlopes(slopes []float64) (up, down int) {
	for _, s := range slopes {
		if math.IsNaN(s) {
			continue
		}
		if s >= 0 {
			up++
		}
		if s <= 0 {
			down++
		}
	}
	return up, down
}

// DecideVotes applies the vote threshold. Up to three votes both sides may fire
// together; above three only one side can.
func DecideVotes(up, down, nVotes int) contracts.Signal {
	if nVotes <= 3 {
		switch {
		case up >= nVotes && down >= nVotes:
			return contracts.BothSides
		case up >= nVotes:
			return contracts.LongOnly
		case down >= nVotes:
			return contracts.ShortOnly
		}
		return contracts.Neutral
	}

	if up >= nVotes {
		return contracts.LongOnly
	}
	if down >= nVotes {
		return contracts.ShortOnly
	}
	return contracts.Neutral
}

// MACDSign classifies the latest MACD line and signal line
func (c *Classifier) MACDSign(close []float64) contracts.Signal {
	if len(close) == 0 {
		return contracts.Neutral
	}
	line, signal, _ := indicators.MACD(close, c.p.MACDFast, c.p.MACDSlow, c.p.MACDSignal)
	return MACDSignOf(indicators.Last(line), indicators.Last(signal))
}

// MACDSignOf: undefined, zero or mixed signs are ambiguous (true, true)
func MACDSignOf(macd, signal float64) contracts.Signal {
	if math.IsNaN(macd) || math.IsNaN(signal) {
		return contracts.BothSides
	}
	if macd == 0 || signal == 0 {
		return contracts.BothSides
	}
	if macd > 0 && signal > 0 {
		return contracts.LongOnly
	}
	if macd < 0 && signal < 0 {
		return contracts.ShortOnly
	}
	return contracts.BothSides
}

// ADXVote compares moving averages of +DI against moving averages of -DI
func (c *Classifier) ADXVote(high, low, close []float64) contracts.Signal {
	plus, minus := indicators.ADXDI(high, low, close, c.p.ADXLength)
	if len(plus) < c.p.ADXMinBars {
		return contracts.Neutral
	}
	return ADXVotesOf(
		lastAverages(plus, c.p.ADXMALengths),
		lastAverages(minus, c.p.ADXMALengths),
		c.p.ADXWinQuorum,
		c.p.ADXVoteQuorum,
	)
}

// ADXVotesOf tallies pairwise wins. A DI-MA that beats at least winQuorum of the
// opposite MAs casts one vote; a side fires with at least voteQuorum votes.
// Any undefined average yields (false, false).
func ADXVotesOf(plusMAs, minusMAs []float64, winQuorum, voteQuorum int) contracts.Signal {
	if anyNaN(plusMAs) || anyNaN(minusMAs) {
		return contracts.Neutral
	}

	longVotes := 0
	for _, p := range plusMAs {
		if countAbove(p, minusMAs) >= winQuorum {
			longVotes++
		}
	}

	shortVotes := 0
	for _, m := range minusMAs {
		if countAbove(m, plusMAs) >= winQuorum {
			shortVotes++
		}
	}

	return contracts.Signal{Long: longVotes >= voteQuorum, Short: shortVotes >= voteQuorum}
}

// maSlopes returns the last one-step change of SMA(series, l) for each length
func maSlopes(series []float64, lengths []int) []float64 {
	out := make([]float64, len(lengths))
	for i, l := range lengths {
		out[i] = indicators.LastDiff(indicators.SMA(series, l))
	}
	return out
}

func lastAverages(series []float64, lengths []int) []float64 {
	out := make([]float64, len(lengths))
	for i, l := range lengths {
		out[i] = indicators.Last(indicators.SMA(series, l))
	}
	return out
}

func countAbove(v float64, others []float64) int {
	n := 0
	for _, o := range others {
		if v > o {
			n++
		}
	}
	return n
}

func anyNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
