package aggregator

import "github.com/perfhelf/FXview/internal/contracts"

// TrendInput is the standard daily and weekly signal of each indicator
type TrendInput struct {
	RSI  contracts.SignalPair
	MACD contracts.SignalPair
	ADX  contracts.SignalPair
}

// TrendResult is the trend status with the tallies behind it
type TrendResult struct {
	Status     contracts.Status
	RSI        General
	MACD       General
	ADX        General
	LongVotes  int
	ShortVotes int
	BothVotes  int
}

// generalOf: long/short only when daily and weekly agree with no opposing flag.
// withWait makes the all-false case a wait (RSI); otherwise it is both.
func generalOf(p contracts.SignalPair, withWait bool) General {
	d, w := p.D, p.W
	switch {
	case d.Long && w.Long && !d.Short && !w.Short:
		return GeneralLong
	case d.Short && w.Short && !d.Long && !w.Long:
		return GeneralShort
	case withWait && d.None() && w.None():
		return GeneralWait
	}
	return GeneralBoth
}

// Trend combines the three indicators. An RSI wait gates the status to 0;
// opposing long and short votes suppress any trend.
func Trend(in TrendInput) TrendResult {
	res := TrendResult{
		RSI:  generalOf(in.RSI, true),
		MACD: generalOf(in.MACD, false),
		ADX:  generalOf(in.ADX, false),
	}
	if res.RSI == GeneralWait {
		return res
	}

	for _, g := range []General{res.RSI, res.MACD, res.ADX} {
		switch g {
		case GeneralLong:
			res.LongVotes++
		case GeneralShort:
			res.ShortVotes++
		case GeneralBoth:
			res.BothVotes++
		}
	}

	if res.LongVotes > 0 && res.ShortVotes > 0 {
		return res
	}

	long := carries(res.LongVotes, res.BothVotes)
	short := carries(res.ShortVotes, res.BothVotes)
	res.Status = contracts.StatusFromSides(long, short)
	return res
}

func carries(side, both int) bool {
	return side == 3 || (side == 2 && both == 1) || (side == 1 && both == 2) || both == 3
}
