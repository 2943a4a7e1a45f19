package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/perfhelf/FXview/internal/classifier"
	"github.com/perfhelf/FXview/internal/contracts"
)

func TestWeeklyMACDChain(t *testing.T) {
	tests := []struct {
		name string
		in   classifier.MACDCounts
		want General
	}{
		{"below zero rising", classifier.MACDCounts{DIF: -1, DEA: -2, Up: 3}, GeneralLong},
		{"above zero falling", classifier.MACDCounts{DIF: 1, DEA: 2, Down: 4}, GeneralShort},
		{"crossing rising", classifier.MACDCounts{DIF: 0.5, DEA: -0.5, Up: 5}, GeneralLong},
		{"crossing falling", classifier.MACDCounts{DIF: -0.5, DEA: 0.5, Down: 3}, GeneralShort},
		{"zero dea counts as crossing", classifier.MACDCounts{DIF: 1, DEA: 0, Up: 3}, GeneralLong},
		{"above zero rising wanes", classifier.MACDCounts{DIF: 1, DEA: 2, Up: 3}, GeneralWaning},
		{"below zero falling wanes", classifier.MACDCounts{DIF: -1, DEA: -2, Down: 3}, GeneralWaning},
		{"too few votes", classifier.MACDCounts{DIF: -1, DEA: -2, Up: 2, Down: 2}, GeneralNone},
		{"empty", classifier.MACDCounts{}, GeneralNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeeklyFirstWave(WeeklyInput{MACD: tt.in})
			assert.Equal(t, tt.want, got.MACD)
		})
	}
}

func TestWeeklyADXChain(t *testing.T) {
	tests := []struct {
		name string
		in   classifier.ADXCounts
		want General
	}{
		{"plus rising below", classifier.ADXCounts{PUp: 1, PBelow: 6}, GeneralLong},
		{"minus rising below", classifier.ADXCounts{MUp: 1, MBelow: 7}, GeneralShort},
		{"both rising", classifier.ADXCounts{PUp: 1, MUp: 2}, GeneralBoth},
		{"both falling", classifier.ADXCounts{PDown: 1, MDown: 2}, GeneralBoth},
		{"plus exhausted turning", classifier.ADXCounts{PUp: 3, PDown: 1, PAbove: 9}, GeneralShort},
		{"plus exhausted", classifier.ADXCounts{PUp: 3, PAbove: 6}, GeneralWaning},
		{"minus exhausted turning", classifier.ADXCounts{MUp: 3, MDown: 1, MAbove: 6}, GeneralLong},
		{"minus exhausted", classifier.ADXCounts{MUp: 3, MAbove: 8}, GeneralWaning},
		{"plus rising below wins first", classifier.ADXCounts{PUp: 1, PBelow: 6, MUp: 1, MBelow: 6}, GeneralLong},
		{"nothing", classifier.ADXCounts{PBelow: 9}, GeneralNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeeklyFirstWave(WeeklyInput{ADX: tt.in})
			assert.Equal(t, tt.want, got.ADX)
		})
	}
}

func TestWeeklyFirstWave_PassesRSI(t *testing.T) {
	got := WeeklyFirstWave(WeeklyInput{RSI: contracts.ShortOnly})
	assert.Equal(t, contracts.ShortOnly, got.RSI)
}

func TestDailyADX(t *testing.T) {
	tests := []struct {
		name string
		in   classifier.ADXCounts
		want General
	}{
		{"plus rising below", classifier.ADXCounts{PUp: 2, PBelow: 6}, GeneralLong},
		{"minus rising below", classifier.ADXCounts{MUp: 1, MBelow: 6}, GeneralShort},
		{"both rising", classifier.ADXCounts{PUp: 1, MUp: 3}, GeneralBoth},
		{"both falling", classifier.ADXCounts{PDown: 3, MDown: 2}, GeneralBoth},
		{"plus rising above waits", classifier.ADXCounts{PUp: 1, PAbove: 6}, GeneralWait},
		{"minus rising above waits", classifier.ADXCounts{MUp: 2, MAbove: 6}, GeneralWait},
		{"single minus rise above", classifier.ADXCounts{MUp: 1, MAbove: 9}, GeneralNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DailyADX(tt.in))
		})
	}
}

func TestRSIGeneralChain(t *testing.T) {
	tests := []struct {
		name string
		d, w contracts.Signal
		want General
	}{
		{"long long", l, l, GeneralLong},
		{"short short", s, s, GeneralShort},
		{"both long", b, l, GeneralLong},
		{"both short", b, s, GeneralShort},
		{"long both", l, b, GeneralLong},
		{"short both", s, b, GeneralShort},
		{"long short", l, s, GeneralWait},
		{"short long", s, l, GeneralWait},
		{"both both", b, b, GeneralBoth},
		{"neutral daily", n, l, GeneralNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := FirstMatch(rsiGeneralRules, rsiPair{D: tt.d, W: tt.w}, GeneralNone)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMACDGeneralChain(t *testing.T) {
	tests := []struct {
		name string
		d    contracts.Signal
		w    General
		want General
	}{
		{"weekly waning", l, GeneralWaning, GeneralWait},
		{"long long", l, GeneralLong, GeneralLong},
		{"short short", s, GeneralShort, GeneralShort},
		{"long short", l, GeneralShort, GeneralBoth},
		{"short long", s, GeneralLong, GeneralBoth},
		{"flat long", n, GeneralLong, GeneralLong},
		{"flat short", n, GeneralShort, GeneralShort},
		{"weekly none", l, GeneralNone, GeneralNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := FirstMatch(macdGeneralRules, macdPair{D: tt.d, W: tt.w}, GeneralNone)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestADXGeneralChain(t *testing.T) {
	tests := []struct {
		name string
		d, w General
		want General
	}{
		{"daily wait", GeneralWait, GeneralLong, GeneralWait},
		{"weekly waning", GeneralLong, GeneralWaning, GeneralWait},
		{"long long", GeneralLong, GeneralLong, GeneralLong},
		{"short short", GeneralShort, GeneralShort, GeneralShort},
		{"long short", GeneralLong, GeneralShort, GeneralBoth},
		{"short long", GeneralShort, GeneralLong, GeneralBoth},
		{"both long", GeneralBoth, GeneralLong, GeneralLong},
		{"both short", GeneralBoth, GeneralShort, GeneralShort},
		{"long both", GeneralLong, GeneralBoth, GeneralLong},
		{"short both", GeneralShort, GeneralBoth, GeneralShort},
		{"both both", GeneralBoth, GeneralBoth, GeneralBoth},
		{"daily none", GeneralNone, GeneralLong, GeneralNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := FirstMatch(adxGeneralRules, adxPair{D: tt.d, W: tt.w}, GeneralNone)
			assert.Equal(t, tt.want, got)
		})
	}
}

func longDaily() DailyInput {
	return DailyInput{
		RSI:  contracts.LongOnly,
		MACD: classifier.MACDCounts{DIF: -1, DEA: -1, Up: 4, Down: 1},
		ADX:  classifier.ADXCounts{PUp: 2, MDown: 1, PBelow: 9},
	}
}

func TestCommander(t *testing.T) {
	longWeekly := WeeklySignals{RSI: contracts.LongOnly, MACD: GeneralLong, ADX: GeneralLong}

	t.Run("long first wave", func(t *testing.T) {
		got := Commander(longDaily(), longWeekly)

		assert.Equal(t, contracts.StatusLong, got.Status)
		assert.Equal(t, GeneralLong, got.RSI)
		assert.Equal(t, GeneralLong, got.MACD)
		assert.Equal(t, GeneralLong, got.ADX)
		assert.Equal(t, contracts.SignalPair{D: contracts.LongOnly, W: contracts.LongOnly}, got.Signals.RSI)
		assert.Equal(t, contracts.SignalPair{D: contracts.LongOnly, W: contracts.LongOnly}, got.Signals.MACD)
		assert.Equal(t, contracts.SignalPair{D: contracts.LongOnly, W: contracts.LongOnly}, got.Signals.ADX)
		assert.Len(t, got.Trace, 4)
	})

	t.Run("rsi both still carries long", func(t *testing.T) {
		daily := longDaily()
		daily.RSI = contracts.BothSides
		weekly := longWeekly
		weekly.RSI = contracts.BothSides

		got := Commander(daily, weekly)
		assert.Equal(t, contracts.StatusLong, got.Status)
		assert.Equal(t, GeneralBoth, got.RSI)
	})

	t.Run("short first wave", func(t *testing.T) {
		daily := DailyInput{
			RSI:  contracts.ShortOnly,
			MACD: classifier.MACDCounts{DIF: 1, DEA: 1, Down: 5},
			ADX:  classifier.ADXCounts{PUp: 1, MUp: 3},
		}
		weekly := WeeklySignals{RSI: contracts.ShortOnly, MACD: GeneralShort, ADX: GeneralShort}

		got := Commander(daily, weekly)
		assert.Equal(t, contracts.StatusShort, got.Status)
		assert.Equal(t, GeneralBoth, got.ADXD)
		assert.Equal(t, contracts.Neutral, got.Signals.ADX.D)
		assert.Equal(t, contracts.ShortOnly, got.Signals.ADX.W)
	})

	t.Run("rsi disagreement waits", func(t *testing.T) {
		weekly := longWeekly
		weekly.RSI = contracts.ShortOnly

		got := Commander(longDaily(), weekly)
		assert.Equal(t, contracts.StatusNone, got.Status)
		assert.Equal(t, GeneralWait, got.RSI)
	})

	t.Run("weekly macd waning waits", func(t *testing.T) {
		weekly := longWeekly
		weekly.MACD = GeneralWaning

		got := Commander(longDaily(), weekly)
		assert.Equal(t, contracts.StatusNone, got.Status)
		assert.Equal(t, contracts.Neutral, got.Signals.MACD.W)
	})

	t.Run("daily adx wait", func(t *testing.T) {
		daily := longDaily()
		daily.ADX = classifier.ADXCounts{PUp: 1, PAbove: 9}

		got := Commander(daily, longWeekly)
		assert.Equal(t, contracts.StatusNone, got.Status)
		assert.Equal(t, GeneralWait, got.ADX)
	})

	t.Run("macd both blocks both sides", func(t *testing.T) {
		weekly := longWeekly
		weekly.MACD = GeneralShort

		got := Commander(longDaily(), weekly)
		assert.Equal(t, GeneralBoth, got.MACD)
		assert.Equal(t, contracts.StatusNone, got.Status)
	})

	t.Run("insufficient weekly data", func(t *testing.T) {
		got := Commander(longDaily(), WeeklySignals{})
		assert.Equal(t, contracts.StatusNone, got.Status)
		assert.Equal(t, contracts.Neutral, got.Signals.RSI.W)
	})
}
