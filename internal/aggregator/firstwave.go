package aggregator

import (
	"github.com/perfhelf/FXview/internal/classifier"
	"github.com/perfhelf/FXview/internal/contracts"
)

// WeeklyInput is the raw weekly first-wave reading
type WeeklyInput struct {
	RSI  contracts.Signal
	MACD classifier.MACDCounts
	ADX  classifier.ADXCounts
}

// WeeklySignals is the weekly first-wave stage consumed by the commander
type WeeklySignals struct {
	RSI  contracts.Signal
	MACD General // long, short, waning or none
	ADX  General // long, short, both, waning or none
}

// DailyInput is the raw daily first-wave reading
type DailyInput struct {
	RSI  contracts.Signal
	MACD classifier.MACDCounts
	ADX  classifier.ADXCounts
}

// FirstWaveResult is the commander's decision and the per-indicator pairs it reports
type FirstWaveResult struct {
	Status  contracts.Status
	RSI     General
	MACD    General
	ADX     General
	ADXD    General
	Signals contracts.SignalSet
	// Trace lists the matched rule of each chain, for debugging
	Trace   []string
}

type macdZones struct {
	classifier.MACDCounts
	BothBelow bool
	BothAbove bool
	Cross     bool
}

func zonesOf(c classifier.MACDCounts) macdZones {
	return macdZones{
		MACDCounts: c,
		BothBelow:  c.DIF < 0 && c.DEA < 0,
		BothAbove:  c.DIF > 0 && c.DEA > 0,
		Cross:      (c.DIF > 0 && c.DEA < 0) || (c.DIF < 0 && c.DEA > 0) || c.DIF == 0 || c.DEA == 0,
	}
}

var weeklyMACDRules = []Rule[macdZones, General]{
	{"below_zero_rising", func(z macdZones) bool { return z.BothBelow && z.Up >= 3 }, GeneralLong},
	{"above_zero_falling", func(z macdZones) bool { return z.BothAbove && z.Down >= 3 }, GeneralShort},
	{"crossing_rising", func(z macdZones) bool { return z.Cross && z.Up >= 3 }, GeneralLong},
	{"crossing_falling", func(z macdZones) bool { return z.Cross && z.Down >= 3 }, GeneralShort},
	{"above_zero_rising", func(z macdZones) bool { return z.BothAbove && z.Up >= 3 }, GeneralWaning},
	{"below_zero_falling", func(z macdZones) bool { return z.BothBelow && z.Down >= 3 }, GeneralWaning},
}

var weeklyADXRules = []Rule[classifier.ADXCounts, General]{
	{"plus_rising_below", func(c classifier.ADXCounts) bool { return c.PUp >= 1 && c.PBelow >= 6 }, GeneralLong},
	{"minus_rising_below", func(c classifier.ADXCounts) bool { return c.MUp >= 1 && c.MBelow >= 6 }, GeneralShort},
	{"both_rising", func(c classifier.ADXCounts) bool { return c.PUp >= 1 && c.MUp >= 2 }, GeneralBoth},
	{"both_falling", func(c classifier.ADXCounts) bool { return c.PDown >= 1 && c.MDown >= 2 }, GeneralBoth},
	{"plus_exhausted_turning", func(c classifier.ADXCounts) bool { return c.PUp == 3 && c.PAbove >= 6 && c.PDown >= 1 }, GeneralShort},
	{"plus_exhausted", func(c classifier.ADXCounts) bool { return c.PUp == 3 && c.PAbove >= 6 }, GeneralWaning},
	{"minus_exhausted_turning", func(c classifier.ADXCounts) bool { return c.MUp == 3 && c.MAbove >= 6 && c.MDown >= 1 }, GeneralLong},
	{"minus_exhausted", func(c classifier.ADXCounts) bool { return c.MUp == 3 && c.MAbove >= 6 }, GeneralWaning},
}

var dailyADXRules = []Rule[classifier.ADXCounts, General]{
	{"plus_rising_below", func(c classifier.ADXCounts) bool { return c.PUp >= 1 && c.PBelow >= 6 }, GeneralLong},
	{"minus_rising_below", func(c classifier.ADXCounts) bool { return c.MUp >= 1 && c.MBelow >= 6 }, GeneralShort},
	{"both_rising", func(c classifier.ADXCounts) bool { return c.PUp >= 1 && c.MUp >= 2 }, GeneralBoth},
	{"both_falling", func(c classifier.ADXCounts) bool { return c.PDown >= 1 && c.MDown >= 2 }, GeneralBoth},
	{"plus_rising_above", func(c classifier.ADXCounts) bool { return c.PUp >= 1 && c.PAbove >= 6 }, GeneralWait},
	{"minus_rising_above", func(c classifier.ADXCounts) bool { return c.MUp >= 2 && c.MAbove >= 6 }, GeneralWait},
}

type rsiPair struct{ D, W contracts.Signal }

var rsiGeneralRules = []Rule[rsiPair, General]{
	{"long_long", func(p rsiPair) bool { return p.D.OnlyLong() && p.W.OnlyLong() }, GeneralLong},
	{"short_short", func(p rsiPair) bool { return p.D.OnlyShort() && p.W.OnlyShort() }, GeneralShort},
	{"both_long", func(p rsiPair) bool { return p.D.Both() && p.W.OnlyLong() }, GeneralLong},
	{"both_short", func(p rsiPair) bool { return p.D.Both() && p.W.OnlyShort() }, GeneralShort},
	{"long_both", func(p rsiPair) bool { return p.D.OnlyLong() && p.W.Both() }, GeneralLong},
	{"short_both", func(p rsiPair) bool { return p.D.OnlyShort() && p.W.Both() }, GeneralShort},
	{"long_short", func(p rsiPair) bool { return p.D.OnlyLong() && p.W.OnlyShort() }, GeneralWait},
	{"short_long", func(p rsiPair) bool { return p.D.OnlyShort() && p.W.OnlyLong() }, GeneralWait},
	{"both_both", func(p rsiPair) bool { return p.D.Both() && p.W.Both() }, GeneralBoth},
}

type macdPair struct {
	D contracts.Signal // daily Up>=3 / Down>=3
	W General
}

func (p macdPair) dailyWait() bool { return p.D.None() }

var macdGeneralRules = []Rule[macdPair, General]{
	{"weekly_waning", func(p macdPair) bool { return p.W == GeneralWaning }, GeneralWait},
	{"long_long", func(p macdPair) bool { return p.D.Long && p.W == GeneralLong }, GeneralLong},
	{"short_short", func(p macdPair) bool { return p.D.Short && p.W == GeneralShort }, GeneralShort},
	{"long_short", func(p macdPair) bool { return p.D.Long && p.W == GeneralShort }, GeneralBoth},
	{"short_long", func(p macdPair) bool { return p.D.Short && p.W == GeneralLong }, GeneralBoth},
	{"flat_long", func(p macdPair) bool { return p.dailyWait() && p.W == GeneralLong }, GeneralLong},
	{"flat_short", func(p macdPair) bool { return p.dailyWait() && p.W == GeneralShort }, GeneralShort},
}

type adxPair struct{ D, W General }

var adxGeneralRules = []Rule[adxPair, General]{
	{"waiting", func(p adxPair) bool { return p.D == GeneralWait || p.W == GeneralWaning }, GeneralWait},
	{"long_long", func(p adxPair) bool { return p.D == GeneralLong && p.W == GeneralLong }, GeneralLong},
	{"short_short", func(p adxPair) bool { return p.D == GeneralShort && p.W == GeneralShort }, GeneralShort},
	{"long_short", func(p adxPair) bool { return p.D == GeneralLong && p.W == GeneralShort }, GeneralBoth},
	{"short_long", func(p adxPair) bool { return p.D == GeneralShort && p.W == GeneralLong }, GeneralBoth},
	{"both_long", func(p adxPair) bool { return p.D == GeneralBoth && p.W == GeneralLong }, GeneralLong},
	{"both_short", func(p adxPair) bool { return p.D == GeneralBoth && p.W == GeneralShort }, GeneralShort},
	{"long_both", func(p adxPair) bool { return p.D == GeneralLong && p.W == GeneralBoth }, GeneralLong},
	{"short_both", func(p adxPair) bool { return p.D == GeneralShort && p.W == GeneralBoth }, GeneralShort},
	{"both_both", func(p adxPair) bool { return p.D == GeneralBoth && p.W == GeneralBoth }, GeneralBoth},
}

// WeeklyFirstWave reduces the weekly counts to per-indicator readings
func WeeklyFirstWave(in WeeklyInput) WeeklySignals {
	macd, _ := FirstMatch(weeklyMACDRules, zonesOf(in.MACD), GeneralNone)
	adx, _ := FirstMatch(weeklyADXRules, in.ADX, GeneralNone)
	return WeeklySignals{RSI: in.RSI, MACD: macd, ADX: adx}
}

// DailyMACD is the daily first-wave MACD reading: long at 3+ rising votes, short at 3+ falling
func DailyMACD(c classifier.MACDCounts) contracts.Signal {
	return contracts.Signal{Long: c.Up >= 3, Short: c.Down >= 3}
}

// DailyADX runs the daily ADX chain
func DailyADX(c classifier.ADXCounts) General {
	g, _ := FirstMatch(dailyADXRules, c, GeneralNone)
	return g
}

// Commander combines the daily reading with the weekly stage.
// Any wait on RSI, MACD or ADX yields no first wave.
func Commander(daily DailyInput, weekly WeeklySignals) FirstWaveResult {
	macdD := DailyMACD(daily.MACD)
	adxD, adxDRule := FirstMatch(dailyADXRules, daily.ADX, GeneralNone)

	rsi, rsiRule := FirstMatch(rsiGeneralRules, rsiPair{D: daily.RSI, W: weekly.RSI}, GeneralNone)
	macd, macdRule := FirstMatch(macdGeneralRules, macdPair{D: macdD, W: weekly.MACD}, GeneralNone)
	adx, adxRule := FirstMatch(adxGeneralRules, adxPair{D: adxD, W: weekly.ADX}, GeneralNone)

	res := FirstWaveResult{
		RSI:  rsi,
		MACD: macd,
		ADX:  adx,
		ADXD: adxD,
		Signals: contracts.SignalSet{
			RSI:  contracts.SignalPair{D: daily.RSI, W: weekly.RSI},
			MACD: contracts.SignalPair{D: macdD, W: weekly.MACD.Sides()},
			ADX:  contracts.SignalPair{D: adxD.Sides(), W: weekly.ADX.Sides()},
		},
		Trace: []string{
			"adx_daily:" + adxDRule,
			"rsi:" + rsiRule,
			"macd:" + macdRule,
			"adx:" + adxRule,
		},
	}

	if rsi == GeneralWait || macd == GeneralWait || adx == GeneralWait {
		return res
	}

	long := (rsi == GeneralLong || rsi == GeneralBoth) &&
		macd == GeneralLong &&
		(adx == GeneralLong || adx == GeneralBoth)
	short := (rsi == GeneralShort || rsi == GeneralBoth) &&
		macd == GeneralShort &&
		(adx == GeneralShort || adx == GeneralBoth)
	res.Status = contracts.StatusFromSides(long, short)
	return res
}
