package synthetic

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/perfhelf/FXview/internal/contracts"
)

// Builder evaluates synthetic formulas against the fetched component table
// ⭐ SSOT: 합성 지수 계산은 여기서만
type Builder struct {
	tickers  map[string]string // alias -> provider ticker
	formulas map[string]*Formula
}

// NewBuilder parses every formula and checks that it only references known components
func NewBuilder(tickers map[string]string, formulas map[string]string) (*Builder, error) {
	b := &Builder{
		tickers:  make(map[string]string, len(tickers)),
		formulas: make(map[string]*Formula, len(formulas)),
	}
	for alias, ticker := range tickers {
		b.tickers[alias] = ticker
	}

	for symbol, src := range formulas {
		f, err := ParseFormula(src)
		if err != nil {
			return nil, fmt.Errorf("symbol %s: %w", symbol, err)
		}
		for _, v := range f.Variables() {
			if _, ok := b.tickers[v]; !ok {
				return nil, fmt.Errorf("symbol %s: unknown component %q", symbol, v)
			}
		}
		b.formulas[symbol] = f
	}
	return b, nil
}

// Formula returns the parsed formula for a symbol
func (b *Builder) Formula(symbol string) (*Formula, bool) {
	f, ok := b.formulas[symbol]
	return f, ok
}

// Missing lists the aliases of symbol's components absent from the table
func (b *Builder) Missing(symbol string, table contracts.RawTable) []string {
	f, ok := b.formulas[symbol]
	if !ok {
		return nil
	}
	var missing []string
	for _, alias := range f.Variables() {
		if _, ok := table.Get(b.tickers[alias]); !ok {
			missing = append(missing, alias)
		}
	}
	return missing
}

// Build evaluates symbol's formula separately on Close, High and Low over the
// dates shared by every referenced component. When a component is missing the
// bars are still emitted over the present components' shared dates, all NaN.
// The second return is false for an unknown symbol.
func (b *Builder) Build(symbol string, table contracts.RawTable) (*contracts.InstrumentSeries, bool) {
	f, ok := b.formulas[symbol]
	if !ok {
		return nil, false
	}

	aliases := f.Variables()
	present := make(map[string]map[dayKey]contracts.Bar, len(aliases))
	var order []time.Time
	missing := false

	for _, alias := range aliases {
		s, ok := table.Get(b.tickers[alias])
		if !ok {
			missing = true
			continue
		}
		byDay := make(map[dayKey]contracts.Bar, s.Len())
		for _, bar := range s.Bars {
			byDay[keyOf(bar.Date)] = bar
		}
		present[alias] = byDay
		if order == nil {
			order = make([]time.Time, 0, s.Len())
			for _, bar := range s.Bars {
				order = append(order, bar.Date)
			}
		}
	}

	out := &contracts.InstrumentSeries{Symbol: symbol}
	if len(present) == 0 {
		return out, true
	}

	dates := intersect(order, present)
	out.Bars = make([]contracts.Bar, 0, len(dates))

	closes := make(map[string]float64, len(aliases))
	highs := make(map[string]float64, len(aliases))
	lows := make(map[string]float64, len(aliases))

	for _, d := range dates {
		if missing {
			out.Bars = append(out.Bars, contracts.Bar{Date: d, Close: math.NaN(), High: math.NaN(), Low: math.NaN()})
			continue
		}
		k := keyOf(d)
		for alias, byDay := range present {
			bar := byDay[k]
			closes[alias] = bar.Close
			highs[alias] = bar.High
			lows[alias] = bar.Low
		}
		out.Bars = append(out.Bars, contracts.Bar{
			Date:  d,
			Close: f.Eval(closes),
			High:  f.Eval(highs),
			Low:   f.Eval(lows),
		})
	}
	return out, true
}

// intersect keeps the dates present in every component, ascending
func intersect(candidates []time.Time, present map[string]map[dayKey]contracts.Bar) []time.Time {
	out := make([]time.Time, 0, len(candidates))
	for _, d := range candidates {
		k := keyOf(d)
		shared := true
		for _, byDay := range present {
			if _, ok := byDay[k]; !ok {
				shared = false
				break
			}
		}
		if shared {
			out = append(out, dayStart(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dayKey {
	y, m, d := t.Date()
	return dayKey{y, m, d}
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
