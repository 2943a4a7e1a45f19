package contracts

import (
	"math"
	"time"
)

// Bar is one daily (or weekly) observation of an instrument
type Bar struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
}

// Defined reports whether close, high and low are all finite
func (b Bar) Defined() bool {
	return isFinite(b.Close) && isFinite(b.High) && isFinite(b.Low)
}

// InstrumentSeries is a date-ordered bar series for one instrument
// ⭐ SSOT: 날짜 오름차순, 중복 날짜 없음
type InstrumentSeries struct {
	Symbol string `json:"symbol"`
	Bars   []Bar  `json:"bars"`
}

// Len returns the number of bars
func (s *InstrumentSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Closes returns the close column
func (s *InstrumentSeries) Closes() []float64 {
	return s.column(func(b Bar) float64 { return b.Close })
}

// Highs returns the high column
func (s *InstrumentSeries) Highs() []float64 {
	return s.column(func(b Bar) float64 { return b.High })
}

// Lows returns the low column
func (s *InstrumentSeries) Lows() []float64 {
	return s.column(func(b Bar) float64 { return b.Low })
}

func (s *InstrumentSeries) column(pick func(Bar) float64) []float64 {
	out := make([]float64, s.Len())
	for i := range out {
		out[i] = pick(s.Bars[i])
	}
	return out
}

// Last returns the most recent bar
func (s *InstrumentSeries) Last() (Bar, bool) {
	if s.Len() == 0 {
		return Bar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// DropUndefined returns a copy keeping only bars where close, high and low are all finite
func (s *InstrumentSeries) DropUndefined() *InstrumentSeries {
	out := &InstrumentSeries{Symbol: s.Symbol, Bars: make([]Bar, 0, s.Len())}
	for _, b := range s.Bars {
		if b.Defined() {
			out.Bars = append(out.Bars, b)
		}
	}
	return out
}

// RawTable holds the fetched component series keyed by provider ticker.
// Read-only once the fetch completes.
type RawTable map[string]*InstrumentSeries

// Get returns the series for a ticker when present and non-empty
func (t RawTable) Get(ticker string) (*InstrumentSeries, bool) {
	s, ok := t[ticker]
	if !ok || s.Len() == 0 {
		return nil, false
	}
	return s, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
