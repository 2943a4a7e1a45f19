// Package timeframe derives higher-granularity series from daily bars.
package timeframe

import (
	"time"

	"github.com/perfhelf/FXview/internal/contracts"
)

// WeekEnding returns the Friday closing t's week (Saturday and Sunday roll forward
// to the following Friday), at midnight UTC.
func WeekEnding(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Friday) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

// Weekly resamples a daily series into Friday-ending weeks:
// Close is the last close, High the max high, Low the min low.
// Weeks without daily bars are absent. Resampling a weekly series returns it unchanged.
func Weekly(series *contracts.InstrumentSeries) *contracts.InstrumentSeries {
	out := &contracts.InstrumentSeries{Symbol: series.Symbol}
	if series.Len() == 0 {
		return out
	}

	out.Bars = make([]contracts.Bar, 0, series.Len()/5+1)
	for _, bar := range series.Bars {
		week := WeekEnding(bar.Date)
		n := len(out.Bars)
		if n > 0 && out.Bars[n-1].Date.Equal(week) {
			cur := &out.Bars[n-1]
			cur.Close = bar.Close
			if bar.High > cur.High {
				cur.High = bar.High
			}
			if bar.Low < cur.Low {
				cur.Low = bar.Low
			}
			continue
		}
		out.Bars = append(out.Bars, contracts.Bar{Date: week, Close: bar.Close, High: bar.High, Low: bar.Low})
	}
	return out
}
