package classifier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/perfhelf/FXview/internal/contracts"
)

func TestTallySlopes(t *testing.T) {
	tests := []struct {
		name     string
		slopes   []float64
		up, down int
	}{
		{"all positive", []float64{1, 2, 3, 4, 5, 6}, 6, 0},
		{"all negative", []float64{-1, -2, -3, -4, -5, -6}, 0, 6},
		{"zero counts both", []float64{0, 1, -1}, 2, 2},
		{"nan skipped", []float64{math.NaN(), 1, math.NaN()}, 1, 0},
		{"empty", nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, down := TallySlopes(tt.slopes)
			assert.Equal(t, tt.up, up)
			assert.Equal(t, tt.down, down)
		})
	}
}

func TestDecideVotes(t *testing.T) {
	tests := []struct {
		name     string
		up, down int
		n        int
		want     contracts.Signal
	}{
		{"six up", 6, 0, 3, contracts.LongOnly},
		{"six down", 0, 6, 3, contracts.ShortOnly},
		{"even split", 3, 3, 3, contracts.BothSides},
		{"below threshold", 2, 2, 3, contracts.Neutral},
		{"nothing", 0, 0, 3, contracts.Neutral},
		{"one-sided above three prefers up", 6, 6, 4, contracts.LongOnly},
		{"one-sided above three short", 1, 5, 4, contracts.ShortOnly},
		{"one-sided above three none", 3, 3, 4, contracts.Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecideVotes(tt.up, tt.down, tt.n))
		})
	}
}

func TestRSIVotes(t *testing.T) {
	c := New(DefaultParams())

	assert.Equal(t, contracts.Neutral, c.RSIVotes(nil, 3))
	assert.Equal(t, contracts.Neutral, c.RSIVotes(ramp(10, 1, 1), 3), "no MA is defined yet")

	// a monotonic rise pins RSI at 100, every MA slope is exactly zero
	assert.Equal(t, contracts.BothSides, c.RSIVotes(ramp(400, 1, 1), 3))
}

func TestMACDSignOf(t *testing.T) {
	tests := []struct {
		name         string
		macd, signal float64
		want         contracts.Signal
	}{
		{"both positive", 1.0, 1.0, contracts.LongOnly},
		{"both negative", -1.0, -1.0, contracts.ShortOnly},
		{"zero macd", 0.0, 0.5, contracts.BothSides},
		{"zero signal", 0.5, 0.0, contracts.BothSides},
		{"undefined macd", math.NaN(), 1.0, contracts.BothSides},
		{"undefined signal", 1.0, math.NaN(), contracts.BothSides},
		{"mixed", 1.0, -1.0, contracts.BothSides},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MACDSignOf(tt.macd, tt.signal))
		})
	}
}

func TestMACDSign(t *testing.T) {
	c := New(DefaultParams())

	assert.Equal(t, contracts.Neutral, c.MACDSign(nil))
	assert.Equal(t, contracts.LongOnly, c.MACDSign(ramp(120, 100, 1)))
	assert.Equal(t, contracts.ShortOnly, c.MACDSign(ramp(120, 300, -1)))
	assert.Equal(t, contracts.BothSides, c.MACDSign([]float64{5}), "single bar: line is exactly zero")
}

func TestADXVote_InsufficientBars(t *testing.T) {
	c := New(DefaultParams())

	for _, closes := range [][]float64{
		ramp(37, 1, 1),
		ramp(37, 100, -1),
		flat(10, 5),
		nil,
	} {
		h, l, cl := bars(closes, 0.5)
		assert.Equal(t, contracts.Neutral, c.ADXVote(h, l, cl))
	}
}

func TestADXVote(t *testing.T) {
	c := New(DefaultParams())

	h, l, cl := bars(ramp(60, 10, 1), 0.5)
	assert.Equal(t, contracts.LongOnly, c.ADXVote(h, l, cl))

	h, l, cl = bars(ramp(60, 100, -1), 0.5)
	assert.Equal(t, contracts.ShortOnly, c.ADXVote(h, l, cl))

	// no directional movement: neither side wins, result passes through as (false, false)
	h, l, cl = bars(flat(60, 10), 0.5)
	assert.Equal(t, contracts.Neutral, c.ADXVote(h, l, cl))
}

func TestADXVotesOf(t *testing.T) {
	tests := []struct {
		name  string
		plus  []float64
		minus []float64
		want  contracts.Signal
	}{
		{"plus dominates", []float64{30, 20, 10}, []float64{25, 15, 5}, contracts.LongOnly},
		{"minus dominates", []float64{25, 15, 5}, []float64{30, 20, 10}, contracts.ShortOnly},
		{"ties do not win", []float64{10, 10, 10}, []float64{10, 10, 10}, contracts.Neutral},
		{"undefined average", []float64{math.NaN(), 20, 10}, []float64{1, 1, 1}, contracts.Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ADXVotesOf(tt.plus, tt.minus, 2, 2))
		})
	}
}
