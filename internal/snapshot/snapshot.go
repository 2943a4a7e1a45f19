// Package snapshot assembles per-symbol output records and renders the flat listing.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/perfhelf/FXview/internal/contracts"
)

// Parts are the computed pieces of one symbol's snapshot
type Parts struct {
	TrendStatus contracts.Status
	FWStatus    contracts.Status
	Slopes      contracts.EMASlopes
	Signals     contracts.SignalSet
	FWSignals   contracts.SignalSet
}

// Assemble builds the snapshot record for symbol stamped with at (UTC).
// The result is already sanitized.
func Assemble(symbol string, at time.Time, parts Parts) *contracts.SymbolSnapshot {
	snap := &contracts.SymbolSnapshot{
		Symbol:      symbol,
		LastUpdate:  at.UTC(),
		TrendStatus: parts.TrendStatus,
		FWStatus:    parts.FWStatus,
		EMASlopes:   parts.Slopes,
		Signals:     parts.Signals,
		FWSignals:   parts.FWSignals,
	}
	return Sanitize(snap)
}

// Sanitize returns a copy with every NaN or infinite float replaced by 0
func Sanitize(snap *contracts.SymbolSnapshot) *contracts.SymbolSnapshot {
	if snap == nil {
		return nil
	}
	out := *snap
	out.EMASlopes.Short = sanitizeSet(out.EMASlopes.Short)
	out.EMASlopes.Mid = sanitizeSet(out.EMASlopes.Mid)
	out.EMASlopes.Long = sanitizeSet(out.EMASlopes.Long)
	return &out
}

func sanitizeSet(s contracts.SlopeSet) contracts.SlopeSet {
	for i := range s.D {
		s.D[i] = finiteOrZero(s.D[i])
		s.W[i] = finiteOrZero(s.W[i])
	}
	return s
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Listing keys snapshots by symbol; a later duplicate replaces an earlier one
func Listing(snaps []*contracts.SymbolSnapshot) map[string]*contracts.SymbolSnapshot {
	out := make(map[string]*contracts.SymbolSnapshot, len(snaps))
	for _, s := range snaps {
		if s == nil {
			continue
		}
		out[s.Symbol] = Sanitize(s)
	}
	return out
}

// WriteListing writes {symbol: payload} as indented JSON
func WriteListing(w io.Writer, snaps []*contracts.SymbolSnapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Listing(snaps)); err != nil {
		return fmt.Errorf("failed to write listing: %w", err)
	}
	return nil
}
