// Package aggregator combines daily and weekly classifier outputs into one status per symbol.
package aggregator

import "github.com/perfhelf/FXview/internal/contracts"

// General is the combined reading of one indicator (or one chain stage)
type General int

const (
	GeneralNone General = iota
	GeneralLong
	GeneralShort
	GeneralBoth
	GeneralWait
	// GeneralWaning favors one side while momentum suggests exhaustion.
	// Only the weekly first-wave stage produces it; the commander treats it as a wait.
	GeneralWaning
)

func (g General) String() string {
	switch g {
	case GeneralLong:
		return "long"
	case GeneralShort:
		return "short"
	case GeneralBoth:
		return "both"
	case GeneralWait:
		return "wait"
	case GeneralWaning:
		return "waning"
	default:
		return "none"
	}
}

// Sides reports the directional flags of g. Both, wait and waning carry no side.
func (g General) Sides() contracts.Signal {
	switch g {
	case GeneralLong:
		return contracts.LongOnly
	case GeneralShort:
		return contracts.ShortOnly
	default:
		return contracts.Neutral
	}
}

// Rule is one guarded branch of an ordered chain
type Rule[In any, Out any] struct {
	Name string
	When func(In) bool
	Then Out
}

// FirstMatch evaluates guards top to bottom and returns the first match.
// Without a match it returns fallback and an empty name.
func FirstMatch[In any, Out any](rules []Rule[In, Out], in In, fallback Out) (Out, string) {
	for _, r := range rules {
		if r.When(in) {
			return r.Then, r.Name
		}
	}
	return fallback, ""
}
