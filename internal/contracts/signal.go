package contracts

import (
	"encoding/json"
	"fmt"
)

// Signal is a classifier output: independent long and short flags.
// (true, true) means both, (false, false) means neither.
type Signal struct {
	Long  bool
	Short bool
}

var (
	// Neutral is the (false, false) signal
	Neutral = Signal{}
	// BothSides is the (true, true) signal
	BothSides = Signal{Long: true, Short: true}
	// LongOnly is the (true, false) signal
	LongOnly = Signal{Long: true}
	// ShortOnly is the (false, true) signal
	ShortOnly = Signal{Short: true}
)

// OnlyLong reports (true, false)
func (s Signal) OnlyLong() bool { return s.Long && !s.Short }

// OnlyShort reports (false, true)
func (s Signal) OnlyShort() bool { return s.Short && !s.Long }

// Both reports (true, true)
func (s Signal) Both() bool { return s.Long && s.Short }

// None reports (false, false)
func (s Signal) None() bool { return !s.Long && !s.Short }

// MarshalJSON encodes the signal as [long, short]
func (s Signal) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]bool{s.Long, s.Short})
}

// UnmarshalJSON decodes [long, short]
func (s *Signal) UnmarshalJSON(data []byte) error {
	var pair []bool
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("signal: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("signal: expected [long, short], got %d values", len(pair))
	}
	s.Long, s.Short = pair[0], pair[1]
	return nil
}

func (s Signal) String() string {
	return fmt.Sprintf("[%t %t]", s.Long, s.Short)
}

// Status is the aggregate direction code
type Status int

const (
	StatusShort Status = -1
	StatusNone  Status = 0
	StatusLong  Status = 1
	StatusBoth  Status = 2
)

// StatusFromSides maps (long, short) flags to a status code
func StatusFromSides(long, short bool) Status {
	switch {
	case long && short:
		return StatusBoth
	case long:
		return StatusLong
	case short:
		return StatusShort
	default:
		return StatusNone
	}
}

// Valid reports whether the status is one of -1, 0, 1, 2
func (s Status) Valid() bool {
	return s >= StatusShort && s <= StatusBoth
}

func (s Status) String() string {
	switch s {
	case StatusShort:
		return "short"
	case StatusLong:
		return "long"
	case StatusBoth:
		return "both"
	default:
		return "none"
	}
}
