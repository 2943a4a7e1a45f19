package classifier

// Params holds the lengths and thresholds injected into every classifier
// ⭐ SSOT: 값은 engineconfig 에서 주입, 여기서는 기본값만 정의
type Params struct {
	RSILength  int
	ADXLength  int
	MACDFast   int
	MACDSlow   int
	MACDSignal int

	RSIMALengths   []int // standard RSI votes, daily first wave
	ShortMALengths []int // weekly first-wave RSI, MACD histogram
	ADXMALengths   []int

	ADXMinBars    int
	ADXWinQuorum  int // pairwise wins needed for one DI-MA to vote
	ADXVoteQuorum int // votes needed for a side

	RSIDailyMinBars    int
	RSIDailyThreshold  int
	RSIWeeklyMinBars   int
	RSIWeeklyThreshold int
	MACDMinBars        int
}

// DefaultParams returns the production lengths and thresholds
func DefaultParams() Params {
	return Params{
		RSILength:          14,
		ADXLength:          14,
		MACDFast:           12,
		MACDSlow:           26,
		MACDSignal:         9,
		RSIMALengths:       []int{16, 25, 37, 157, 248, 369},
		ShortMALengths:     []int{16, 25, 37},
		ADXMALengths:       []int{16, 25, 37},
		ADXMinBars:         38,
		ADXWinQuorum:       2,
		ADXVoteQuorum:      2,
		RSIDailyMinBars:    370,
		RSIDailyThreshold:  2,
		RSIWeeklyMinBars:   38,
		RSIWeeklyThreshold: 1,
		MACDMinBars:        38,
	}
}
