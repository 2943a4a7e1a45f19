package contracts

import "time"

// SlopeSet holds the four EMA slope values (EMA 20, 50, 100, 200) per timeframe
type SlopeSet struct {
	D [4]float64 `json:"d"`
	W [4]float64 `json:"w"`
}

// EMASlopes groups slope sets by slope smoothing window (short=20, mid=50, long=90)
type EMASlopes struct {
	Short SlopeSet `json:"short"`
	Mid   SlopeSet `json:"mid"`
	Long  SlopeSet `json:"long"`
}

// SignalPair is one indicator's daily and weekly signal
type SignalPair struct {
	D Signal `json:"d"`
	W Signal `json:"w"`
}

// SignalSet groups the three indicator families
type SignalSet struct {
	RSI  SignalPair `json:"rsi"`
	MACD SignalPair `json:"macd"`
	ADX  SignalPair `json:"adx"`
}

// SymbolSnapshot is the per-symbol output record
// ⭐ SSOT: 저장/캐시/API 가 공유하는 유일한 페이로드 형태
type SymbolSnapshot struct {
	Symbol      string    `json:"symbol"`
	LastUpdate  time.Time `json:"last_update"`
	TrendStatus Status    `json:"trend_status"`
	FWStatus    Status    `json:"fw_status"`
	EMASlopes   EMASlopes `json:"ema_slopes"`
	Signals     SignalSet `json:"signals"`
	FWSignals   SignalSet `json:"fw_signals"`
}
