package engineconfig

// Config는 스냅샷 엔진의 전체 설정 (실행 중 불변)
type Config struct {
	Meta       Meta        `yaml:"meta" json:"meta"`
	Fetch      Fetch       `yaml:"fetch" json:"fetch"`
	Components []Component `yaml:"components" json:"components"`
	Symbols    []Symbol    `yaml:"symbols" json:"symbols"`
	MinBars    MinBars     `yaml:"min_bars" json:"min_bars"`
	Indicators Indicators  `yaml:"indicators" json:"indicators"`
	Votes      Votes       `yaml:"votes" json:"votes"`
	FirstWave  FirstWave   `yaml:"first_wave" json:"first_wave"`
	Weekly     Weekly      `yaml:"weekly" json:"weekly"`
	Slopes     Slopes      `yaml:"slopes" json:"slopes"`
}

// Meta 메타 정보
type Meta struct {
	ConfigID string `yaml:"config_id" json:"config_id"`
	Version  string `yaml:"version" json:"version"`
}

// Fetch controls the market-data request
type Fetch struct {
	Range string `yaml:"range" json:"range"` // provider range, e.g. "2y"
}

// Component maps a formula identifier to a provider ticker
type Component struct {
	Alias  string `yaml:"alias" json:"alias"`
	Ticker string `yaml:"ticker" json:"ticker"`
}

// SymbolClass groups symbols by their minimum-history requirement
type SymbolClass string

const (
	ClassCurrency  SymbolClass = "currency"
	ClassEmerging  SymbolClass = "emerging"
	ClassCommodity SymbolClass = "commodity"
	ClassIndex     SymbolClass = "index"
)

// Symbol is one synthetic instrument
type Symbol struct {
	Name    string      `yaml:"name" json:"name"`
	Class   SymbolClass `yaml:"class" json:"class"`
	Formula string      `yaml:"formula" json:"formula"`
}

// MinBars 클래스별 최소 일봉 개수
type MinBars struct {
	Currency  int `yaml:"currency" json:"currency"`
	Emerging  int `yaml:"emerging" json:"emerging"`
	Commodity int `yaml:"commodity" json:"commodity"`
	Index     int `yaml:"index" json:"index"`
}

// For returns the minimum daily bars for a class
func (m MinBars) For(class SymbolClass) int {
	switch class {
	case ClassEmerging:
		return m.Emerging
	case ClassCommodity:
		return m.Commodity
	case ClassIndex:
		return m.Index
	default:
		return m.Currency
	}
}

// Indicators 지표 기간
type Indicators struct {
	RSILength int  `yaml:"rsi_length" json:"rsi_length"`
	ADXLength int  `yaml:"adx_length" json:"adx_length"`
	MACD      MACD `yaml:"macd" json:"macd"`
}

type MACD struct {
	Fast   int `yaml:"fast" json:"fast"`
	Slow   int `yaml:"slow" json:"slow"`
	Signal int `yaml:"signal" json:"signal"`
}

// Votes 표준 투표 분류기 설정
type Votes struct {
	RSIMALengths   []int `yaml:"rsi_ma_lengths" json:"rsi_ma_lengths"`
	ShortMALengths []int `yaml:"short_ma_lengths" json:"short_ma_lengths"`
	ADXMALengths   []int `yaml:"adx_ma_lengths" json:"adx_ma_lengths"`
	TrendRSIVotes  int   `yaml:"trend_rsi_votes" json:"trend_rsi_votes"`
	ADXMinBars     int   `yaml:"adx_min_bars" json:"adx_min_bars"`
	ADXWinQuorum   int   `yaml:"adx_win_quorum" json:"adx_win_quorum"`
	ADXVoteQuorum  int   `yaml:"adx_vote_quorum" json:"adx_vote_quorum"`
}

// FirstWave 일랑(첫 파동) 분류기 설정
type FirstWave struct {
	RSIDailyMinBars    int `yaml:"rsi_daily_min_bars" json:"rsi_daily_min_bars"`
	RSIDailyThreshold  int `yaml:"rsi_daily_threshold" json:"rsi_daily_threshold"`
	RSIWeeklyMinBars   int `yaml:"rsi_weekly_min_bars" json:"rsi_weekly_min_bars"`
	RSIWeeklyThreshold int `yaml:"rsi_weekly_threshold" json:"rsi_weekly_threshold"`
	MACDMinBars        int `yaml:"macd_min_bars" json:"macd_min_bars"`
}

// Weekly 주봉 게이트
type Weekly struct {
	MinBars int `yaml:"min_bars" json:"min_bars"`
}

// Slopes EMA 기울기 패밀리
type Slopes struct {
	EMALengths [4]int       `yaml:"ema_lengths" json:"ema_lengths"`
	Windows    SlopeWindows `yaml:"windows" json:"windows"`
}

type SlopeWindows struct {
	Short int `yaml:"short" json:"short"`
	Mid   int `yaml:"mid" json:"mid"`
	Long  int `yaml:"long" json:"long"`
}

// Symbol looks up a symbol by name
func (c *Config) Symbol(name string) (Symbol, bool) {
	for _, s := range c.Symbols {
		if s.Name == name {
			return s, true
		}
	}
	return Symbol{}, false
}

// SymbolNames returns symbol names in configured order
func (c *Config) SymbolNames() []string {
	names := make([]string, len(c.Symbols))
	for i, s := range c.Symbols {
		names[i] = s.Name
	}
	return names
}

// ComponentTickers maps alias -> provider ticker
func (c *Config) ComponentTickers() map[string]string {
	out := make(map[string]string, len(c.Components))
	for _, comp := range c.Components {
		out[comp.Alias] = comp.Ticker
	}
	return out
}

// Tickers returns every provider ticker in configured order
func (c *Config) Tickers() []string {
	out := make([]string, len(c.Components))
	for i, comp := range c.Components {
		out[i] = comp.Ticker
	}
	return out
}

// Formulas maps symbol -> formula source
func (c *Config) Formulas() map[string]string {
	out := make(map[string]string, len(c.Symbols))
	for _, s := range c.Symbols {
		out[s.Name] = s.Formula
	}
	return out
}

// MinBarsFor returns the minimum daily bars required for a symbol
func (c *Config) MinBarsFor(symbol string) int {
	s, ok := c.Symbol(symbol)
	if !ok {
		return c.MinBars.Currency
	}
	return c.MinBars.For(s.Class)
}
