package engineconfig

import (
	"fmt"
	"regexp"

	"github.com/perfhelf/FXview/internal/synthetic"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var aliasPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Validate checks all required constraints
func Validate(cfg *Config) error {
	if cfg.Meta.ConfigID == "" {
		return ValidationError{"meta.config_id", "required"}
	}
	if cfg.Fetch.Range == "" {
		return ValidationError{"fetch.range", "required"}
	}

	// === Components ===
	if len(cfg.Components) == 0 {
		return ValidationError{"components", "at least one component required"}
	}
	aliases := make(map[string]bool, len(cfg.Components))
	tickers := make(map[string]bool, len(cfg.Components))
	for i, c := range cfg.Components {
		field := fmt.Sprintf("components[%d]", i)
		if !aliasPattern.MatchString(c.Alias) {
			return ValidationError{field + ".alias", fmt.Sprintf("invalid alias %q", c.Alias)}
		}
		if c.Ticker == "" {
			return ValidationError{field + ".ticker", "required"}
		}
		if aliases[c.Alias] {
			return ValidationError{field + ".alias", fmt.Sprintf("duplicate alias %q", c.Alias)}
		}
		if tickers[c.Ticker] {
			return ValidationError{field + ".ticker", fmt.Sprintf("duplicate ticker %q", c.Ticker)}
		}
		aliases[c.Alias] = true
		tickers[c.Ticker] = true
	}

	// === Symbols ===
	if len(cfg.Symbols) == 0 {
		return ValidationError{"symbols", "at least one symbol required"}
	}
	names := make(map[string]bool, len(cfg.Symbols))
	for i, s := range cfg.Symbols {
		field := fmt.Sprintf("symbols[%d]", i)
		if s.Name == "" {
			return ValidationError{field + ".name", "required"}
		}
		if names[s.Name] {
			return ValidationError{field + ".name", fmt.Sprintf("duplicate symbol %q", s.Name)}
		}
		names[s.Name] = true

		switch s.Class {
		case ClassCurrency, ClassEmerging, ClassCommodity, ClassIndex:
		default:
			return ValidationError{field + ".class", fmt.Sprintf("unknown class %q", s.Class)}
		}

		f, err := synthetic.ParseFormula(s.Formula)
		if err != nil {
			return ValidationError{field + ".formula", err.Error()}
		}
		for _, v := range f.Variables() {
			if !aliases[v] {
				return ValidationError{field + ".formula", fmt.Sprintf("%s references unknown component %q", s.Name, v)}
			}
		}
	}

	// === Thresholds ===
	checks := []struct {
		field string
		value int
	}{
		{"min_bars.currency", cfg.MinBars.Currency},
		{"min_bars.emerging", cfg.MinBars.Emerging},
		{"min_bars.commodity", cfg.MinBars.Commodity},
		{"min_bars.index", cfg.MinBars.Index},
		{"indicators.rsi_length", cfg.Indicators.RSILength},
		{"indicators.adx_length", cfg.Indicators.ADXLength},
		{"indicators.macd.fast", cfg.Indicators.MACD.Fast},
		{"indicators.macd.slow", cfg.Indicators.MACD.Slow},
		{"indicators.macd.signal", cfg.Indicators.MACD.Signal},
		{"votes.trend_rsi_votes", cfg.Votes.TrendRSIVotes},
		{"votes.adx_min_bars", cfg.Votes.ADXMinBars},
		{"votes.adx_win_quorum", cfg.Votes.ADXWinQuorum},
		{"votes.adx_vote_quorum", cfg.Votes.ADXVoteQuorum},
		{"first_wave.rsi_daily_min_bars", cfg.FirstWave.RSIDailyMinBars},
		{"first_wave.rsi_daily_threshold", cfg.FirstWave.RSIDailyThreshold},
		{"first_wave.rsi_weekly_min_bars", cfg.FirstWave.RSIWeeklyMinBars},
		{"first_wave.rsi_weekly_threshold", cfg.FirstWave.RSIWeeklyThreshold},
		{"first_wave.macd_min_bars", cfg.FirstWave.MACDMinBars},
		{"weekly.min_bars", cfg.Weekly.MinBars},
		{"slopes.windows.short", cfg.Slopes.Windows.Short},
		{"slopes.windows.mid", cfg.Slopes.Windows.Mid},
		{"slopes.windows.long", cfg.Slopes.Windows.Long},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return ValidationError{c.field, "must be > 0"}
		}
	}

	if cfg.Indicators.MACD.Fast >= cfg.Indicators.MACD.Slow {
		return ValidationError{"indicators.macd", "fast must be < slow"}
	}

	lengthSets := []struct {
		field string
		value []int
	}{
		{"votes.rsi_ma_lengths", cfg.Votes.RSIMALengths},
		{"votes.short_ma_lengths", cfg.Votes.ShortMALengths},
		{"votes.adx_ma_lengths", cfg.Votes.ADXMALengths},
	}
	for _, set := range lengthSets {
		if err := validateLengths(set.value); err != nil {
			return ValidationError{set.field, err.Error()}
		}
	}

	for i, l := range cfg.Slopes.EMALengths {
		if l <= 0 {
			return ValidationError{fmt.Sprintf("slopes.ema_lengths[%d]", i), "must be > 0"}
		}
	}

	return nil
}

func validateLengths(lengths []int) error {
	if len(lengths) == 0 {
		return fmt.Errorf("at least one length required")
	}
	for _, l := range lengths {
		if l <= 0 {
			return fmt.Errorf("length must be > 0, got %d", l)
		}
	}
	return nil
}
