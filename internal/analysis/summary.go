package analysis

import (
	"math"

	"strategy-allocator/internal/model"
)

// Summarize flattens backtest results into summary rows.
//
// Coercion rules:
// - missing strategy/market_type -> "Unknown" (the record is kept, not dropped)
// - missing total_return/win_rate/sharpe_ratio -> 0.0
// - missing max_drawdown_pct -> stays absent (nil); its absence is meaningful
// - any +-inf or NaN -> absent marker, never 0.0
func Summarize(results []model.BacktestResult) []model.SummaryRecord {
	rows := make([]model.SummaryRecord, 0, len(results))
	for _, r := range results {
		rows = append(rows, model.SummaryRecord{
			Strategy:       orUnknown(r.Strategy),
			MarketType:     orUnknown(r.MarketType),
			TotalReturn:    scrub(orZero(r.Metrics.TotalReturn)),
			WinRate:        scrub(orZero(r.Metrics.WinRate)),
			SharpeRatio:    scrub(orZero(r.Metrics.SharpeRatio)),
			MaxDrawdownPct: scrub(r.Metrics.MaxDrawdownPct),
		})
	}
	return rows
}

func orUnknown(s string) string {
	if s == "" {
		return model.UnknownLabel
	}
	return s
}

func orZero(v *float64) *float64 {
	if v == nil {
		zero := 0.0
		return &zero
	}
	return v
}

// scrub replaces non-finite values with the absent marker so they can never
// reach serialization or a downstream sum.
func scrub(v *float64) *float64 {
	if v == nil {
		return nil
	}
	if math.IsInf(*v, 0) || math.IsNaN(*v) {
		return nil
	}
	return v
}
