package model

import "sort"

// SummaryRecord is one row of the summary table: one BacktestResult flattened
// into tabular form. A nil metric is the explicit absent marker; it renders as
// an empty CSV cell or JSON null, never as 0.0.
//
// TotalReturn, WinRate and SharpeRatio are non-nil 0.0 when the source omitted
// them, and nil only when a +-inf/NaN value was scrubbed. MaxDrawdownPct stays
// nil when absent in the source; its absence is meaningful.
type SummaryRecord struct {
	Strategy   string `json:"strategy"`
	MarketType string `json:"market_type"`

	TotalReturn    *float64 `json:"total_return"`
	WinRate        *float64 `json:"win_rate"`
	SharpeRatio    *float64 `json:"sharpe_ratio"`
	MaxDrawdownPct *float64 `json:"max_drawdown_pct"`
}

// SummaryColumns is the fixed column order of the summary artifact.
// Keep these values stable; they are the CSV header contract.
var SummaryColumns = []string{
	"strategy",
	"market_type",
	"total_return",
	"win_rate",
	"sharpe_ratio",
	"max_drawdown_pct",
}

// WeightTable maps market_type -> strategy -> weight in [0,1].
//
// Invariant: for each market_type the weights sum to 1.0 (within floating
// point tolerance) when at least one strategy has a positive clamped score;
// if none does, every weight for that market is exactly 0.0. Every strategy
// observed anywhere in the input appears as a key under every market_type.
type WeightTable map[string]map[string]float64

// Strategies returns the sorted union of strategy names across all markets.
func (t WeightTable) Strategies() []string {
	seen := map[string]bool{}
	for _, inner := range t {
		for s := range inner {
			seen[s] = true
		}
	}
	return sortedKeys(seen)
}

// MarketTypes returns the sorted market_type keys.
func (t WeightTable) MarketTypes() []string {
	seen := map[string]bool{}
	for m := range t {
		seen[m] = true
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
