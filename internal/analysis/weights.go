package analysis

import (
	"fmt"

	"strategy-allocator/internal/model"
)

// ComputeWeights builds the per-market allocation table from summary rows.
//
// Per market_type: score each strategy, clamp scores at 0, then divide each
// clamped score by their sum. If the sum is 0 (every strategy scored <= 0, or
// the market has no rows) every weight for that market is 0.0 — the table
// never invents a uniform split where nothing scored positive.
//
// The table is dense: every strategy observed anywhere in rows appears under
// every market_type, defaulting to 0.0.
func ComputeWeights(rows []model.SummaryRecord, scorer Scorer, dup model.DuplicatePolicy) (model.WeightTable, error) {
	strategies := map[string]bool{}
	scores := map[string]map[string]float64{} // market -> strategy -> raw score

	for _, r := range rows {
		strategies[r.Strategy] = true
		inner, ok := scores[r.MarketType]
		if !ok {
			inner = map[string]float64{}
			scores[r.MarketType] = inner
		}
		if _, exists := inner[r.Strategy]; exists && dup == model.DuplicateError {
			return nil, fmt.Errorf("duplicate summary row for strategy %q in market %q", r.Strategy, r.MarketType)
		}
		// last row in input order wins under DuplicateLast
		inner[r.Strategy] = scorer.Score(r)
	}

	table := model.WeightTable{}
	for market, inner := range scores {
		clamped := map[string]float64{}
		total := 0.0
		for strat := range strategies {
			score := inner[strat] // 0 when the strategy has no row here
			if score < 0 {
				score = 0
			}
			clamped[strat] = score
			total += score
		}

		weights := make(map[string]float64, len(strategies))
		for strat, score := range clamped {
			if total > 0 {
				weights[strat] = score / total
			} else {
				weights[strat] = 0.0
			}
		}
		table[market] = weights
	}
	return table, nil
}
