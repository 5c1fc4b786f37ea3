package analysis

import "strategy-allocator/internal/model"

// Scorer derives a raw (pre-clamp) score from one summary row.
type Scorer interface {
	Name() string
	Score(r model.SummaryRecord) float64
}

// NewScorer returns the scorer for a policy. Policies are validated at config
// load; an unknown value here falls back to the additive scorer.
func NewScorer(p model.ScorePolicy) Scorer {
	if p == model.ScoreSharpe {
		return sharpeScorer{}
	}
	return additiveScorer{}
}

// additiveScorer sums total_return + win_rate + sharpe_ratio as raw numbers.
// win_rate is a 0..1 fraction while total_return is a percent; the mixed
// scales are intentional, preserved allocation behavior.
type additiveScorer struct{}

func (additiveScorer) Name() string { return string(model.ScoreAdditive) }

func (additiveScorer) Score(r model.SummaryRecord) float64 {
	return deref(r.TotalReturn) + deref(r.WinRate) + deref(r.SharpeRatio)
}

// sharpeScorer ranks by sharpe_ratio alone.
type sharpeScorer struct{}

func (sharpeScorer) Name() string { return string(model.ScoreSharpe) }

func (sharpeScorer) Score(r model.SummaryRecord) float64 {
	return deref(r.SharpeRatio)
}

// deref treats the absent marker as a 0 contribution; scrubbed inf/NaN must
// not poison the score sum.
func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
