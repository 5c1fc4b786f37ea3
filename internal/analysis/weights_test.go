package analysis

import (
	"math"
	"testing"

	"strategy-allocator/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func record(strategy, market string, totalReturn, winRate, sharpe float64) model.SummaryRecord {
	return model.SummaryRecord{
		Strategy:    strategy,
		MarketType:  market,
		TotalReturn: fp(totalReturn),
		WinRate:     fp(winRate),
		SharpeRatio: fp(sharpe),
	}
}

func TestComputeWeightsSharpeOnly(t *testing.T) {
	rows := []model.SummaryRecord{
		record("MACD", "trending", 10.0, 0.6, 1.5),
		record("RSI", "trending", -2.0, 0.4, -0.5),
	}

	table, err := ComputeWeights(rows, NewScorer(model.ScoreSharpe), model.DuplicateLast)
	require.NoError(t, err)

	require.Contains(t, table, "trending")
	assert.Equal(t, 1.0, table["trending"]["MACD"])
	assert.Equal(t, 0.0, table["trending"]["RSI"])
}

func TestComputeWeightsAdditive(t *testing.T) {
	rows := []model.SummaryRecord{
		record("MACD", "trending", 10.0, 0.6, 1.5), // score 12.1
		record("RSI", "trending", -2.0, 0.4, -0.5), // score -2.1 -> clamped 0
	}

	table, err := ComputeWeights(rows, NewScorer(model.ScoreAdditive), model.DuplicateLast)
	require.NoError(t, err)

	assert.Equal(t, 1.0, table["trending"]["MACD"])
	assert.Equal(t, 0.0, table["trending"]["RSI"])
}

func TestComputeWeightsProportional(t *testing.T) {
	rows := []model.SummaryRecord{
		record("A", "normal", 3.0, 0, 0),
		record("B", "normal", 1.0, 0, 0),
	}

	table, err := ComputeWeights(rows, NewScorer(model.ScoreAdditive), model.DuplicateLast)
	require.NoError(t, err)

	assert.InDelta(t, 0.75, table["normal"]["A"], 1e-12)
	assert.InDelta(t, 0.25, table["normal"]["B"], 1e-12)
}

func TestComputeWeightsAllNonPositive(t *testing.T) {
	// Both strategies score <= 0: every weight is 0.0, not a uniform split.
	rows := []model.SummaryRecord{
		record("A", "choppy", -5.0, 0, 0),
		record("B", "choppy", 0.0, 0, 0),
	}

	table, err := ComputeWeights(rows, NewScorer(model.ScoreAdditive), model.DuplicateLast)
	require.NoError(t, err)

	assert.Equal(t, 0.0, table["choppy"]["A"])
	assert.Equal(t, 0.0, table["choppy"]["B"])
}

func TestComputeWeightsDenseAcrossMarkets(t *testing.T) {
	// A strategy observed only in one market still gets a key (weight 0)
	// in every other market.
	rows := []model.SummaryRecord{
		record("MACD", "trending", 5.0, 0.5, 1.0),
		record("RSI", "ranging", 4.0, 0.5, 1.0),
	}

	table, err := ComputeWeights(rows, NewScorer(model.ScoreAdditive), model.DuplicateLast)
	require.NoError(t, err)

	for _, market := range []string{"trending", "ranging"} {
		require.Contains(t, table, market)
		assert.Contains(t, table[market], "MACD")
		assert.Contains(t, table[market], "RSI")
	}
	assert.Equal(t, 0.0, table["trending"]["RSI"])
	assert.Equal(t, 0.0, table["ranging"]["MACD"])
}

func TestComputeWeightsInvariants(t *testing.T) {
	rows := []model.SummaryRecord{
		record("A", "trending", 12.0, 0.55, 1.2),
		record("B", "trending", 4.0, 0.48, 0.3),
		record("C", "trending", -1.0, 0.40, -0.2),
		record("A", "ranging", -3.0, 0.30, -1.0),
		record("C", "ranging", 2.0, 0.52, 0.8),
		record("B", "volatile", -1.0, 0.2, -2.0),
	}

	for _, policy := range []model.ScorePolicy{model.ScoreAdditive, model.ScoreSharpe} {
		table, err := ComputeWeights(rows, NewScorer(policy), model.DuplicateLast)
		require.NoError(t, err)

		for market, weights := range table {
			sum := 0.0
			anyPositive := false
			for _, w := range weights {
				assert.GreaterOrEqual(t, w, 0.0, "market %s", market)
				assert.LessOrEqual(t, w, 1.0, "market %s", market)
				assert.False(t, math.IsNaN(w), "market %s", market)
				sum += w
				if w > 0 {
					anyPositive = true
				}
			}
			if anyPositive {
				assert.InDelta(t, 1.0, sum, 1e-9, "market %s", market)
			} else {
				assert.Equal(t, 0.0, sum, "market %s", market)
			}
			// dense strategy keys
			assert.Len(t, weights, 3, "market %s", market)
		}
	}
}

func TestComputeWeightsEmptyInput(t *testing.T) {
	table, err := ComputeWeights(nil, NewScorer(model.ScoreAdditive), model.DuplicateLast)
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestComputeWeightsDuplicateLastWins(t *testing.T) {
	rows := []model.SummaryRecord{
		record("A", "trending", 1.0, 0, 0),
		record("B", "trending", 1.0, 0, 0),
		record("A", "trending", 3.0, 0, 0), // later row replaces the first
	}

	table, err := ComputeWeights(rows, NewScorer(model.ScoreAdditive), model.DuplicateLast)
	require.NoError(t, err)

	assert.InDelta(t, 0.75, table["trending"]["A"], 1e-12)
	assert.InDelta(t, 0.25, table["trending"]["B"], 1e-12)
}

func TestComputeWeightsDuplicateError(t *testing.T) {
	rows := []model.SummaryRecord{
		record("A", "trending", 1.0, 0, 0),
		record("A", "trending", 3.0, 0, 0),
	}

	_, err := ComputeWeights(rows, NewScorer(model.ScoreAdditive), model.DuplicateError)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestComputeWeightsScrubbedMetricScoresZero(t *testing.T) {
	// A scrubbed (inf/NaN -> absent) metric contributes 0 to the score
	// instead of poisoning the normalization.
	rows := []model.SummaryRecord{
		{Strategy: "A", MarketType: "trending", TotalReturn: nil, WinRate: fp(0.6), SharpeRatio: fp(1.0)},
		record("B", "trending", 0.0, 0.4, 0.4),
	}

	table, err := ComputeWeights(rows, NewScorer(model.ScoreAdditive), model.DuplicateLast)
	require.NoError(t, err)

	sum := table["trending"]["A"] + table["trending"]["B"]
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.InDelta(t, 1.6/2.4, table["trending"]["A"], 1e-9)
}
