package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"strategy-allocator/internal/model"

	"github.com/rs/zerolog"
)

// ErrSourceMissing reports that the results directory does not exist.
// Callers treat it as "nothing to aggregate yet", not as a fatal error.
var ErrSourceMissing = errors.New("results directory missing")

// rawPerformance matches the metric fields of a result file. Pointers keep
// "absent" distinguishable from an explicit 0.
type rawPerformance struct {
	TotalReturn    *float64 `json:"total_return"`
	WinRate        *float64 `json:"win_rate"`
	SharpeRatio    *float64 `json:"sharpe_ratio"`
	MaxDrawdownPct *float64 `json:"max_drawdown_pct"`
}

// rawResult accepts both result-file shapes seen in the wild:
// - identity as "strategy" or "strategy_name"
// - metrics nested under "performance" or inlined at the top level
type rawResult struct {
	Strategy     string          `json:"strategy"`
	StrategyName string          `json:"strategy_name"`
	MarketType   string          `json:"market_type"`
	Performance  *rawPerformance `json:"performance"`

	rawPerformance // top-level metric variant
}

func (r rawResult) toResult() model.BacktestResult {
	strat := r.Strategy
	if strat == "" {
		strat = r.StrategyName
	}
	perf := r.rawPerformance
	if r.Performance != nil {
		perf = *r.Performance
	}
	return model.BacktestResult{
		Strategy:   strat,
		MarketType: r.MarketType,
		Metrics: model.PerformanceMetrics{
			TotalReturn:    perf.TotalReturn,
			WinRate:        perf.WinRate,
			SharpeRatio:    perf.SharpeRatio,
			MaxDrawdownPct: perf.MaxDrawdownPct,
		},
	}
}

// LoadResults reads every *.json file in dir and returns one BacktestResult
// per parseable file, in file-name order, plus the count of files skipped as
// unparseable. A parse failure is logged and skipped; it never aborts the
// load. A missing dir returns an empty slice and ErrSourceMissing.
func LoadResults(dir string, log zerolog.Logger) (results []model.BacktestResult, skipped int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("%w: %s", ErrSourceMissing, dir)
		}
		return nil, 0, fmt.Errorf("read results dir %s: %w", dir, err)
	}

	results = make([]model.BacktestResult, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		res, err := loadResultFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", e.Name()).Msg("skipping unparseable result file")
			skipped++
			continue
		}
		results = append(results, res)
	}
	return results, skipped, nil
}

func loadResultFile(path string) (model.BacktestResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.BacktestResult{}, err
	}
	var r rawResult
	if err := json.Unmarshal(raw, &r); err != nil {
		return model.BacktestResult{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return r.toResult(), nil
}
