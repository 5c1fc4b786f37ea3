package model

import "fmt"

// ScorePolicy selects how a per-strategy score is derived from a summary row.
// Keep these values stable; they appear in config files.
type ScorePolicy string

const (
	// ScoreAdditive sums total_return + win_rate + sharpe_ratio as raw
	// numbers. The scales deliberately mix (percent vs fraction); this
	// mirrors the established allocation behavior and is not a bug.
	ScoreAdditive ScorePolicy = "additive"

	// ScoreSharpe ranks by sharpe_ratio alone.
	ScoreSharpe ScorePolicy = "sharpe"
)

func ParseScorePolicy(s string) (ScorePolicy, error) {
	switch ScorePolicy(s) {
	case ScoreAdditive, ScoreSharpe:
		return ScorePolicy(s), nil
	case "":
		return ScoreAdditive, nil
	default:
		return "", fmt.Errorf("unsupported score policy: %q", s)
	}
}

// DuplicatePolicy decides what happens when two summary rows share the same
// (strategy, market_type) pair at weight-computation time.
type DuplicatePolicy string

const (
	// DuplicateLast keeps the last row in input order. The loader emits
	// files in name-sorted order, so this is deterministic run to run.
	DuplicateLast DuplicatePolicy = "last"

	// DuplicateError rejects the run on any duplicate pair.
	DuplicateError DuplicatePolicy = "error"
)

func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(s) {
	case DuplicateLast, DuplicateError:
		return DuplicatePolicy(s), nil
	case "":
		return DuplicateLast, nil
	default:
		return "", fmt.Errorf("unsupported duplicate policy: %q", s)
	}
}
