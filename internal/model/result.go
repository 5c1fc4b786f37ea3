package model

// BacktestResult is one per-run result file after schema resolution.
// Produced externally by the backtesting process; this pipeline only reads it.
type BacktestResult struct {
	// Strategy and MarketType may be empty if the source file omitted them;
	// the aggregator substitutes "Unknown" rather than dropping the record.
	Strategy   string
	MarketType string

	Metrics PerformanceMetrics
}

// PerformanceMetrics carries the raw metric values from a result file.
// Pointers distinguish "absent in source" (nil) from an explicit zero.
// Units:
// - TotalReturn: percent
// - WinRate: fraction 0..1
// - SharpeRatio: unitless
// - MaxDrawdownPct: percent
type PerformanceMetrics struct {
	TotalReturn    *float64
	WinRate        *float64
	SharpeRatio    *float64
	MaxDrawdownPct *float64
}

// UnknownLabel is substituted for a missing strategy or market_type so
// incomplete records stay visible downstream instead of crashing consumers.
const UnknownLabel = "Unknown"
