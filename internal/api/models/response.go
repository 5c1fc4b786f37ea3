package models

import "strategy-allocator/internal/model"

// SummaryResponse wraps the summary table as flat key-value records.
type SummaryResponse struct {
	Count   int                   `json:"count"`
	Summary []model.SummaryRecord `json:"summary"`
}

// MarketWeightsResponse is one market's inner strategy -> weight mapping.
type MarketWeightsResponse struct {
	MarketType string             `json:"market_type"`
	Weights    map[string]float64 `json:"weights"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
