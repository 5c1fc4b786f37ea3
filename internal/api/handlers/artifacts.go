package handlers

import (
	"fmt"
	"net/http"
	"os"

	"strategy-allocator/internal/api/models"
	"strategy-allocator/internal/model"
	"strategy-allocator/internal/report"

	"github.com/gin-gonic/gin"
)

// ArtifactHandler serves the two pipeline output files read-only.
// Contract: 404 while an artifact does not exist yet, 500 if it exists but
// fails to parse, otherwise the artifact content verbatim.
type ArtifactHandler struct {
	summaryPath string
	weightsPath string
	cache       *artifactCache
}

func NewArtifactHandler(summaryPath, weightsPath string) *ArtifactHandler {
	return &ArtifactHandler{
		summaryPath: summaryPath,
		weightsPath: weightsPath,
		cache:       newArtifactCache(),
	}
}

// GetSummary handles GET /api/v1/summary
func (h *ArtifactHandler) GetSummary(c *gin.Context) {
	v, ok := h.load(c, h.summaryPath, func(path string) (any, error) {
		return report.ReadSummaryCSV(path)
	})
	if !ok {
		return
	}
	rows := v.([]model.SummaryRecord)
	c.JSON(http.StatusOK, models.SummaryResponse{Count: len(rows), Summary: rows})
}

// GetWeights handles GET /api/v1/weights
func (h *ArtifactHandler) GetWeights(c *gin.Context) {
	v, ok := h.load(c, h.weightsPath, func(path string) (any, error) {
		return report.ReadWeightTable(path)
	})
	if !ok {
		return
	}
	c.JSON(http.StatusOK, v.(model.WeightTable))
}

// GetMarketWeights handles GET /api/v1/weights/:market_type
func (h *ArtifactHandler) GetMarketWeights(c *gin.Context) {
	market := c.Param("market_type")
	v, ok := h.load(c, h.weightsPath, func(path string) (any, error) {
		return report.ReadWeightTable(path)
	})
	if !ok {
		return
	}
	table := v.(model.WeightTable)
	weights, ok := table[market]
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "MARKET_NOT_FOUND",
				Message: fmt.Sprintf("no weights for market type %q", market),
			},
		})
		return
	}
	c.JSON(http.StatusOK, models.MarketWeightsResponse{MarketType: market, Weights: weights})
}

// load stats, caches and parses one artifact, writing the error response
// itself when the artifact is unavailable. The bool reports success.
func (h *ArtifactHandler) load(c *gin.Context, path string, parse func(string) (any, error)) (any, bool) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "ARTIFACT_NOT_FOUND",
					Message: "artifact not generated yet; run the pipeline first",
				},
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "ARTIFACT_STAT_ERROR", Message: err.Error()},
		})
		return nil, false
	}

	if v, ok := h.cache.get(path, info.ModTime(), info.Size()); ok {
		return v, true
	}
	v, err := parse(path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "ARTIFACT_PARSE_ERROR", Message: err.Error()},
		})
		return nil, false
	}
	h.cache.put(path, info.ModTime(), info.Size(), v)
	return v, true
}
