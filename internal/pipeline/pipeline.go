package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"strategy-allocator/internal/analysis"
	"strategy-allocator/internal/config"
	"strategy-allocator/internal/data"
	"strategy-allocator/internal/metrics"
	"strategy-allocator/internal/model"
	"strategy-allocator/internal/report"

	"github.com/rs/zerolog"
)

// Pipeline runs one load -> aggregate -> weight -> publish pass.
// Single-threaded and batch-oriented; a caller imposes any timeout.
type Pipeline struct {
	cfg *config.Config
	log zerolog.Logger
	met *metrics.Metrics
}

func New(cfg *config.Config, log zerolog.Logger, met *metrics.Metrics) *Pipeline {
	return &Pipeline{cfg: cfg, log: log, met: met}
}

// Result summarizes a successful run.
type Result struct {
	FilesLoaded  int
	FilesSkipped int
	SummaryRows  int
	MarketTypes  int
}

// Run executes the pipeline. Both artifacts are written to temporary paths
// and renamed into place only after both tables are fully computed; a failed
// run leaves the previous artifacts untouched.
func (p *Pipeline) Run() (Result, error) {
	res, err := p.run()
	if err != nil {
		p.met.RunsTotal.WithLabelValues("failed").Inc()
		p.log.Error().Err(err).Msg("pipeline run failed, artifacts unchanged")
		return Result{}, err
	}
	p.met.RunsTotal.WithLabelValues("ok").Inc()
	p.log.Info().
		Int("files_loaded", res.FilesLoaded).
		Int("files_skipped", res.FilesSkipped).
		Int("summary_rows", res.SummaryRows).
		Int("market_types", res.MarketTypes).
		Str("summary", p.cfg.Output.SummaryPath).
		Str("weights", p.cfg.Output.WeightsPath).
		Msg("pipeline run complete")
	return res, nil
}

func (p *Pipeline) run() (Result, error) {
	results, skipped, err := data.LoadResults(p.cfg.ResultsDir, p.log)
	if err != nil {
		if !errors.Is(err, data.ErrSourceMissing) {
			return Result{}, err
		}
		// Missing source is "nothing to aggregate yet", not a failure.
		p.log.Warn().Str("dir", p.cfg.ResultsDir).Msg("results directory missing, producing empty artifacts")
		results = nil
	}
	p.met.FilesLoaded.Add(float64(len(results)))
	p.met.FilesSkipped.Add(float64(skipped))

	rows := analysis.Summarize(results)
	scorer := analysis.NewScorer(p.cfg.ScorePolicy())
	table, err := analysis.ComputeWeights(rows, scorer, p.cfg.DuplicatePolicy())
	if err != nil {
		return Result{}, err
	}
	p.met.LastRunRows.Set(float64(len(rows)))

	if err := p.publish(rows, table); err != nil {
		return Result{}, err
	}
	return Result{
		FilesLoaded:  len(results),
		FilesSkipped: skipped,
		SummaryRows:  len(rows),
		MarketTypes:  len(table),
	}, nil
}

// publish writes both artifacts to temp paths in the destination directories,
// then renames. Renames happen only after both temp writes succeed, so a
// reader never observes a half-written or half-updated artifact pair.
func (p *Pipeline) publish(rows []model.SummaryRecord, table model.WeightTable) error {
	summaryPath := p.cfg.Output.SummaryPath
	weightsPath := p.cfg.Output.WeightsPath
	for _, path := range []string{summaryPath, weightsPath} {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
	}

	summaryTmp := summaryPath + ".tmp"
	weightsTmp := weightsPath + ".tmp"
	if err := report.WriteSummaryCSV(summaryTmp, rows); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if err := report.WriteWeightTable(weightsTmp, table); err != nil {
		os.Remove(summaryTmp)
		return fmt.Errorf("write weights: %w", err)
	}

	if err := os.Rename(summaryTmp, summaryPath); err != nil {
		os.Remove(summaryTmp)
		os.Remove(weightsTmp)
		return fmt.Errorf("publish summary: %w", err)
	}
	if err := os.Rename(weightsTmp, weightsPath); err != nil {
		os.Remove(weightsTmp)
		return fmt.Errorf("publish weights: %w", err)
	}
	return nil
}
