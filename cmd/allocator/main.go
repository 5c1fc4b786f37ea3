package main

import (
	"errors"
	"fmt"
	"os"

	"strategy-allocator/internal/analysis"
	"strategy-allocator/internal/api"
	"strategy-allocator/internal/config"
	"strategy-allocator/internal/data"
	"strategy-allocator/internal/logging"
	"strategy-allocator/internal/metrics"
	"strategy-allocator/internal/model"
	"strategy-allocator/internal/pipeline"
	"strategy-allocator/internal/report"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	var (
		cfgPath    string
		resultsDir string
		scoreName  string
	)

	rootCmd := &cobra.Command{
		Use:          "allocator",
		Short:        "Aggregate backtest results into a summary report and per-market strategy weights",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config (defaults apply if omitted)")
	rootCmd.PersistentFlags().StringVar(&resultsDir, "results-dir", "", "Override results_dir from config")
	rootCmd.PersistentFlags().StringVar(&scoreName, "score", "", "Override score.policy (additive|sharpe)")

	loadConfig := func() (*config.Config, error) {
		cfg := config.Default()
		if cfgPath != "" {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
		if resultsDir != "" {
			cfg.ResultsDir = resultsDir
		}
		if scoreName != "" {
			cfg.Score.Policy = scoreName
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline once and publish both artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logging.New(os.Stderr, cfg.Log.Level)
			met := metrics.New()
			_, err = pipeline.New(cfg, log, met).Run()
			return err
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the published weight table as an aligned text table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			table, err := report.ReadWeightTable(cfg.Output.WeightsPath)
			if err != nil {
				return fmt.Errorf("read weight table (run the pipeline first?): %w", err)
			}
			printWeights(table)
			return nil
		},
	}

	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute and print weights from the results directory without publishing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logging.New(os.Stderr, cfg.Log.Level)
			table, err := computeOnly(cfg, log)
			if err != nil {
				return err
			}
			printWeights(table)
			return nil
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the published artifacts read-only over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logging.New(os.Stderr, cfg.Log.Level)
			met := metrics.New()
			router := api.NewRouter(cfg, log, met.Registry)
			log.Info().Str("addr", cfg.Server.Addr).Msg("starting retrieval API")
			return router.Run(cfg.Server.Addr)
		},
	}

	rootCmd.AddCommand(runCmd, showCmd, computeCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// computeOnly runs load + aggregate without touching the output files.
func computeOnly(cfg *config.Config, log zerolog.Logger) (model.WeightTable, error) {
	results, _, err := data.LoadResults(cfg.ResultsDir, log)
	if err != nil && !errors.Is(err, data.ErrSourceMissing) {
		return nil, err
	}
	rows := analysis.Summarize(results)
	return analysis.ComputeWeights(rows, analysis.NewScorer(cfg.ScorePolicy()), cfg.DuplicatePolicy())
}

func printWeights(table model.WeightTable) {
	strategies := table.Strategies()
	fmt.Printf("%-16s", "market_type")
	for _, s := range strategies {
		fmt.Printf(" %12s", s)
	}
	fmt.Println()
	for _, m := range table.MarketTypes() {
		fmt.Printf("%-16s", m)
		for _, s := range strategies {
			fmt.Printf(" %12.4f", table[m][s])
		}
		fmt.Println()
	}
}
