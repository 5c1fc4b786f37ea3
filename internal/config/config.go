package config

import (
	"errors"
	"fmt"
	"os"

	"strategy-allocator/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// ResultsDir is the directory of per-run backtest result JSON files.
	ResultsDir string       `yaml:"results_dir"`
	Output     OutputConfig `yaml:"output"`
	Score      ScoreConfig  `yaml:"score"`
	Server     ServerConfig `yaml:"server"`
	Log        LogConfig    `yaml:"log"`
}

type OutputConfig struct {
	// SummaryPath is the summary-report CSV artifact.
	SummaryPath string `yaml:"summary"`
	// WeightsPath is the weight-table JSON artifact.
	WeightsPath string `yaml:"weights"`
}

type ScoreConfig struct {
	Policy     string `yaml:"policy"`
	Duplicates string `yaml:"duplicates"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ResultsDir: "data/results",
		Output: OutputConfig{
			SummaryPath: "out/summary_report.csv",
			WeightsPath: "out/weight_table.json",
		},
		Score: ScoreConfig{
			Policy:     string(model.ScoreAdditive),
			Duplicates: string(model.DuplicateLast),
		},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads a YAML config, fills defaults for omitted fields and validates.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s invalid: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.ResultsDir == "" {
		return errors.New("results_dir is required")
	}
	if c.Output.SummaryPath == "" {
		return errors.New("output.summary is required")
	}
	if c.Output.WeightsPath == "" {
		return errors.New("output.weights is required")
	}
	if _, err := model.ParseScorePolicy(c.Score.Policy); err != nil {
		return err
	}
	if _, err := model.ParseDuplicatePolicy(c.Score.Duplicates); err != nil {
		return err
	}
	return nil
}

// ScorePolicy returns the parsed score policy. Validate must have passed.
func (c *Config) ScorePolicy() model.ScorePolicy {
	p, _ := model.ParseScorePolicy(c.Score.Policy)
	return p
}

// DuplicatePolicy returns the parsed duplicate policy. Validate must have passed.
func (c *Config) DuplicatePolicy() model.DuplicatePolicy {
	p, _ := model.ParseDuplicatePolicy(c.Score.Duplicates)
	return p
}
