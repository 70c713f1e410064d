// Package config loads a YAML document describing one backtest run: the
// candle source, the engine settings, and which strategy to build.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/raykavin/backtestlab/pkg/backtest"
	"github.com/raykavin/backtestlab/pkg/core"
)

// EngineConfig mirrors backtest.Config for YAML unmarshaling; field names
// are snake_case in the document rather than Go-exported names.
type EngineConfig struct {
	InitialCapital        float64 `yaml:"initial_capital"`
	CommissionRate        float64 `yaml:"commission_rate"`
	SlippageRate          float64 `yaml:"slippage_rate"`
	PositionSizePct       float64 `yaml:"position_size_pct"`
	EnableRegimeDetection bool    `yaml:"enable_regime_detection"`
}

// ToBacktestConfig converts the YAML-shaped config into backtest.Config.
func (e EngineConfig) ToBacktestConfig() backtest.Config {
	return backtest.Config{
		InitialCapital:        e.InitialCapital,
		CommissionRate:        e.CommissionRate,
		SlippageRate:          e.SlippageRate,
		PositionSizePct:       e.PositionSizePct,
		EnableRegimeDetection: e.EnableRegimeDetection,
	}
}

// StrategyConfig names which built-in strategy to construct and its
// parameters. Composite strategy definitions are loaded separately as
// JSON (spec §6.2) since they're a full logic tree, not a flat map.
type StrategyConfig struct {
	Name       string             `yaml:"name"`
	Parameters map[string]float64 `yaml:"parameters"`
}

// DataConfig names the candle source for the run.
type DataConfig struct {
	Symbol    string         `yaml:"symbol"`
	Timeframe core.Timeframe `yaml:"timeframe"`
	CSVPath   string         `yaml:"csv_path"`
}

// BacktestConfig is the top-level YAML document for a single run.
type BacktestConfig struct {
	Data     DataConfig     `yaml:"data"`
	Engine   EngineConfig   `yaml:"engine"`
	Strategy StrategyConfig `yaml:"strategy"`
}

// Load reads and parses a BacktestConfig from path.
func Load(path string) (*BacktestConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg BacktestConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
