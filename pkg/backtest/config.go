package backtest

import "github.com/raykavin/backtestlab/pkg/core"

// Config is the C9 engine configuration (spec §4.8).
type Config struct {
	InitialCapital        float64
	CommissionRate        float64 // fraction, e.g. 0.001 = 10 bps
	SlippageRate          float64
	PositionSizePct       float64 // fraction of cash used per entry, in (0,1]
	EnableRegimeDetection bool
}

// Validate enforces the construction invariants of spec §4.8.
func (c Config) Validate() error {
	if c.InitialCapital <= 0 {
		return core.NewConstructionError("Config", "initial_capital must be positive")
	}
	if c.CommissionRate < 0 {
		return core.NewConstructionError("Config", "commission_rate must be non-negative")
	}
	if c.SlippageRate < 0 {
		return core.NewConstructionError("Config", "slippage_rate must be non-negative")
	}
	if c.PositionSizePct <= 0 || c.PositionSizePct > 1 {
		return core.NewConstructionError("Config", "position_size_pct must be in (0, 1]")
	}
	return nil
}

// regimeIndicatorConfig pins the indicator periods the regime classifier
// folds into each bar's Row (spec §4.3 names SMA20/50/200 explicitly but
// leaves ADX/ATR/RSI/ROC/MACD periods unspecified; these match the
// defaults this module already uses in pkg/composite's indicator
// signals).
type regimeIndicatorConfig struct {
	adxPeriod          int
	atrPeriod          int
	rsiPeriod          int
	rocPeriod          int
	macdFast           int
	macdSlow           int
	macdSignal         int
	bollPeriod         int
	bollStdDev         float64
	adaptiveWindow     int
}

func defaultRegimeIndicatorConfig() regimeIndicatorConfig {
	return regimeIndicatorConfig{
		adxPeriod: 14, atrPeriod: 14, rsiPeriod: 14, rocPeriod: 10,
		macdFast: 12, macdSlow: 26, macdSignal: 9,
		bollPeriod: 20, bollStdDev: 2.0,
		adaptiveWindow: 100,
	}
}
