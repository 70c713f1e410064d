// Package backtest implements the C9 backtest engine (spec §4.8): a
// single chronological pass over a candle series that wires the
// strategy, portfolio, and optional regime classifier together.
package backtest

import (
	"fmt"

	"github.com/schollz/progressbar/v3"

	"github.com/raykavin/backtestlab/pkg/core"
	"github.com/raykavin/backtestlab/pkg/metrics"
	"github.com/raykavin/backtestlab/pkg/portfolio"
	"github.com/raykavin/backtestlab/pkg/regime"
	"github.com/raykavin/backtestlab/pkg/strategy"
)

// Engine runs one strategy over one candle series under one Config
// (spec §4.8). It owns its own Portfolio and regime classifier state;
// concurrent runs must use separate Engines (spec §5).
type Engine struct {
	Config   Config
	Strategy strategy.Strategy

	regimeCfg    regimeIndicatorConfig
	showProgress bool
}

// New constructs an Engine. strategy.NewFoo constructors already
// validate their own parameters; New additionally validates cfg.
func New(cfg Config, strat strategy.Strategy) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strat == nil {
		return nil, core.NewConstructionError("Engine", "strategy is required")
	}
	return &Engine{Config: cfg, Strategy: strat, regimeCfg: defaultRegimeIndicatorConfig()}, nil
}

// WithProgressBar turns on a console progress bar for Run (grounded on
// the teacher's candle-replay progress reporting).
func (e *Engine) WithProgressBar(on bool) *Engine {
	e.showProgress = on
	return e
}

// Result is the C9 output record (spec §6.3).
type Result struct {
	StrategyName string
	Symbol       string
	Timeframe    core.Timeframe
	StartDate    string
	EndDate      string

	Metrics     metrics.Metrics
	EquityCurve []portfolio.EquityPoint
	Trades      []portfolio.Trade

	RegimeStats *RegimeStats
}

// RegimeStats reports how the optional regime filter affected the run
// (spec §6.3 "regime_stats").
type RegimeStats struct {
	RegimeFilter          []string
	SubRegimeFilter       map[string][]string
	SignalsSkippedByRegime int
}

// Run executes exactly one chronological pass over series (spec §4.8).
func (e *Engine) Run(series core.CandleSeries) (*Result, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}

	var regimeRecords []*regime.Record
	if e.Config.EnableRegimeDetection {
		regimeRecords = e.computeRegimeColumn(series)
	}

	if pre, ok := e.Strategy.(strategy.Preinitializer); ok {
		pre.Preinitialize(series)
	}

	pf := portfolio.New(e.Config.InitialCapital)

	var bar *progressbar.ProgressBar
	if e.showProgress {
		bar = progressbar.Default(int64(len(series)))
	}

	for i, candle := range series {
		var rec *regime.Record
		if regimeRecords != nil {
			rec = regimeRecords[i]
		}

		event := strategy.MarketEvent{
			OpenTime: candle.OpenTime, Symbol: candle.Symbol,
			Candle: candle, Regime: rec,
		}

		signal := e.Strategy.OnBar(event)
		if signal != nil {
			if err := e.handleSignal(pf, *signal, candle); err != nil {
				return nil, err
			}
		}

		pf.Mark(candle.OpenTime, map[string]float64{candle.Symbol: candle.Close})

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return e.buildResult(series, pf), nil
}

func (e *Engine) handleSignal(pf *portfolio.Portfolio, signal strategy.SignalEvent, candle core.Candle) error {
	switch signal.Kind {
	case strategy.SignalBuy:
		if pf.HasPosition(candle.Symbol) {
			return nil
		}
		return e.executeBuy(pf, candle)
	case strategy.SignalSell:
		pos := pf.GetPosition(candle.Symbol)
		if pos == nil {
			return nil
		}
		return e.executeSell(pf, candle, pos.Quantity)
	default:
		return nil
	}
}

func (e *Engine) executeBuy(pf *portfolio.Portfolio, candle core.Candle) error {
	available := pf.Cash * e.Config.PositionSizePct
	maxCost := available / (1 + e.Config.CommissionRate)
	quantity := maxCost / candle.Close
	if quantity <= 0 {
		return nil
	}

	fillPrice := candle.Close * (1 + e.Config.SlippageRate)
	commission := quantity * fillPrice * e.Config.CommissionRate

	return pf.ApplyFill(portfolio.Fill{
		Symbol: candle.Symbol, Kind: portfolio.FillBuy,
		Quantity: quantity, Price: fillPrice, Commission: commission,
		Timestamp: candle.OpenTime,
	}, candle.Close)
}

func (e *Engine) executeSell(pf *portfolio.Portfolio, candle core.Candle, quantity float64) error {
	fillPrice := candle.Close * (1 - e.Config.SlippageRate)
	commission := quantity * fillPrice * e.Config.CommissionRate

	return pf.ApplyFill(portfolio.Fill{
		Symbol: candle.Symbol, Kind: portfolio.FillSell,
		Quantity: quantity, Price: fillPrice, Commission: commission,
		Timestamp: candle.OpenTime,
	}, candle.Close)
}

func (e *Engine) buildResult(series core.CandleSeries, pf *portfolio.Portfolio) *Result {
	first, last := series[0], series[len(series)-1]
	result := &Result{
		StrategyName: fmt.Sprintf("%T", e.Strategy),
		Symbol:       first.Symbol,
		Timeframe:    first.Timeframe,
		StartDate:    first.OpenTime.UTC().Format("2006-01-02T15:04:05Z"),
		EndDate:      last.OpenTime.UTC().Format("2006-01-02T15:04:05Z"),
		Metrics:      metrics.Compute(pf.EquityCurve, pf.Trades, e.Config.InitialCapital),
		EquityCurve:  pf.EquityCurve,
		Trades:       pf.Trades,
	}

	if reporter, ok := e.Strategy.(strategy.RegimeStatsReporter); ok {
		stats := &RegimeStats{SignalsSkippedByRegime: reporter.SignalsSkippedByRegime()}
		if cfg, ok := e.Strategy.(regimeFilterConfigurer); ok {
			stats.RegimeFilter, stats.SubRegimeFilter = cfg.RegimeFilterConfig()
		}
		result.RegimeStats = stats
	}
	return result
}

// regimeFilterConfigurer is implemented by strategies (notably
// composite.CompositeStrategy) that can report the regime filter they
// were built with, so the engine can echo it into regime_stats without
// importing pkg/composite directly.
type regimeFilterConfigurer interface {
	RegimeFilterConfig() ([]string, map[string][]string)
}
