package optimizer

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/raykavin/backtestlab/pkg/backtest"
	"github.com/raykavin/backtestlab/pkg/core"
	"github.com/raykavin/backtestlab/pkg/strategy"
)

// StrategyFactory builds a strategy.Strategy from one parameter set. A
// factory owns the mapping from named numeric/string parameters to
// whatever constructor its strategy needs.
type StrategyFactory func(params ParameterSet) (strategy.Strategy, error)

// BacktestStrategyEvaluator evaluates parameter sets by constructing a
// fresh strategy and backtest.Engine for each one and re-running the
// full series; every evaluation is independent (spec §5's "concurrent
// runs use separate Engines" applies here too).
type BacktestStrategyEvaluator struct {
	Series  core.CandleSeries
	Config  backtest.Config
	Factory StrategyFactory
}

// NewBacktestStrategyEvaluator creates an evaluator that backtests each
// parameter set against series under cfg.
func NewBacktestStrategyEvaluator(series core.CandleSeries, cfg backtest.Config, factory StrategyFactory) *BacktestStrategyEvaluator {
	return &BacktestStrategyEvaluator{Series: series, Config: cfg, Factory: factory}
}

// Evaluate implements Evaluator.
func (e *BacktestStrategyEvaluator) Evaluate(ctx context.Context, params ParameterSet) (*Result, error) {
	start := time.Now()

	strat, err := e.Factory(params)
	if err != nil {
		return nil, fmt.Errorf("build strategy: %w", err)
	}

	engine, err := backtest.New(e.Config, strat)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}

	result, err := engine.Run(e.Series)
	if err != nil {
		return nil, fmt.Errorf("run backtest: %w", err)
	}

	return &Result{
		Parameters: params,
		Metrics:    metricMap(result),
		Duration:   time.Since(start),
	}, nil
}

// metricMap flattens a backtest.Result into the MetricName-keyed map
// optimizer.Result carries, so ResultSorter and PrintResults can rank runs
// without depending on pkg/metrics directly.
func metricMap(result *backtest.Result) map[string]float64 {
	m := result.Metrics

	payoff := 0.0
	switch {
	case m.AverageLoss > 0:
		payoff = m.AverageWin / m.AverageLoss
	case m.AverageWin > 0:
		payoff = math.Inf(1)
	}

	return map[string]float64{
		string(MetricProfit):       m.TotalReturnPct,
		string(MetricWinRate):      m.WinRatePct,
		string(MetricPayoff):       payoff,
		string(MetricProfitFactor): m.ProfitFactor,
		string(MetricDrawdown):     m.MaxDrawdownPct,
		string(MetricSharpeRatio):  m.SharpeRatio,
		string(MetricTradeCount):   float64(m.TotalTrades),
	}
}
