// Command backtestlab runs a single backtest from a YAML config: load a
// CSV candle series, build the configured strategy, run pkg/backtest's
// engine over it, and print the resulting report.
package main

import (
	"flag"
	"fmt"
	"os"

	rszerolog "github.com/rs/zerolog"

	"github.com/raykavin/backtestlab/pkg/backtest"
	"github.com/raykavin/backtestlab/pkg/config"
	"github.com/raykavin/backtestlab/pkg/feed"
	logadapter "github.com/raykavin/backtestlab/pkg/logger/zerolog"
	"github.com/raykavin/backtestlab/pkg/metrics"
	"github.com/raykavin/backtestlab/pkg/strategy"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the backtest YAML config")
	flag.Parse()

	log := logadapter.NewAdapter(newZerologLogger())

	cfg := must(config.Load(*configPath))

	series := must(feed.LoadCSV(cfg.Data.CSVPath, cfg.Data.Symbol, cfg.Data.Timeframe))
	strat := must(buildStrategy(cfg.Strategy))

	engine := must(backtest.New(cfg.Engine.ToBacktestConfig(), strat))
	engine.WithProgressBar(true)

	log.Infof("running %s over %d bars", cfg.Strategy.Name, len(series))
	result := must(engine.Run(series))

	report := metrics.Report{Metrics: result.Metrics, Trades: result.Trades}
	report.Fprint(os.Stdout)
}

func buildStrategy(cfg config.StrategyConfig) (strategy.Strategy, error) {
	p := cfg.Parameters
	switch cfg.Name {
	case "ma_cross":
		return strategy.NewMACrossStrategy(int(p["fast"]), int(p["slow"]), strategy.MATypeSMA)
	case "rsi_reversal":
		return strategy.NewRSIReversalStrategy(int(p["period"]), p["oversold"], p["overbought"])
	case "macd_cross":
		return strategy.NewMACDCrossStrategy(int(p["fast"]), int(p["slow"]), int(p["signal"]))
	case "bollinger_bands":
		return strategy.NewBollingerBandsStrategy(int(p["period"]), p["num_std"], p["touch_threshold"])
	case "super_trend":
		return strategy.NewSuperTrendStrategy(int(p["atr_period"]), p["factor"])
	default:
		return nil, fmt.Errorf("unknown strategy: %s", cfg.Name)
	}
}

func newZerologLogger() *rszerolog.Logger {
	l := rszerolog.New(rszerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	return &l
}

func must[T any](val T, err error) T {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return val
}
