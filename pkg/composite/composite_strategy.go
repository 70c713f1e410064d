package composite

import (
	"fmt"

	"github.com/raykavin/backtestlab/pkg/core"
	"github.com/raykavin/backtestlab/pkg/regime"
	"github.com/raykavin/backtestlab/pkg/strategy"
)

// CompositeStrategy folds an entry and an exit logic tree into a
// flat/long state machine, with an optional regime filter that only ever
// suppresses entries (spec §4.6).
type CompositeStrategy struct {
	Name            string
	Description     string
	EntryLogic      *LogicTree
	ExitLogic       *LogicTree
	RegimeFilter    []string            // allowed SimplifiedRegime values; empty = unfiltered
	SubRegimeFilter map[string][]string // axis ("trend"|"volatility"|"momentum") -> allowed values

	inPosition      bool
	skippedByRegime int

	entrySignals []bool
	exitSignals  []bool
	pos          int
	precomputed  bool
}

// NewCompositeStrategy validates and constructs a composite strategy.
func NewCompositeStrategy(name, description string, entry, exit *LogicTree, regimeFilter []string, subRegimeFilter map[string][]string) (*CompositeStrategy, error) {
	if entry == nil || exit == nil {
		return nil, core.NewConstructionError("CompositeStrategy", "entry_logic and exit_logic are required")
	}
	return &CompositeStrategy{
		Name: name, Description: description,
		EntryLogic: entry, ExitLogic: exit,
		RegimeFilter: regimeFilter, SubRegimeFilter: subRegimeFilter,
	}, nil
}

// Warmup reports a conservative estimate of the longest nested indicator
// period across both trees; the strategy itself never needs it for
// correctness, since an undefined indicator value always evaluates its
// condition false, and the backtest engine does not call it.
func (c *CompositeStrategy) Warmup() int {
	w := treeWarmup(c.EntryLogic)
	if e := treeWarmup(c.ExitLogic); e > w {
		w = e
	}
	return w
}

func treeWarmup(t *LogicTree) int {
	if t == nil {
		return 0
	}
	if t.isLeaf() {
		return signalWarmup(t.Signal)
	}
	w := 0
	for _, child := range t.Children {
		if cw := treeWarmup(child); cw > w {
			w = cw
		}
	}
	return w
}

func signalWarmup(s *IndicatorSignal) int {
	switch s.Indicator {
	case IndicatorMACD:
		return s.periodParam("slow", 26) + s.periodParam("signal", 9)
	default:
		return s.periodParam("period", s.periodParam("slow", 20))
	}
}

// Preinitialize pre-computes both logic trees over the full series (spec
// §4.4 optional lifecycle hook).
func (c *CompositeStrategy) Preinitialize(series core.CandleSeries) {
	entry, err := c.EntryLogic.EvaluateSeries(series)
	if err != nil {
		c.precomputed = false
		return
	}
	exit, err := c.ExitLogic.EvaluateSeries(series)
	if err != nil {
		c.precomputed = false
		return
	}
	c.entrySignals = entry
	c.exitSignals = exit
	c.pos = 0
	c.precomputed = true
}

// OnBar advances the state machine by one bar: flat -> (entry fires,
// regime allows) -> long -> (exit fires) -> flat (spec §4.6). Exit
// signals are never suppressed by the regime filter.
func (c *CompositeStrategy) OnBar(event strategy.MarketEvent) *strategy.SignalEvent {
	entryFires, exitFires := c.evaluate(event)

	defer func() { c.pos++ }()

	if !c.inPosition && entryFires {
		if !c.regimeAllows(event.Regime) {
			c.skippedByRegime++
			return nil
		}
		c.inPosition = true
		return &strategy.SignalEvent{
			Timestamp: event.OpenTime, Symbol: event.Symbol,
			Kind: strategy.SignalBuy, Strength: 1.0,
		}
	}
	if c.inPosition && exitFires {
		c.inPosition = false
		return &strategy.SignalEvent{
			Timestamp: event.OpenTime, Symbol: event.Symbol,
			Kind: strategy.SignalSell, Strength: 1.0,
		}
	}
	return nil
}

func (c *CompositeStrategy) evaluate(event strategy.MarketEvent) (entryFires, exitFires bool) {
	if c.precomputed && c.pos < len(c.entrySignals) && c.pos < len(c.exitSignals) {
		return c.entrySignals[c.pos], c.exitSignals[c.pos]
	}
	return c.EntryLogic.Evaluate(event.Candle), c.ExitLogic.Evaluate(event.Candle)
}

// regimeAllows reports whether the current bar's regime passes both the
// simplified-regime filter and the per-axis sub-regime filter. A bar
// lacking regime metadata conservatively allows (spec §4.6).
func (c *CompositeStrategy) regimeAllows(rec *regime.Record) bool {
	if rec == nil {
		return true
	}
	if len(c.RegimeFilter) > 0 && !contains(c.RegimeFilter, rec.SimplifiedRegime) {
		return false
	}
	for axis, allowed := range c.SubRegimeFilter {
		if len(allowed) == 0 {
			continue
		}
		var value string
		switch axis {
		case "trend":
			value = rec.TrendState
		case "volatility":
			value = rec.VolatilityState
		case "momentum":
			value = rec.MomentumState
		default:
			continue
		}
		if !contains(allowed, value) {
			return false
		}
	}
	return true
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// SignalsSkippedByRegime reports how many entry signals the regime
// filter suppressed, for the engine's optional regime_stats block (spec
// §6.3).
func (c *CompositeStrategy) SignalsSkippedByRegime() int {
	return c.skippedByRegime
}

// RegimeFilterConfig reports the filter this strategy was built with, so
// the engine can echo it back in the regime_stats block (spec §6.3).
func (c *CompositeStrategy) RegimeFilterConfig() ([]string, map[string][]string) {
	return c.RegimeFilter, c.SubRegimeFilter
}

var (
	_ strategy.Strategy            = (*CompositeStrategy)(nil)
	_ strategy.Preinitializer      = (*CompositeStrategy)(nil)
	_ strategy.RegimeStatsReporter = (*CompositeStrategy)(nil)
	_ fmt.Stringer                 = (*CompositeStrategy)(nil)
)

func (c *CompositeStrategy) String() string {
	return fmt.Sprintf("CompositeStrategy(%s)", c.Name)
}
