// Package strategy defines the C5 strategy contract (spec §4.4) and the
// four built-in strategies of C6 (spec §4.5). A strategy is handed one
// bar at a time and may optionally return a signal; it must never read
// beyond the bar it is given, since the backtest engine relies on that
// to prove the no-look-ahead invariant (spec §8 invariant 5).
package strategy

import (
	"time"

	"github.com/raykavin/backtestlab/pkg/core"
	"github.com/raykavin/backtestlab/pkg/regime"
)

// SignalKind is the decision a strategy attaches to a bar.
type SignalKind string

const (
	SignalBuy  SignalKind = "BUY"
	SignalSell SignalKind = "SELL"
	SignalHold SignalKind = "HOLD"
)

// MarketEvent is what the engine delivers to a strategy for one bar
// (spec §3 "Signal event" neighbours, §4.8 loop step a).
type MarketEvent struct {
	OpenTime time.Time
	Symbol   string
	Candle   core.Candle
	Regime   *regime.Record // nil when regime detection is disabled or undefined
}

// SignalEvent is a strategy's optional response to a MarketEvent (spec
// §3 "Signal event"). A nil return and a SignalHold return are
// equivalent; the engine treats both as "do nothing".
type SignalEvent struct {
	Timestamp time.Time
	Symbol    string
	Kind      SignalKind
	Strength  float64 // in [0,1]
	Metadata  map[string]any
}

// Strategy is the capability every strategy must implement (spec §4.4,
// §9 "polymorphism over strategies": observe-bar, emit-signal).
type Strategy interface {
	// Warmup is how many bars of history the strategy needs before it
	// can emit a signal; the engine feeds bars regardless, the strategy
	// itself withholds signals until ready.
	Warmup() int
	// OnBar consumes one bar and optionally returns a signal.
	OnBar(event MarketEvent) *SignalEvent
}

// Preinitializer is the optional pre-initialize capability (spec §4.4,
// §4.8 setup step 2): a strategy that can be handed the full series up
// front to pre-compute signals, as a performance optimization permitted
// only because its outputs must equal the bar-by-bar mode (composite
// equivalence, spec §8 invariant 8).
type Preinitializer interface {
	Preinitialize(series core.CandleSeries)
}

// RegimeStatsReporter is the optional regime-stats capability (spec §9
// capability set, §6.3 "regime_stats"): strategies that filter entries
// by regime report how many were skipped.
type RegimeStatsReporter interface {
	SignalsSkippedByRegime() int
}
