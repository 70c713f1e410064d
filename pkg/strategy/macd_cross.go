package strategy

import (
	"math"

	"github.com/raykavin/backtestlab/pkg/core"
	"github.com/raykavin/backtestlab/pkg/indicator"
)

// MACDCrossStrategy buys when the MACD line crosses above its signal
// line and sells when it crosses below (spec §4.5). Strength scales with
// |histogram|, capped at 1.
type MACDCrossStrategy struct {
	fast, slow, signal int

	macd         *indicator.MACDState
	macdSeries   core.Series[float64]
	signalSeries core.Series[float64]
	inPosition   bool
}

// NewMACDCrossStrategy validates parameters and constructs the strategy.
// fast must be strictly less than slow (spec §7).
func NewMACDCrossStrategy(fast, slow, signal int) (*MACDCrossStrategy, error) {
	if fast >= slow {
		return nil, core.NewConstructionError("MACDCrossStrategy", "fast must be less than slow")
	}
	if fast < 1 || signal < 1 {
		return nil, core.NewConstructionError("MACDCrossStrategy", "periods must be positive")
	}
	return &MACDCrossStrategy{
		fast: fast, slow: slow, signal: signal,
		macd: indicator.NewMACDState(fast, slow, signal),
	}, nil
}

// Warmup is conservative: slow EMA plus the signal EMA's own seeding.
func (s *MACDCrossStrategy) Warmup() int {
	return s.slow + s.signal
}

// OnBar folds the bar's close into MACD and signals on signal-line
// cross, detected via core.Series.Crossover/Crossunder over each line's
// last two values.
func (s *MACDCrossStrategy) OnBar(event MarketEvent) *SignalEvent {
	macd, signal, hist := s.macd.Update(event.Candle.Close)

	s.macdSeries = append(s.macdSeries, macd).LastValues(2)
	s.signalSeries = append(s.signalSeries, signal).LastValues(2)

	if len(s.macdSeries) < 2 || len(s.signalSeries) < 2 ||
		!core.IsDefined(s.macdSeries.Last(0)) || !core.IsDefined(s.macdSeries.Last(1)) ||
		!core.IsDefined(s.signalSeries.Last(0)) || !core.IsDefined(s.signalSeries.Last(1)) {
		return nil
	}

	bullishCross := s.macdSeries.Crossover(s.signalSeries)
	bearishCross := s.macdSeries.Crossunder(s.signalSeries)
	strength := clampStrength(math.Abs(hist))

	switch {
	case bullishCross && !s.inPosition:
		s.inPosition = true
		return &SignalEvent{Timestamp: event.OpenTime, Symbol: event.Symbol, Kind: SignalBuy, Strength: strength}
	case bearishCross && s.inPosition:
		s.inPosition = false
		return &SignalEvent{Timestamp: event.OpenTime, Symbol: event.Symbol, Kind: SignalSell, Strength: strength}
	}
	return nil
}
