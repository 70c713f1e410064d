package strategy

import (
	"github.com/raykavin/backtestlab/pkg/core"
	"github.com/raykavin/backtestlab/pkg/indicator"
)

// SuperTrendStrategy is a bonus strategy (beyond the spec's required
// four built-ins) layered on the talib-backed SuperTrend band: buy when
// close crosses above the band, sell when it crosses below. Preinitialize
// gives it the precomputed band for the whole run (spec §4.4 fast path);
// without it, OnBar falls back to indicator.SuperTrendState, which
// recomputes the band from its accumulated history on every bar since
// the band's own recurrence is path-dependent on every prior close.
type SuperTrendStrategy struct {
	atrPeriod int
	factor    float64

	band []float64
	pos  int

	state *indicator.SuperTrendState

	prevClose float64
	prevBand  float64
	havePrev  bool

	inPosition bool
}

// NewSuperTrendStrategy validates parameters and constructs the strategy.
func NewSuperTrendStrategy(atrPeriod int, factor float64) (*SuperTrendStrategy, error) {
	if atrPeriod < 2 {
		return nil, core.NewConstructionError("SuperTrendStrategy", "atr_period must be at least 2")
	}
	if factor <= 0 {
		return nil, core.NewConstructionError("SuperTrendStrategy", "factor must be positive")
	}
	return &SuperTrendStrategy{
		atrPeriod: atrPeriod, factor: factor,
		state: indicator.NewSuperTrendState(atrPeriod, factor),
	}, nil
}

// Warmup reports the ATR period used to seed the band.
func (s *SuperTrendStrategy) Warmup() int {
	return s.atrPeriod
}

// Preinitialize pre-computes the SuperTrend band over the full series
// (spec §4.4 optional lifecycle hook).
func (s *SuperTrendStrategy) Preinitialize(series core.CandleSeries) {
	s.band = indicator.SuperTrend(series.Highs(), series.Lows(), series.Closes(), s.atrPeriod, s.factor)
	s.pos = 0
}

// OnBar advances the band by one bar, from the precomputed slice if
// Preinitialize ran or from the incremental state otherwise, and signals
// on cross.
func (s *SuperTrendStrategy) OnBar(event MarketEvent) *SignalEvent {
	close := event.Candle.Close

	var band float64
	if s.band != nil {
		if s.pos >= len(s.band) {
			return nil
		}
		band = s.band[s.pos]
		s.pos++
	} else {
		band = s.state.Update(event.Candle.High, event.Candle.Low, close)
	}

	defer func() {
		s.prevClose, s.prevBand, s.havePrev = close, band, true
	}()

	if !s.havePrev {
		return nil
	}

	switch {
	case s.prevClose <= s.prevBand && close > band && !s.inPosition:
		s.inPosition = true
		return &SignalEvent{Timestamp: event.OpenTime, Symbol: event.Symbol, Kind: SignalBuy, Strength: 1.0}
	case s.prevClose >= s.prevBand && close < band && s.inPosition:
		s.inPosition = false
		return &SignalEvent{Timestamp: event.OpenTime, Symbol: event.Symbol, Kind: SignalSell, Strength: 1.0}
	}
	return nil
}
