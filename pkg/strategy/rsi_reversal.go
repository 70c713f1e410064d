package strategy

import (
	"github.com/raykavin/backtestlab/pkg/core"
	"github.com/raykavin/backtestlab/pkg/indicator"
)

// RSIReversalStrategy buys while RSI is below an oversold threshold and
// sells while it is above an overbought one (spec §4.5). Strength scales
// with distance from the threshold, capped at 1.
type RSIReversalStrategy struct {
	period               int
	oversold, overbought float64

	rsi        *indicator.RSIState
	inPosition bool
}

// NewRSIReversalStrategy validates parameters and constructs the
// strategy. oversold must be strictly less than overbought (spec §7).
func NewRSIReversalStrategy(period int, oversold, overbought float64) (*RSIReversalStrategy, error) {
	if period < 2 {
		return nil, core.NewConstructionError("RSIReversalStrategy", "period must be at least 2")
	}
	if oversold >= overbought {
		return nil, core.NewConstructionError("RSIReversalStrategy", "oversold must be less than overbought")
	}
	return &RSIReversalStrategy{
		period:     period,
		oversold:   oversold,
		overbought: overbought,
		rsi:        indicator.NewRSIState(period),
	}, nil
}

// Warmup reports the RSI period.
func (s *RSIReversalStrategy) Warmup() int {
	return s.period
}

// OnBar folds the bar's close into RSI and signals on threshold breach.
func (s *RSIReversalStrategy) OnBar(event MarketEvent) *SignalEvent {
	rsi := s.rsi.Update(event.Candle.Close)
	if !core.IsDefined(rsi) {
		return nil
	}

	switch {
	case rsi < s.oversold && !s.inPosition:
		s.inPosition = true
		strength := clampStrength((s.oversold - rsi) / s.oversold)
		return &SignalEvent{Timestamp: event.OpenTime, Symbol: event.Symbol, Kind: SignalBuy, Strength: strength}
	case rsi > s.overbought && s.inPosition:
		s.inPosition = false
		strength := clampStrength((rsi - s.overbought) / (100 - s.overbought))
		return &SignalEvent{Timestamp: event.OpenTime, Symbol: event.Symbol, Kind: SignalSell, Strength: strength}
	}
	return nil
}

func clampStrength(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
