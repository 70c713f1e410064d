package strategy

import (
	"github.com/raykavin/backtestlab/pkg/core"
	"github.com/raykavin/backtestlab/pkg/indicator"
)

// BollingerBandsStrategy buys when close is within touchThreshold below
// the lower band and sells when close is within touchThreshold above the
// upper band (spec §4.5).
type BollingerBandsStrategy struct {
	period         int
	numStd         float64
	touchThreshold float64

	boll       *indicator.BollingerState
	inPosition bool
}

// NewBollingerBandsStrategy validates parameters and constructs the
// strategy. numStd must be strictly positive (spec §7).
func NewBollingerBandsStrategy(period int, numStd, touchThreshold float64) (*BollingerBandsStrategy, error) {
	if period < 2 {
		return nil, core.NewConstructionError("BollingerBandsStrategy", "period must be at least 2")
	}
	if numStd <= 0 {
		return nil, core.NewConstructionError("BollingerBandsStrategy", "num_std must be positive")
	}
	return &BollingerBandsStrategy{
		period:         period,
		numStd:         numStd,
		touchThreshold: touchThreshold,
		boll:           indicator.NewBollingerState(period, numStd),
	}, nil
}

// Warmup reports the Bollinger period.
func (s *BollingerBandsStrategy) Warmup() int {
	return s.period
}

// OnBar folds the bar's close into the bands and signals on a touch.
func (s *BollingerBandsStrategy) OnBar(event MarketEvent) *SignalEvent {
	close := event.Candle.Close
	_, upper, lower, _ := s.boll.Update(close)
	if !core.IsDefined(upper) || !core.IsDefined(lower) {
		return nil
	}

	switch {
	case close <= lower+s.touchThreshold && !s.inPosition:
		s.inPosition = true
		return &SignalEvent{Timestamp: event.OpenTime, Symbol: event.Symbol, Kind: SignalBuy, Strength: 1.0}
	case close >= upper-s.touchThreshold && s.inPosition:
		s.inPosition = false
		return &SignalEvent{Timestamp: event.OpenTime, Symbol: event.Symbol, Kind: SignalSell, Strength: 1.0}
	}
	return nil
}
