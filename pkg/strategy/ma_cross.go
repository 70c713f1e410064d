package strategy

import (
	"github.com/raykavin/backtestlab/pkg/core"
	"github.com/raykavin/backtestlab/pkg/indicator"
)

// MAType selects the moving average family an MACrossStrategy tracks.
type MAType string

const (
	MATypeSMA MAType = "SMA"
	MATypeEMA MAType = "EMA"
)

// movingAverage is the minimal incremental interface shared by SMAState
// and EMAState, letting MACrossStrategy stay agnostic of which one it
// holds.
type movingAverage interface {
	Update(v float64) float64
}

// MACrossStrategy buys on a bullish fast/slow moving-average cross and
// sells on a bearish one (spec §4.5).
type MACrossStrategy struct {
	fastPeriod, slowPeriod int
	maType                 MAType

	fast, slow movingAverage
	fastSeries core.Series[float64]
	slowSeries core.Series[float64]
	inPosition bool
}

// NewMACrossStrategy validates parameters and constructs the strategy.
// fastPeriod must be strictly less than slowPeriod (spec §7 construction
// errors).
func NewMACrossStrategy(fastPeriod, slowPeriod int, maType MAType) (*MACrossStrategy, error) {
	if fastPeriod >= slowPeriod {
		return nil, core.NewConstructionError("MACrossStrategy", "fast_period must be less than slow_period")
	}
	if fastPeriod < 1 || slowPeriod < 2 {
		return nil, core.NewConstructionError("MACrossStrategy", "periods must be positive")
	}
	if maType != MATypeSMA && maType != MATypeEMA {
		return nil, core.NewConstructionError("MACrossStrategy", "ma_type must be SMA or EMA")
	}

	s := &MACrossStrategy{fastPeriod: fastPeriod, slowPeriod: slowPeriod, maType: maType}
	s.fast = newMovingAverage(maType, fastPeriod)
	s.slow = newMovingAverage(maType, slowPeriod)
	return s, nil
}

func newMovingAverage(t MAType, period int) movingAverage {
	switch t {
	case MATypeEMA:
		return indicator.NewEMAState(period)
	default:
		return indicator.NewSMAState(period)
	}
}

// Warmup reports the slow average's period, since the fast average is
// always ready first.
func (s *MACrossStrategy) Warmup() int {
	return s.slowPeriod
}

// OnBar folds the bar's close into both averages and signals on cross,
// detected via core.Series.Crossover/Crossunder over each average's last
// two values.
func (s *MACrossStrategy) OnBar(event MarketEvent) *SignalEvent {
	fast := s.fast.Update(event.Candle.Close)
	slow := s.slow.Update(event.Candle.Close)

	s.fastSeries = append(s.fastSeries, fast).LastValues(2)
	s.slowSeries = append(s.slowSeries, slow).LastValues(2)

	if len(s.fastSeries) < 2 || len(s.slowSeries) < 2 ||
		!core.IsDefined(s.fastSeries.Last(0)) || !core.IsDefined(s.fastSeries.Last(1)) ||
		!core.IsDefined(s.slowSeries.Last(0)) || !core.IsDefined(s.slowSeries.Last(1)) {
		return nil
	}

	bullishCross := s.fastSeries.Crossover(s.slowSeries)
	bearishCross := s.fastSeries.Crossunder(s.slowSeries)

	switch {
	case bullishCross && !s.inPosition:
		s.inPosition = true
		return &SignalEvent{Timestamp: event.OpenTime, Symbol: event.Symbol, Kind: SignalBuy, Strength: 1.0}
	case bearishCross && s.inPosition:
		s.inPosition = false
		return &SignalEvent{Timestamp: event.OpenTime, Symbol: event.Symbol, Kind: SignalSell, Strength: 1.0}
	}
	return nil
}
