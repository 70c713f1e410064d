package indicator

import (
	"math"

	"github.com/raykavin/backtestlab/pkg/core"
)

// TrueRange computes the per-bar true range: max(high-low, |high-prevClose|,
// |low-prevClose|). The first bar has no previous close, so TR is simply
// high-low there.
func TrueRange(highs, lows, closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := range closes {
		if i == 0 {
			out[i] = highs[i] - lows[i]
			continue
		}
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		out[i] = math.Max(hl, math.Max(hc, lc))
	}
	return out
}

// ATR computes the average true range over period n as a simple (not
// Wilder-smoothed) moving average of TrueRange (spec §4.1). Undefined for
// the first n bars (spec §8 invariant 9), same warm-up rule as SMA.
func ATR(highs, lows, closes []float64, n int) []float64 {
	tr := TrueRange(highs, lows, closes)
	return SMA(tr, n)
}

// ATRState is the incremental counterpart of ATR.
type ATRState struct {
	sma       *SMAState
	prevClose float64
	hasPrev   bool
}

// NewATRState creates incremental ATR state for period n.
func NewATRState(n int) *ATRState {
	return &ATRState{sma: NewSMAState(n)}
}

// Update folds in the next (high, low, close) bar and returns the current
// ATR, or core.Undefined during warm-up.
func (s *ATRState) Update(high, low, close float64) float64 {
	var tr float64
	if !s.hasPrev {
		tr = high - low
		s.hasPrev = true
	} else {
		hl := high - low
		hc := math.Abs(high - s.prevClose)
		lc := math.Abs(low - s.prevClose)
		tr = math.Max(hl, math.Max(hc, lc))
	}
	s.prevClose = close
	v := s.sma.Update(tr)
	if !core.IsDefined(v) {
		return core.Undefined
	}
	return v
}
