package indicator

import (
	"math"

	"github.com/raykavin/backtestlab/pkg/core"
)

// ADX computes the average directional index over period n using simple
// (non-Wilder) moving averages of +DM/-DM and true range to derive a
// directional index (DX) per bar, then a 2-bar average of DX as the
// final nested smoothing step (spec §4.1, §8 invariant 9: ADX needs one
// more bar of warm-up than the N-bar base average it nests). Directional
// movement ties (up-move equals down-move) count as neither +DM nor -DM.
// The result is clamped to [0, 100] to absorb floating-point drift at
// the DX boundary. Undefined for the first n+1 bars.
func ADX(highs, lows, closes []float64, n int) []float64 {
	length := len(closes)
	plusDM := make([]float64, length)
	minusDM := make([]float64, length)
	tr := TrueRange(highs, lows, closes)

	for i := 1; i < length; i++ {
		upMove := highs[i] - highs[i-1]
		downMove := lows[i-1] - lows[i]
		switch {
		case upMove > downMove && upMove > 0:
			plusDM[i] = upMove
		case downMove > upMove && downMove > 0:
			minusDM[i] = downMove
		}
	}

	smPlusDM := SMA(plusDM, n)
	smMinusDM := SMA(minusDM, n)
	smTR := SMA(tr, n)

	dx := make([]float64, length)
	for i := range dx {
		dx[i] = directionalIndex(smPlusDM[i], smMinusDM[i], smTR[i])
	}

	out := make([]float64, length)
	for i := range out {
		if i == 0 || !core.IsDefined(dx[i]) || !core.IsDefined(dx[i-1]) {
			out[i] = core.Undefined
			continue
		}
		out[i] = clamp((dx[i-1]+dx[i])/2, 0, 100)
	}
	return out
}

func directionalIndex(smPlusDM, smMinusDM, smTR float64) float64 {
	if !core.IsDefined(smPlusDM) || !core.IsDefined(smTR) || smTR == 0 {
		return core.Undefined
	}
	plusDI := 100 * smPlusDM / smTR
	minusDI := 100 * smMinusDM / smTR
	sum := plusDI + minusDI
	if sum == 0 {
		return 0
	}
	return 100 * math.Abs(plusDI-minusDI) / sum
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ADXState is the incremental counterpart of ADX.
type ADXState struct {
	hasPrev    bool
	prevHigh   float64
	prevLow    float64
	prevClose  float64
	plusDMAvg  *SMAState
	minusDMAvg *SMAState
	trAvg      *SMAState
	prevDX     float64
	hasPrevDX  bool
}

// NewADXState creates incremental ADX state for period n.
func NewADXState(n int) *ADXState {
	return &ADXState{
		plusDMAvg:  NewSMAState(n),
		minusDMAvg: NewSMAState(n),
		trAvg:      NewSMAState(n),
	}
}

// Update folds in the next (high, low, close) bar and returns the current
// ADX, or core.Undefined during warm-up.
func (s *ADXState) Update(high, low, close float64) float64 {
	var plusDM, minusDM, tr float64

	if !s.hasPrev {
		tr = high - low
	} else {
		upMove := high - s.prevHigh
		downMove := s.prevLow - low
		switch {
		case upMove > downMove && upMove > 0:
			plusDM = upMove
		case downMove > upMove && downMove > 0:
			minusDM = downMove
		}
		hl := high - low
		hc := math.Abs(high - s.prevClose)
		lc := math.Abs(low - s.prevClose)
		tr = math.Max(hl, math.Max(hc, lc))
	}
	s.prevHigh, s.prevLow, s.prevClose = high, low, close
	s.hasPrev = true

	smPlusDM := s.plusDMAvg.Update(plusDM)
	smMinusDM := s.minusDMAvg.Update(minusDM)
	smTR := s.trAvg.Update(tr)

	dx := directionalIndex(smPlusDM, smMinusDM, smTR)

	if !core.IsDefined(dx) {
		s.hasPrevDX = false
		return core.Undefined
	}
	if !s.hasPrevDX {
		s.prevDX = dx
		s.hasPrevDX = true
		return core.Undefined
	}
	adx := clamp((s.prevDX+dx)/2, 0, 100)
	s.prevDX = dx
	return adx
}
