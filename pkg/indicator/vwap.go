package indicator

import "github.com/raykavin/backtestlab/pkg/core"

// VWAP computes the cumulative volume-weighted average price from the
// start of the series: cumulative sum of typical price ((high+low+close)
// /3) times volume, divided by cumulative volume (spec §4.1). Undefined
// wherever cumulative volume is still zero.
func VWAP(highs, lows, closes, volumes []float64) []float64 {
	out := make([]float64, len(closes))
	var pvSum, vSum float64
	for i := range closes {
		tp := (highs[i] + lows[i] + closes[i]) / 3
		pvSum += tp * volumes[i]
		vSum += volumes[i]
		if vSum == 0 {
			out[i] = core.Undefined
			continue
		}
		out[i] = pvSum / vSum
	}
	return out
}

// VWAPState is the incremental counterpart of VWAP.
type VWAPState struct {
	pvSum float64
	vSum  float64
}

// NewVWAPState creates incremental cumulative VWAP state.
func NewVWAPState() *VWAPState {
	return &VWAPState{}
}

// Update folds in the next (high, low, close, volume) bar and returns the
// current VWAP, or core.Undefined while cumulative volume is still zero.
func (s *VWAPState) Update(high, low, close, volume float64) float64 {
	tp := (high + low + close) / 3
	s.pvSum += tp * volume
	s.vSum += volume
	if s.vSum == 0 {
		return core.Undefined
	}
	return s.pvSum / s.vSum
}
