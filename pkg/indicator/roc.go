package indicator

import "github.com/raykavin/backtestlab/pkg/core"

// ROC computes the rate of change over period n as a percentage:
// (close[i] - close[i-n]) / close[i-n] * 100 (spec §4.1). Undefined for
// the first n bars.
func ROC(closes []float64, n int) []float64 {
	out := make([]float64, len(closes))
	for i := range closes {
		if i < n {
			out[i] = core.Undefined
			continue
		}
		prev := closes[i-n]
		if prev == 0 {
			out[i] = core.Undefined
			continue
		}
		out[i] = (closes[i] - prev) / prev * 100
	}
	return out
}

// ROCState is the incremental counterpart of ROC.
type ROCState struct {
	n      int
	window []float64
	pos    int
	filled int
}

// NewROCState creates incremental ROC state for period n.
func NewROCState(n int) *ROCState {
	return &ROCState{n: n, window: make([]float64, n)}
}

// Update folds in the next close and returns the current ROC, or
// core.Undefined during warm-up.
func (s *ROCState) Update(close float64) float64 {
	var prev float64
	var havePrev bool
	if s.filled >= s.n {
		prev = s.window[s.pos]
		havePrev = true
	}
	s.window[s.pos] = close
	s.pos = (s.pos + 1) % s.n
	if s.filled < s.n {
		s.filled++
	}
	if !havePrev || prev == 0 {
		return core.Undefined
	}
	return (close - prev) / prev * 100
}
