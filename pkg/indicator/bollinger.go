package indicator

import "github.com/raykavin/backtestlab/pkg/core"

// BollingerResult holds the three Bollinger Band columns (spec §4.1).
type BollingerResult struct {
	Middle []float64
	Upper  []float64
	Lower  []float64
	Width  []float64 // (Upper - Lower) / Middle, for adaptive-threshold normalization
}

// Bollinger computes a middle SMA(n) band with upper/lower bands at
// middle +/- k population standard deviations of the same trailing
// window. Undefined for the first n bars (spec §8 invariant 9).
func Bollinger(closes []float64, n int, k float64) BollingerResult {
	mid := SMA(closes, n)
	upper := make([]float64, len(closes))
	lower := make([]float64, len(closes))
	width := make([]float64, len(closes))

	for i := range closes {
		if !core.IsDefined(mid[i]) {
			upper[i] = core.Undefined
			lower[i] = core.Undefined
			width[i] = core.Undefined
			continue
		}
		window := closes[i-n+1 : i+1]
		sd := populationStdDev(window, mid[i])
		upper[i] = mid[i] + k*sd
		lower[i] = mid[i] - k*sd
		if mid[i] != 0 {
			width[i] = (upper[i] - lower[i]) / mid[i]
		} else {
			width[i] = core.Undefined
		}
	}
	return BollingerResult{Middle: mid, Upper: upper, Lower: lower, Width: width}
}

// BollingerState is the incremental counterpart of Bollinger. Like
// SMAState, it discards its first sample to agree with the batch form's
// one-extra-bar warm-up (spec §8 invariant 9).
type BollingerState struct {
	n       int
	k       float64
	window  []float64
	pos     int
	filled  int
	sum     float64
	dropped bool
}

// NewBollingerState creates incremental Bollinger state.
func NewBollingerState(n int, k float64) *BollingerState {
	return &BollingerState{n: n, k: k, window: make([]float64, n)}
}

// Update folds in the next close and returns (middle, upper, lower, width).
func (s *BollingerState) Update(close float64) (float64, float64, float64, float64) {
	if !s.dropped {
		s.dropped = true
		return core.Undefined, core.Undefined, core.Undefined, core.Undefined
	}
	if s.filled < s.n {
		s.window[s.filled] = close
		s.sum += close
		s.filled++
		s.pos = s.filled % s.n
		if s.filled < s.n {
			return core.Undefined, core.Undefined, core.Undefined, core.Undefined
		}
	} else {
		old := s.window[s.pos]
		s.window[s.pos] = close
		s.sum += close - old
		s.pos = (s.pos + 1) % s.n
	}

	mid := s.sum / float64(s.n)
	sd := populationStdDev(s.window, mid)
	upper := mid + s.k*sd
	lower := mid - s.k*sd
	var width float64
	if mid != 0 {
		width = (upper - lower) / mid
	} else {
		width = core.Undefined
	}
	return mid, upper, lower, width
}
