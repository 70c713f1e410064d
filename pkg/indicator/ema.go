package indicator

import "github.com/raykavin/backtestlab/pkg/core"

// EMA computes the exponential moving average of period n, seeded with
// the simple average of the first n values (spec §4.1) rather than the
// first observation, to avoid an arbitrary initialization bias. The
// first n-1 entries are undefined.
func EMA(values []float64, n int) []float64 {
	out := make([]float64, len(values))
	alpha := 2.0 / (float64(n) + 1.0)

	var sum float64
	var prev float64
	seeded := false
	for i, v := range values {
		if i < n-1 {
			out[i] = core.Undefined
			sum += v
			continue
		}
		if !seeded {
			sum += v
			prev = sum / float64(n)
			seeded = true
			out[i] = prev
			continue
		}
		prev = alpha*v + (1-alpha)*prev
		out[i] = prev
	}
	return out
}

// EMAState is the incremental counterpart of EMA.
type EMAState struct {
	n       int
	alpha   float64
	sum     float64
	count   int
	seeded  bool
	prev    float64
}

// NewEMAState creates incremental EMA state for period n.
func NewEMAState(n int) *EMAState {
	return &EMAState{n: n, alpha: 2.0 / (float64(n) + 1.0)}
}

// Update folds in the next value and returns the current EMA, or
// core.Undefined during warm-up.
func (s *EMAState) Update(v float64) float64 {
	if !s.seeded {
		s.count++
		s.sum += v
		if s.count < s.n {
			return core.Undefined
		}
		s.prev = s.sum / float64(s.n)
		s.seeded = true
		return s.prev
	}
	s.prev = s.alpha*v + (1-s.alpha)*s.prev
	return s.prev
}
