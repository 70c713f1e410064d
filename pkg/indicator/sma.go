// Package indicator implements the stateless, bar-indexed technical
// indicators of spec §4.1. Every indicator is a pure function of
// (series, parameters); none of them read ahead of the bar being
// computed. Undefined (warm-up) entries are math.NaN(), never silently
// replaced by a default value, so a column is a plain []float64
// everywhere else in the module can range over without special-casing.
//
// Each indicator exposes two evaluation modes that must agree bit for
// bit (spec §4.1 testable property, §8 invariant 6): a batch function
// operating on the whole series, and an incremental *State with an
// Update method fed one bar at a time. Strategies (pkg/strategy) use the
// incremental form so they structurally cannot see future bars; the
// backtest engine's optional pre-computation pass (spec §4.8) uses the
// batch form.
package indicator

import (
	"math"

	"github.com/raykavin/backtestlab/pkg/core"
)

// SMA computes the simple moving average of period n over the whole
// series in one pass. The first n entries are undefined (spec §8
// invariant 9), one more than a full n-value trailing window needs:
// index n-1 stays undefined, and index n averages values[1..n].
func SMA(values []float64, n int) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= n {
			sum -= values[i-n]
		}
		if i < n {
			out[i] = core.Undefined
		} else {
			out[i] = sum / float64(n)
		}
	}
	return out
}

// SMAState is the incremental counterpart of SMA, fed one value per
// Update call. It keeps only the trailing window, not the whole history.
// To agree with the batch form's one-extra-bar warm-up (spec §8
// invariant 9), it discards its very first sample before the window
// starts filling.
type SMAState struct {
	n       int
	window  []float64
	pos     int
	filled  int
	sum     float64
	dropped bool
}

// NewSMAState creates incremental SMA state for a trailing window of n.
func NewSMAState(n int) *SMAState {
	return &SMAState{n: n, window: make([]float64, n)}
}

// Update folds in the next value and returns the current SMA, or
// core.Undefined while fewer than n+1 samples have been seen.
func (s *SMAState) Update(v float64) float64 {
	if !s.dropped {
		s.dropped = true
		return core.Undefined
	}
	if s.filled < s.n {
		s.window[s.filled] = v
		s.sum += v
		s.filled++
		s.pos = s.filled % s.n
		if s.filled < s.n {
			return core.Undefined
		}
		return s.sum / float64(s.n)
	}
	old := s.window[s.pos]
	s.window[s.pos] = v
	s.sum += v - old
	s.pos = (s.pos + 1) % s.n
	return s.sum / float64(s.n)
}

// smaOfColumn runs the SMA windowing rule over a column that itself may
// carry a leading run of undefined (NaN) values, treating that run the
// same way SMA treats its own warm-up prefix rather than poisoning the
// rolling sum with NaN.
func smaOfColumn(values []float64, n int) []float64 {
	out := make([]float64, len(values))

	firstDefined := -1
	for i, v := range values {
		if core.IsDefined(v) {
			firstDefined = i
			break
		}
		out[i] = core.Undefined
	}
	if firstDefined == -1 {
		return out
	}

	var sum float64
	for i := firstDefined; i < len(values); i++ {
		sum += values[i]
		rel := i - firstDefined
		if rel >= n {
			sum -= values[i-n]
		}
		if rel < n-1 {
			out[i] = core.Undefined
		} else {
			out[i] = sum / float64(n)
		}
	}
	return out
}

// smaColumnState is the incremental counterpart of smaOfColumn: a plain
// windowed average fed one (possibly undefined) value at a time, seeding
// only once the input stream starts producing defined values.
type smaColumnState struct {
	n      int
	window []float64
	pos    int
	filled int
	sum    float64
}

func newSMAColumnState(n int) *smaColumnState {
	return &smaColumnState{n: n, window: make([]float64, n)}
}

func (s *smaColumnState) Update(v float64) float64 {
	if !core.IsDefined(v) {
		return core.Undefined
	}
	if s.filled < s.n {
		s.window[s.filled] = v
		s.sum += v
		s.filled++
		s.pos = s.filled % s.n
		if s.filled < s.n {
			return core.Undefined
		}
		return s.sum / float64(s.n)
	}
	old := s.window[s.pos]
	s.window[s.pos] = v
	s.sum += v - old
	s.pos = (s.pos + 1) % s.n
	return s.sum / float64(s.n)
}

func populationStdDev(values []float64, mean float64) float64 {
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}
