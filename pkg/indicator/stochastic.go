package indicator

import "github.com/raykavin/backtestlab/pkg/core"

// StochasticResult holds the smoothed %K and %D columns. The raw %K
// (before k-smoothing) is an internal step, not part of the public
// result (spec §4.1).
type StochasticResult struct {
	K []float64
	D []float64
}

// Stochastic computes raw %K = 100*(close - lowest low)/(highest high -
// lowest low) over a trailing window of n bars, smoothed %K = SMA(kSmooth)
// of raw %K, and %D = SMA(dSmooth) of smoothed %K (spec §4.1). Raw %K is
// 50 whenever the window's high/low range is zero (flat market).
func Stochastic(highs, lows, closes []float64, n, kSmooth, dSmooth int) StochasticResult {
	length := len(closes)
	raw := make([]float64, length)
	for i := range closes {
		if i < n-1 {
			raw[i] = core.Undefined
			continue
		}
		hh := highs[i]
		ll := lows[i]
		for j := i - n + 1; j <= i; j++ {
			if highs[j] > hh {
				hh = highs[j]
			}
			if lows[j] < ll {
				ll = lows[j]
			}
		}
		rng := hh - ll
		if rng == 0 {
			raw[i] = 50
			continue
		}
		raw[i] = (closes[i] - ll) / rng * 100
	}
	k := smaOfColumn(raw, kSmooth)
	d := smaOfColumn(k, dSmooth)
	return StochasticResult{K: k, D: d}
}

// StochasticState is the incremental counterpart of Stochastic.
type StochasticState struct {
	n           int
	highs, lows []float64
	pos         int
	filled      int
	kAvg        *smaColumnState
	dAvg        *smaColumnState
}

// NewStochasticState creates incremental stochastic state.
func NewStochasticState(n, kSmooth, dSmooth int) *StochasticState {
	return &StochasticState{
		n:     n,
		highs: make([]float64, n),
		lows:  make([]float64, n),
		kAvg:  newSMAColumnState(kSmooth),
		dAvg:  newSMAColumnState(dSmooth),
	}
}

// Update folds in the next (high, low, close) bar and returns (%K, %D).
func (s *StochasticState) Update(high, low, close float64) (float64, float64) {
	s.highs[s.pos] = high
	s.lows[s.pos] = low
	s.pos = (s.pos + 1) % s.n
	if s.filled < s.n {
		s.filled++
	}

	var raw float64
	if s.filled < s.n {
		raw = core.Undefined
	} else {
		hh, ll := s.highs[0], s.lows[0]
		for i := 1; i < s.n; i++ {
			if s.highs[i] > hh {
				hh = s.highs[i]
			}
			if s.lows[i] < ll {
				ll = s.lows[i]
			}
		}
		rng := hh - ll
		if rng == 0 {
			raw = 50
		} else {
			raw = (close - ll) / rng * 100
		}
	}

	k := s.kAvg.Update(raw)
	d := s.dAvg.Update(k)
	return k, d
}
