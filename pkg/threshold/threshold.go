// Package threshold implements the adaptive percentile thresholds that
// feed the regime classifier (spec §4.2): rolling FIFO windows over the
// ATR-normalized and Bollinger-width-normalized series, with p30/p70
// bounds recomputed from the windows via gonum's linear-interpolation
// quantile estimator.
package threshold

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultWindow is the FIFO window size W (spec §4.2).
	DefaultWindow = 100

	defaultATRLow    = 0.005
	defaultATRHigh   = 0.015
	defaultBollLow   = 0.02
	defaultBollHigh  = 0.06
	minSampleDivisor = 2
	maxMinSamples    = 30
)

// Bounds is a p30/p70 pair for one normalized series.
type Bounds struct {
	P30 float64
	P70 float64
}

// AdaptiveThresholds maintains two bounded FIFO windows of normalized
// volatility measures and derives percentile bounds from them. Until a
// window has collected min(W/2, 30) samples, Percentiles returns the
// conservative default bounds instead of a noisy estimate from a small
// sample.
type AdaptiveThresholds struct {
	window    int
	minSample int
	atr       *ring
	bollWidth *ring
}

// New creates adaptive thresholds with a FIFO window of size w. w<=0
// falls back to DefaultWindow.
func New(w int) *AdaptiveThresholds {
	if w <= 0 {
		w = DefaultWindow
	}
	minSample := w / minSampleDivisor
	if minSample > maxMinSamples {
		minSample = maxMinSamples
	}
	return &AdaptiveThresholds{
		window:    w,
		minSample: minSample,
		atr:       newRing(w),
		bollWidth: newRing(w),
	}
}

// Update folds in the next bar's normalized ATR and Bollinger width.
// An undefined (NaN) sample is skipped for that axis rather than
// poisoning the FIFO window and every quantile derived from it.
func (a *AdaptiveThresholds) Update(atrNorm, bollWidth float64) {
	if !math.IsNaN(atrNorm) {
		a.atr.push(atrNorm)
	}
	if !math.IsNaN(bollWidth) {
		a.bollWidth.push(bollWidth)
	}
}

// Percentiles returns the current p30/p70 bounds for both normalized
// series. Each series falls back to the spec's conservative defaults on
// its own while its window is below the minimum sample count.
func (a *AdaptiveThresholds) Percentiles() (atrBounds, bollBounds Bounds) {
	atrBounds = a.bounds(a.atr, defaultATRLow, defaultATRHigh)
	bollBounds = a.bounds(a.bollWidth, defaultBollLow, defaultBollHigh)
	return
}

func (a *AdaptiveThresholds) bounds(r *ring, lowDefault, highDefault float64) Bounds {
	if r.len() < a.minSample {
		return Bounds{P30: lowDefault, P70: highDefault}
	}
	data := r.sorted()
	return Bounds{
		P30: stat.Quantile(0.30, stat.LinInterp, data, nil),
		P70: stat.Quantile(0.70, stat.LinInterp, data, nil),
	}
}

// ring is a fixed-capacity FIFO buffer of float64 samples.
type ring struct {
	buf    []float64
	pos    int
	filled int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]float64, capacity)}
}

func (r *ring) push(v float64) {
	r.buf[r.pos] = v
	r.pos = (r.pos + 1) % len(r.buf)
	if r.filled < len(r.buf) {
		r.filled++
	}
}

func (r *ring) len() int {
	return r.filled
}

func (r *ring) sorted() []float64 {
	out := make([]float64, r.filled)
	copy(out, r.buf[:r.filled])
	sort.Float64s(out)
	return out
}
