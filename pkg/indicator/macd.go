package indicator

import "github.com/raykavin/backtestlab/pkg/core"

// MACDResult holds the three MACD columns (spec §4.1).
type MACDResult struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes MACD = EMA(fast) - EMA(slow), its signal line
// EMA(signal) of MACD, and the histogram MACD - signal.
func MACD(closes []float64, fast, slow, signal int) MACDResult {
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	macd := make([]float64, len(closes))
	for i := range closes {
		if core.IsDefined(emaFast[i]) && core.IsDefined(emaSlow[i]) {
			macd[i] = emaFast[i] - emaSlow[i]
		} else {
			macd[i] = core.Undefined
		}
	}

	signalLine := emaOfColumn(macd, signal)

	histogram := make([]float64, len(closes))
	for i := range closes {
		if core.IsDefined(macd[i]) && core.IsDefined(signalLine[i]) {
			histogram[i] = macd[i] - signalLine[i]
		} else {
			histogram[i] = core.Undefined
		}
	}

	return MACDResult{MACD: macd, Signal: signalLine, Histogram: histogram}
}

// emaOfColumn runs the EMA seeding rule over a column that itself may
// carry a leading run of undefined (NaN) values, treating that run the
// same way EMA treats its own warm-up prefix.
func emaOfColumn(values []float64, n int) []float64 {
	out := make([]float64, len(values))
	alpha := 2.0 / (float64(n) + 1.0)

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
	count := 0
	seeded := false
	var prev float64
	for i := firstDefined; i < len(values); i++ {
		v := values[i]
		if !seeded {
			sum += v
			count++
			if count < n {
				out[i] = core.Undefined
				continue
			}
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

// MACDState is the incremental counterpart of MACD.
type MACDState struct {
	fast, slow *EMAState
	signal     *emaColumnState
}

// NewMACDState creates incremental MACD state.
func NewMACDState(fast, slow, signal int) *MACDState {
	return &MACDState{
		fast:   NewEMAState(fast),
		slow:   NewEMAState(slow),
		signal: newEMAColumnState(signal),
	}
}

// Update folds in the next close price and returns (macd, signal, histogram).
func (s *MACDState) Update(close float64) (float64, float64, float64) {
	f := s.fast.Update(close)
	sl := s.slow.Update(close)

	var macd float64
	if core.IsDefined(f) && core.IsDefined(sl) {
		macd = f - sl
	} else {
		macd = core.Undefined
	}

	signal := s.signal.Update(macd)

	var hist float64
	if core.IsDefined(macd) && core.IsDefined(signal) {
		hist = macd - signal
	} else {
		hist = core.Undefined
	}
	return macd, signal, hist
}

// emaColumnState seeds an EMA only once its input stream starts producing
// defined values, mirroring emaOfColumn for the incremental mode.
type emaColumnState struct {
	n      int
	alpha  float64
	sum    float64
	count  int
	seeded bool
	prev   float64
}

func newEMAColumnState(n int) *emaColumnState {
	return &emaColumnState{n: n, alpha: 2.0 / (float64(n) + 1.0)}
}

func (s *emaColumnState) Update(v float64) float64 {
	if !core.IsDefined(v) {
		return core.Undefined
	}
	if !s.seeded {
		s.sum += v
		s.count++
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
