package indicator

import "github.com/raykavin/backtestlab/pkg/core"

// RSI computes the relative strength index over period n using a simple
// (not Wilder-smoothed) moving average of gains and losses of
// close-to-close differences (spec §4.1). Undefined for the first n
// bars; RSI is 100 whenever the average loss is zero.
func RSI(closes []float64, n int) []float64 {
	out := make([]float64, len(closes))
	if len(closes) == 0 {
		return out
	}
	out[0] = core.Undefined

	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		gainSum += gain
		lossSum += loss

		if i > n {
			prevDelta := closes[i-n] - closes[i-n-1]
			prevGain, prevLoss := 0.0, 0.0
			if prevDelta > 0 {
				prevGain = prevDelta
			} else {
				prevLoss = -prevDelta
			}
			gainSum -= prevGain
			lossSum -= prevLoss
		}

		if i < n {
			out[i] = core.Undefined
			continue
		}

		avgGain := gainSum / float64(n)
		avgLoss := lossSum / float64(n)
		out[i] = rsiFromAverages(avgGain, avgLoss)
	}
	return out
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// RSIState is the incremental counterpart of RSI.
type RSIState struct {
	n         int
	prevClose float64
	hasPrev   bool
	gains     []float64
	losses    []float64
	pos       int
	filled    int
	gainSum   float64
	lossSum   float64
}

// NewRSIState creates incremental RSI state for period n.
func NewRSIState(n int) *RSIState {
	return &RSIState{n: n, gains: make([]float64, n), losses: make([]float64, n)}
}

// Update folds in the next close price and returns the current RSI, or
// core.Undefined during warm-up.
func (s *RSIState) Update(close float64) float64 {
	if !s.hasPrev {
		s.prevClose = close
		s.hasPrev = true
		return core.Undefined
	}

	delta := close - s.prevClose
	s.prevClose = close
	gain, loss := 0.0, 0.0
	if delta > 0 {
		gain = delta
	} else {
		loss = -delta
	}

	if s.filled < s.n {
		s.gains[s.filled] = gain
		s.losses[s.filled] = loss
		s.gainSum += gain
		s.lossSum += loss
		s.filled++
		s.pos = s.filled % s.n
		if s.filled < s.n {
			return core.Undefined
		}
		return rsiFromAverages(s.gainSum/float64(s.n), s.lossSum/float64(s.n))
	}

	s.gainSum += gain - s.gains[s.pos]
	s.lossSum += loss - s.losses[s.pos]
	s.gains[s.pos] = gain
	s.losses[s.pos] = loss
	s.pos = (s.pos + 1) % s.n
	return rsiFromAverages(s.gainSum/float64(s.n), s.lossSum/float64(s.n))
}
