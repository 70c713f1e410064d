package indicator

// OBV computes on-balance volume: a running total that adds the bar's
// volume when close rises, subtracts it when close falls, and leaves the
// total unchanged on an unchanged close (spec §4.1). Defined from the
// first bar (OBV starts at 0).
func OBV(closes, volumes []float64) []float64 {
	out := make([]float64, len(closes))
	var running float64
	for i := range closes {
		if i == 0 {
			out[i] = running
			continue
		}
		switch {
		case closes[i] > closes[i-1]:
			running += volumes[i]
		case closes[i] < closes[i-1]:
			running -= volumes[i]
		}
		out[i] = running
	}
	return out
}

// OBVState is the incremental counterpart of OBV.
type OBVState struct {
	running   float64
	prevClose float64
	hasPrev   bool
}

// NewOBVState creates incremental OBV state.
func NewOBVState() *OBVState {
	return &OBVState{}
}

// Update folds in the next (close, volume) bar and returns the running OBV.
func (s *OBVState) Update(close, volume float64) float64 {
	if !s.hasPrev {
		s.prevClose = close
		s.hasPrev = true
		return s.running
	}
	switch {
	case close > s.prevClose:
		s.running += volume
	case close < s.prevClose:
		s.running -= volume
	}
	s.prevClose = close
	return s.running
}
