package indicator

import "github.com/markcheno/go-talib"

// SuperTrend is a bonus trend-following band built on talib's Wilder-
// smoothed ATR rather than this package's own simple-average ATR: it is
// only ever consumed by the SuperTrend strategy, never by the adaptive
// threshold or regime pipeline, so the smoothing mismatch with the rest
// of the indicator set has no bearing on those invariants.
func SuperTrend(high, low, close []float64, atrPeriod int, factor float64) []float64 {
	length := len(close)
	if length == 0 {
		return []float64{}
	}

	atr := talib.Atr(high, low, close, atrPeriod)

	// Initialize all required bands
	basicUpperBand := make([]float64, length)
	basicLowerBand := make([]float64, length)
	finalUpperBand := make([]float64, length)
	finalLowerBand := make([]float64, length)
	superTrend := make([]float64, length)

	// Skip first element since we need previous values
	for i := 1; i < length; i++ {
		// Calculate basic bands
		median := (high[i] + low[i]) / 2.0
		basicUpperBand[i] = median + atr[i]*factor
		basicLowerBand[i] = median - atr[i]*factor

		// Calculate final upper band
		if basicUpperBand[i] < finalUpperBand[i-1] || close[i-1] > finalUpperBand[i-1] {
			finalUpperBand[i] = basicUpperBand[i]
		} else {
			finalUpperBand[i] = finalUpperBand[i-1]
		}

		// Calculate final lower band
		if basicLowerBand[i] > finalLowerBand[i-1] || close[i-1] < finalLowerBand[i-1] {
			finalLowerBand[i] = basicLowerBand[i]
		} else {
			finalLowerBand[i] = finalLowerBand[i-1]
		}

		// Determine SuperTrend value based on previous SuperTrend and current price
		if finalUpperBand[i-1] == superTrend[i-1] {
			// Previous SuperTrend was the upper band
			if close[i] > finalUpperBand[i] {
				superTrend[i] = finalLowerBand[i] // Trend changed to up
			} else {
				superTrend[i] = finalUpperBand[i] // Trend remains down
			}
		} else {
			// Previous SuperTrend was the lower band
			if close[i] < finalLowerBand[i] {
				superTrend[i] = finalUpperBand[i] // Trend changed to down
			} else {
				superTrend[i] = finalLowerBand[i] // Trend remains up
			}
		}
	}

	return superTrend
}

// SuperTrendState is the incremental counterpart to SuperTrend. The band's
// recurrence is path-dependent on every prior bar (each final band carries
// forward from the one before it), and talib's Wilder ATR exposes no
// streaming form, so Update keeps the full bar history seen so far and
// replays the batch function over it, returning only the newest value.
// This costs O(n) work per bar rather than O(1), but guarantees exact
// agreement with SuperTrend by construction instead of by a hand-derived
// recurrence that could drift from talib's internal ATR convention.
type SuperTrendState struct {
	atrPeriod int
	factor    float64

	highs, lows, closes []float64
}

// NewSuperTrendState constructs an incremental SuperTrend tracker for the
// given ATR period and band factor.
func NewSuperTrendState(atrPeriod int, factor float64) *SuperTrendState {
	return &SuperTrendState{atrPeriod: atrPeriod, factor: factor}
}

// Update folds in the next bar and returns the SuperTrend value at that bar.
func (s *SuperTrendState) Update(high, low, close float64) float64 {
	s.highs = append(s.highs, high)
	s.lows = append(s.lows, low)
	s.closes = append(s.closes, close)

	band := SuperTrend(s.highs, s.lows, s.closes, s.atrPeriod, s.factor)
	return band[len(band)-1]
}
