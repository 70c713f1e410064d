package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrueRange_FirstBarIsHighMinusLow(t *testing.T) {
	highs := []float64{10, 12}
	lows := []float64{8, 9}
	closes := []float64{9, 11}
	tr := TrueRange(highs, lows, closes)
	assert.InDelta(t, 2, tr[0], 1e-9)
}

func TestTrueRange_UsesPreviousCloseWhenWider(t *testing.T) {
	highs := []float64{10, 10.5}
	lows := []float64{8, 9}
	closes := []float64{2, 9}
	tr := TrueRange(highs, lows, closes)
	assert.InDelta(t, 8.5, tr[1], 1e-9)
}

func TestATR_BatchAndIncrementalAgree(t *testing.T) {
	highs := []float64{10, 12, 9, 20, 25, 6, 30, 19, 10, 40}
	lows := []float64{8, 9, 7, 14, 20, 3, 22, 15, 8, 30}
	closes := []float64{9, 11, 8, 18, 22, 4, 28, 17, 9, 38}

	batch := ATR(highs, lows, closes, 4)

	state := NewATRState(4)
	inc := make([]float64, len(closes))
	for i := range closes {
		inc[i] = state.Update(highs[i], lows[i], closes[i])
	}

	assertFloatSlicesEqual(t, batch, inc)
}
