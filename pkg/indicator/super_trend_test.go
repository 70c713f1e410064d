package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuperTrend_OutputLengthMatchesInput(t *testing.T) {
	high := []float64{10, 12, 9, 20, 25, 6, 30, 19, 10, 40, 33, 21, 27, 19, 16, 22}
	low := []float64{8, 9, 7, 14, 20, 3, 22, 15, 8, 30, 25, 18, 20, 14, 12, 17}
	close := []float64{9, 11, 8, 18, 22, 4, 28, 17, 9, 38, 29, 20, 24, 16, 14, 20}

	out := SuperTrend(high, low, close, 5, 3)
	assert.Len(t, out, len(close))
	assert.Zero(t, out[0])
}

func TestSuperTrend_EmptySeries(t *testing.T) {
	out := SuperTrend(nil, nil, nil, 5, 3)
	assert.Empty(t, out)
}

func TestSuperTrend_BatchAndIncrementalAgree(t *testing.T) {
	high := []float64{10, 12, 9, 20, 25, 6, 30, 19, 10, 40, 33, 21, 27, 19, 16, 22}
	low := []float64{8, 9, 7, 14, 20, 3, 22, 15, 8, 30, 25, 18, 20, 14, 12, 17}
	close := []float64{9, 11, 8, 18, 22, 4, 28, 17, 9, 38, 29, 20, 24, 16, 14, 20}

	batch := SuperTrend(high, low, close, 5, 3)

	state := NewSuperTrendState(5, 3)
	incremental := make([]float64, len(close))
	for i := range close {
		incremental[i] = state.Update(high[i], low[i], close[i])
	}

	assertFloatSlicesEqual(t, batch, incremental)
}
