package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raykavin/backtestlab/pkg/core"
)

func TestEMA_WarmupPrefixIsUndefined(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7}
	out := EMA(values, 3)
	assert.False(t, core.IsDefined(out[0]))
	assert.False(t, core.IsDefined(out[1]))
	assert.InDelta(t, 2.0, out[2], 1e-9)
}

func TestEMA_SeedsWithSimpleAverage(t *testing.T) {
	values := []float64{2, 4, 6}
	out := EMA(values, 3)
	assert.InDelta(t, 4.0, out[2], 1e-9)
}

func TestEMA_BatchAndIncrementalAgree(t *testing.T) {
	values := []float64{10, 11, 9, 12, 14, 13, 8, 20, 19, 21}
	batch := EMA(values, 4)

	state := NewEMAState(4)
	inc := make([]float64, len(values))
	for i, v := range values {
		inc[i] = state.Update(v)
	}

	assertFloatSlicesEqual(t, batch, inc)
}
