package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raykavin/backtestlab/pkg/core"
)

func TestSMA_WarmupPrefixIsUndefined(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	out := SMA(values, 3)
	for i := 0; i < 3; i++ {
		assert.False(t, core.IsDefined(out[i]))
	}
	assert.InDelta(t, 3.0, out[3], 1e-9)
	assert.InDelta(t, 4.0, out[4], 1e-9)
	assert.InDelta(t, 5.0, out[5], 1e-9)
}

func TestSMA_BatchAndIncrementalAgree(t *testing.T) {
	values := []float64{10, 11, 9, 12, 14, 13, 8, 20, 19, 21}
	batch := SMA(values, 4)

	state := NewSMAState(4)
	inc := make([]float64, len(values))
	for i, v := range values {
		inc[i] = state.Update(v)
	}

	assertFloatSlicesEqual(t, batch, inc)
}

func TestSMAOfColumn_HandlesLeadingUndefinedRun(t *testing.T) {
	values := []float64{core.Undefined, core.Undefined, 10, 11, 12, 13}
	out := smaOfColumn(values, 2)
	assert.False(t, core.IsDefined(out[0]))
	assert.False(t, core.IsDefined(out[1]))
	assert.False(t, core.IsDefined(out[2]))
	assert.InDelta(t, 10.5, out[3], 1e-9)
	assert.InDelta(t, 11.5, out[4], 1e-9)
	assert.InDelta(t, 12.5, out[5], 1e-9)
}

func TestSMAOfColumn_AllUndefinedStaysUndefined(t *testing.T) {
	values := []float64{core.Undefined, core.Undefined, core.Undefined}
	out := smaOfColumn(values, 2)
	for _, v := range out {
		assert.False(t, core.IsDefined(v))
	}
}

func assertFloatSlicesEqual(t *testing.T, a, b []float64) {
	t.Helper()
	if !assert.Equal(t, len(a), len(b)) {
		return
	}
	for i := range a {
		if !core.IsDefined(a[i]) || !core.IsDefined(b[i]) {
			assert.Equal(t, core.IsDefined(a[i]), core.IsDefined(b[i]), "index %d", i)
			continue
		}
		assert.InDelta(t, a[i], b[i], 1e-9, "index %d", i)
	}
}
