package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOBV_RisingAndFallingCloses(t *testing.T) {
	closes := []float64{10, 11, 9, 9, 12}
	volumes := []float64{100, 50, 30, 20, 40}
	out := OBV(closes, volumes)

	assert.InDelta(t, 0, out[0], 1e-9)
	assert.InDelta(t, 50, out[1], 1e-9)
	assert.InDelta(t, 20, out[2], 1e-9)
	assert.InDelta(t, 20, out[3], 1e-9)
	assert.InDelta(t, 60, out[4], 1e-9)
}

func TestOBV_BatchAndIncrementalAgree(t *testing.T) {
	closes := []float64{10, 12, 8, 20, 25, 4, 30, 18, 9, 40}
	volumes := []float64{100, 150, 80, 200, 90, 60, 300, 120, 70, 400}

	batch := OBV(closes, volumes)

	state := NewOBVState()
	inc := make([]float64, len(closes))
	for i := range closes {
		inc[i] = state.Update(closes[i], volumes[i])
	}

	assertFloatSlicesEqual(t, batch, inc)
}
