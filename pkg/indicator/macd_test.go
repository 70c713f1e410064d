package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raykavin/backtestlab/pkg/core"
)

func TestMACD_HistogramIsMACDMinusSignal(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = float64(i) + 1
	}
	r := MACD(closes, 3, 6, 2)
	for i := range closes {
		if core.IsDefined(r.MACD[i]) && core.IsDefined(r.Signal[i]) {
			assert.InDelta(t, r.MACD[i]-r.Signal[i], r.Histogram[i], 1e-9)
		} else {
			assert.False(t, core.IsDefined(r.Histogram[i]))
		}
	}
}

func TestMACD_BatchAndIncrementalAgree(t *testing.T) {
	closes := []float64{10, 12, 8, 20, 25, 4, 30, 18, 9, 40, 33, 21, 27, 19, 16, 22, 24, 31, 29, 18}
	batch := MACD(closes, 3, 6, 2)

	state := NewMACDState(3, 6, 2)
	incMACD := make([]float64, len(closes))
	incSignal := make([]float64, len(closes))
	incHist := make([]float64, len(closes))
	for i, c := range closes {
		incMACD[i], incSignal[i], incHist[i] = state.Update(c)
	}

	assertFloatSlicesEqual(t, batch.MACD, incMACD)
	assertFloatSlicesEqual(t, batch.Signal, incSignal)
	assertFloatSlicesEqual(t, batch.Histogram, incHist)
}

func TestMACD_SignalLineStartsAfterMACDWarmsUp(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = float64(i)
	}
	r := MACD(closes, 3, 6, 2)
	require.Len(t, r.Signal, len(closes))
	firstDefined := -1
	for i, v := range r.Signal {
		if core.IsDefined(v) {
			firstDefined = i
			break
		}
	}
	assert.Greater(t, firstDefined, 0)
}
