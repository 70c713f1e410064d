package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMACrossStrategy_RejectsFastNotLessThanSlow(t *testing.T) {
	_, err := NewMACrossStrategy(10, 10, MATypeSMA)
	assert.Error(t, err)
	_, err = NewMACrossStrategy(10, 5, MATypeSMA)
	assert.Error(t, err)
}

func TestNewMACrossStrategy_RejectsNonPositivePeriods(t *testing.T) {
	_, err := NewMACrossStrategy(0, 5, MATypeSMA)
	assert.Error(t, err)
}

func TestNewMACrossStrategy_RejectsUnknownMAType(t *testing.T) {
	_, err := NewMACrossStrategy(2, 5, MAType("bogus"))
	assert.Error(t, err)
}

func TestMACrossStrategy_Warmup(t *testing.T) {
	s, err := NewMACrossStrategy(2, 7, MATypeSMA)
	require.NoError(t, err)
	assert.Equal(t, 7, s.Warmup())
}

func TestMACrossStrategy_BuysOnBullishCrossAndSellsOnBearish(t *testing.T) {
	s, err := NewMACrossStrategy(2, 4, MATypeSMA)
	require.NoError(t, err)

	closes := []float64{10, 10, 10, 10, 10, 13, 16, 19, 22, 25, 22, 19, 16, 13, 10, 7}
	series := candlesFromCloses(closes)

	var signals []*SignalEvent
	for _, candle := range series {
		if sig := s.OnBar(marketEvent(candle)); sig != nil {
			signals = append(signals, sig)
		}
	}

	require.Len(t, signals, 2)
	assert.Equal(t, SignalBuy, signals[0].Kind)
	assert.Equal(t, SignalSell, signals[1].Kind)
}

func TestMACrossStrategy_NoSignalDuringWarmup(t *testing.T) {
	s, err := NewMACrossStrategy(2, 10, MATypeSMA)
	require.NoError(t, err)

	series := candlesFromCloses([]float64{10, 11, 12})
	for _, candle := range series {
		assert.Nil(t, s.OnBar(marketEvent(candle)))
	}
}

func TestMACrossStrategy_EMAVariant(t *testing.T) {
	s, err := NewMACrossStrategy(2, 5, MATypeEMA)
	require.NoError(t, err)

	closes := []float64{10, 10, 10, 10, 10, 30, 32, 34, 36, 4, 3, 2}
	series := candlesFromCloses(closes)

	var signals []*SignalEvent
	for _, candle := range series {
		if sig := s.OnBar(marketEvent(candle)); sig != nil {
			signals = append(signals, sig)
		}
	}
	assert.NotEmpty(t, signals)
}
