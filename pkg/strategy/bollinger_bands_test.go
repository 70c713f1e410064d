package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBollingerBandsStrategy_RejectsShortPeriod(t *testing.T) {
	_, err := NewBollingerBandsStrategy(1, 2, 0)
	assert.Error(t, err)
}

func TestNewBollingerBandsStrategy_RejectsNonPositiveNumStd(t *testing.T) {
	_, err := NewBollingerBandsStrategy(20, 0, 0)
	assert.Error(t, err)
	_, err = NewBollingerBandsStrategy(20, -1, 0)
	assert.Error(t, err)
}

func TestBollingerBandsStrategy_Warmup(t *testing.T) {
	s, err := NewBollingerBandsStrategy(20, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, s.Warmup())
}

func TestBollingerBandsStrategy_SignalsAlternateStartingWithBuy(t *testing.T) {
	// A touchThreshold far larger than any band width makes the touch
	// conditions true on every defined bar, so the flat/long state
	// machine alternates buy/sell every bar once warmup completes.
	s, err := NewBollingerBandsStrategy(4, 2, 1e6)
	require.NoError(t, err)

	closes := []float64{100, 102, 101, 99, 97, 90, 70, 95, 110, 130, 125, 115, 105, 100, 95}
	series := candlesFromCloses(closes)

	var signals []*SignalEvent
	for _, candle := range series {
		if sig := s.OnBar(marketEvent(candle)); sig != nil {
			signals = append(signals, sig)
		}
	}

	require.NotEmpty(t, signals)
	assert.Equal(t, SignalBuy, signals[0].Kind)
	for i := 1; i < len(signals); i++ {
		if signals[i-1].Kind == SignalBuy {
			assert.Equal(t, SignalSell, signals[i].Kind)
		} else {
			assert.Equal(t, SignalBuy, signals[i].Kind)
		}
	}
}

func TestBollingerBandsStrategy_NoSignalDuringWarmup(t *testing.T) {
	s, err := NewBollingerBandsStrategy(20, 2, 0.5)
	require.NoError(t, err)

	series := candlesFromCloses([]float64{10, 11, 12})
	for _, candle := range series {
		assert.Nil(t, s.OnBar(marketEvent(candle)))
	}
}
