package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSuperTrendStrategy_RejectsShortATRPeriod(t *testing.T) {
	_, err := NewSuperTrendStrategy(1, 3)
	assert.Error(t, err)
}

func TestNewSuperTrendStrategy_RejectsNonPositiveFactor(t *testing.T) {
	_, err := NewSuperTrendStrategy(10, 0)
	assert.Error(t, err)
}

func TestSuperTrendStrategy_Warmup(t *testing.T) {
	s, err := NewSuperTrendStrategy(10, 3)
	require.NoError(t, err)
	assert.Equal(t, 10, s.Warmup())
}

func TestSuperTrendStrategy_FallsBackToIncrementalStateWithoutPreinitialize(t *testing.T) {
	closes := []float64{10, 12, 9, 20, 25, 6, 30, 19, 10, 40, 33, 21, 27, 19, 16, 22}
	series := candlesFromCloses(closes)

	preinitialized, err := NewSuperTrendStrategy(5, 3)
	require.NoError(t, err)
	preinitialized.Preinitialize(series)

	incremental, err := NewSuperTrendStrategy(5, 3)
	require.NoError(t, err)

	for _, candle := range series {
		event := marketEvent(candle)
		assert.Equal(t, preinitialized.OnBar(event), incremental.OnBar(event))
	}
}

func TestSuperTrendStrategy_PreinitializeThenOnBarDoesNotPanic(t *testing.T) {
	s, err := NewSuperTrendStrategy(5, 3)
	require.NoError(t, err)

	closes := []float64{10, 12, 9, 20, 25, 6, 30, 19, 10, 40, 33, 21, 27, 19, 16, 22}
	series := candlesFromCloses(closes)

	s.Preinitialize(series)
	for _, candle := range series {
		s.OnBar(marketEvent(candle))
	}
}
