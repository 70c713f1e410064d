package composite

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raykavin/backtestlab/pkg/core"
)

func TestNewIndicatorSignal_RejectsUnknownIndicator(t *testing.T) {
	cond, err := NewCondition(OpGreaterThan, 0, nil)
	require.NoError(t, err)
	_, err = NewIndicatorSignal("bad", IndicatorKind("XYZ"), nil, cond, "", "")
	assert.Error(t, err)
}

func TestNewIndicatorSignal_DefaultsTimeframeToPrimary(t *testing.T) {
	cond, err := NewCondition(OpGreaterThan, 0, nil)
	require.NoError(t, err)
	s, err := NewIndicatorSignal("rsi", IndicatorRSI, nil, cond, "", "")
	require.NoError(t, err)
	assert.Equal(t, "primary", s.Timeframe)
}

func TestIndicatorSignal_ValuesSMA(t *testing.T) {
	cond, err := NewCondition(OpGreaterThan, 0, nil)
	require.NoError(t, err)
	s, err := NewIndicatorSignal("sma2", IndicatorSMA, map[string]float64{"period": 2}, cond, "", "")
	require.NoError(t, err)

	series := makeCandles([]float64{10, 20, 30})
	values, err := s.Values(series)
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.False(t, core.IsDefined(values[0]))
	assert.InDelta(t, 15, values[1], 1e-9)
	assert.InDelta(t, 25, values[2], 1e-9)
}

func TestIndicatorSignal_MACDComponentSelection(t *testing.T) {
	series := makeCandles([]float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36, 37, 38, 39, 40})

	cond, err := NewCondition(OpGreaterThan, -1e9, nil)
	require.NoError(t, err)

	for _, component := range []string{"", "macd", "signal", "histogram"} {
		s, err := NewIndicatorSignal("macd", IndicatorMACD, map[string]float64{"fast": 3, "slow": 6, "signal": 2}, cond, "", component)
		require.NoError(t, err)
		values, err := s.Values(series)
		require.NoError(t, err)
		assert.Len(t, values, len(series))
	}

	_, err = mustIndicatorSignalErr("macd", IndicatorMACD, map[string]float64{}, cond, "bogus")
	assert.Error(t, err)
}

func mustIndicatorSignalErr(name string, kind IndicatorKind, params map[string]float64, cond Condition, component string) ([]float64, error) {
	s, err := NewIndicatorSignal(name, kind, params, cond, "", component)
	if err != nil {
		return nil, err
	}
	series := makeCandles([]float64{1, 2, 3, 4, 5})
	return s.Values(series)
}

func TestIndicatorSignal_BollingerComponentSelection(t *testing.T) {
	series := makeCandles([]float64{10, 12, 11, 13, 15, 14, 16, 18, 17, 19})
	cond, err := NewCondition(OpGreaterThan, -1e9, nil)
	require.NoError(t, err)

	for _, component := range []string{"", "middle", "upper", "lower"} {
		s, err := NewIndicatorSignal("bb", IndicatorBB, map[string]float64{"period": 3, "num_std": 2}, cond, "", component)
		require.NoError(t, err)
		values, err := s.Values(series)
		require.NoError(t, err)
		assert.Len(t, values, len(series))
	}

	_, err = mustIndicatorSignalErr("bb", IndicatorBB, map[string]float64{"period": 3}, cond, "bogus")
	assert.Error(t, err)
}

func TestIndicatorSignal_EvaluateSeriesAndIncrementalAgree(t *testing.T) {
	series := makeCandles([]float64{10, 12, 8, 20, 25, 4, 30, 18, 9, 40, 33, 21})

	cond, err := NewCondition(OpCrossAbove, 50, nil)
	require.NoError(t, err)
	s, err := NewIndicatorSignal("rsi_cross", IndicatorRSI, map[string]float64{"period": 4}, cond, "", "")
	require.NoError(t, err)

	batch, err := s.EvaluateSeries(series)
	require.NoError(t, err)

	incSignal, err := NewIndicatorSignal("rsi_cross", IndicatorRSI, map[string]float64{"period": 4}, cond, "", "")
	require.NoError(t, err)
	state := newSignalState(incSignal)
	inc := make([]bool, len(series))
	for i, candle := range series {
		inc[i] = state.update(candle)
	}

	assert.Equal(t, batch, inc)
}

func TestIndicatorSignal_JSONRoundTrip(t *testing.T) {
	cond, err := NewCondition(OpBetween, 10, float64Ptr(90))
	require.NoError(t, err)
	original, err := NewIndicatorSignal("bb_mid", IndicatorBB, map[string]float64{"period": 20, "num_std": 2}, cond, "1h", "middle")
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded IndicatorSignal
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *original, decoded)
}

func TestIndicatorSignal_JSONRoundTripNoComponent(t *testing.T) {
	cond, err := NewCondition(OpLessThan, 30, nil)
	require.NoError(t, err)
	original, err := NewIndicatorSignal("rsi", IndicatorRSI, map[string]float64{"period": 14}, cond, "", "")
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded IndicatorSignal
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *original, decoded)
}

func float64Ptr(v float64) *float64 {
	return &v
}
