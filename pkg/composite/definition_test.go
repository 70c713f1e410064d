package composite

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDefinition_RejectsBuiltin(t *testing.T) {
	_, err := FromDefinition(Definition{StrategyType: StrategyTypeBuiltin, BuiltinClass: "ma_cross"})
	assert.Error(t, err)
}

func TestToDefinitionFromDefinition_RoundTrip(t *testing.T) {
	entrySig, err := NewIndicatorSignal("rsi_oversold", IndicatorRSI, map[string]float64{"period": 14}, mustCondition(t, OpLessThan, 30, nil), "", "")
	require.NoError(t, err)
	exitSig, err := NewIndicatorSignal("rsi_overbought", IndicatorRSI, map[string]float64{"period": 14}, mustCondition(t, OpGreaterThan, 70, nil), "", "")
	require.NoError(t, err)

	original, err := NewCompositeStrategy(
		"rsi_reversal_composite", "mean reversion via RSI",
		Leaf(entrySig), Leaf(exitSig),
		[]string{"RANGE"}, map[string][]string{"volatility": {"low"}},
	)
	require.NoError(t, err)

	def := original.ToDefinition()
	assert.Equal(t, StrategyTypeComposite, def.StrategyType)
	assert.Equal(t, original.Name, def.Name)

	rebuilt, err := FromDefinition(def)
	require.NoError(t, err)
	assert.Equal(t, original.Name, rebuilt.Name)
	assert.Equal(t, original.RegimeFilter, rebuilt.RegimeFilter)
	assert.Equal(t, original.SubRegimeFilter, rebuilt.SubRegimeFilter)
	assert.Equal(t, original.EntryLogic, rebuilt.EntryLogic)
	assert.Equal(t, original.ExitLogic, rebuilt.ExitLogic)
}

func TestDefinition_JSONRoundTripComposite(t *testing.T) {
	entrySig, err := NewIndicatorSignal("e", IndicatorSMA, map[string]float64{"period": 10}, mustCondition(t, OpCrossAbove, 0, nil), "", "")
	require.NoError(t, err)
	exitSig, err := NewIndicatorSignal("x", IndicatorSMA, map[string]float64{"period": 10}, mustCondition(t, OpCrossBelow, 0, nil), "", "")
	require.NoError(t, err)

	def := Definition{
		Name: "sma_cross_composite", Description: "",
		StrategyType: StrategyTypeComposite,
		EntryLogic:   Leaf(entrySig), ExitLogic: Leaf(exitSig),
		RegimeFilter: []string{"TREND_UP"},
	}

	data, err := json.Marshal(def)
	require.NoError(t, err)

	var decoded Definition
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, def.Name, decoded.Name)
	assert.Equal(t, def.StrategyType, decoded.StrategyType)
	assert.Equal(t, def.RegimeFilter, decoded.RegimeFilter)
	assert.Equal(t, def.EntryLogic.Signal.Name, decoded.EntryLogic.Signal.Name)
}

func TestDefinition_JSONRoundTripBuiltin(t *testing.T) {
	def := Definition{
		Name: "ma_cross_default", StrategyType: StrategyTypeBuiltin,
		BuiltinClass: "ma_cross",
		Parameters:   map[string]float64{"fast": 10, "slow": 30},
	}

	data, err := json.Marshal(def)
	require.NoError(t, err)

	var decoded Definition
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, def.BuiltinClass, decoded.BuiltinClass)
	assert.Equal(t, def.Parameters, decoded.Parameters)
	assert.Nil(t, decoded.EntryLogic)
}

func TestDefinition_UnmarshalRejectsUnknownStrategyType(t *testing.T) {
	var d Definition
	err := json.Unmarshal([]byte(`{"name":"x","strategy_type":"bogus"}`), &d)
	assert.Error(t, err)
}
