package regime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raykavin/backtestlab/pkg/core"
)

func TestClassify_UndefinedADXYieldsNeutralTrend(t *testing.T) {
	c := New(10)
	rec := c.Classify(Row{Close: 100, ADX: core.Undefined, SMA20: 100, SMA50: 100})
	assert.Equal(t, TrendNeutral, rec.TrendState)
}

func TestClassify_StrongUptrendWithAlignedSMAs(t *testing.T) {
	c := New(10)
	rec := c.Classify(Row{
		Close: 110, ADX: 30, SMA20: 108, SMA50: 105, SMA200: 100,
		ROC: 2, MACDHist: 1, RSI: 60,
	})
	assert.Equal(t, TrendUp, rec.TrendState)
	assert.Equal(t, MomentumBullish, rec.MomentumState)
	assert.Equal(t, SimplifiedTrendUp, rec.SimplifiedRegime)
}

func TestClassify_StrongDowntrendWithAlignedSMAs(t *testing.T) {
	c := New(10)
	rec := c.Classify(Row{
		Close: 90, ADX: 30, SMA20: 92, SMA50: 95, SMA200: 100,
		ROC: -2, MACDHist: -1, RSI: 40,
	})
	assert.Equal(t, TrendDown, rec.TrendState)
	assert.Equal(t, MomentumBearish, rec.MomentumState)
	assert.Equal(t, SimplifiedTrendDown, rec.SimplifiedRegime)
}

func TestClassify_WeakADXIsNeutralRegardlessOfPrice(t *testing.T) {
	c := New(10)
	rec := c.Classify(Row{Close: 110, ADX: 15, SMA20: 100, SMA50: 90})
	assert.Equal(t, TrendNeutral, rec.TrendState)
}

func TestClassify_MidADXBandIsNeutral(t *testing.T) {
	c := New(10)
	rec := c.Classify(Row{Close: 110, ADX: 22, SMA20: 105, SMA50: 100})
	assert.Equal(t, TrendNeutral, rec.TrendState)
}

func TestClassify_NoSMA200FallsBackToSMA50Comparison(t *testing.T) {
	c := New(10)
	rec := c.Classify(Row{Close: 110, ADX: 30, SMA20: 105, SMA50: 100, SMA200: core.Undefined})
	assert.Equal(t, TrendUp, rec.TrendState)
}

func TestClassify_UndefinedMomentumInputsIsWeak(t *testing.T) {
	c := New(10)
	rec := c.Classify(Row{ROC: core.Undefined, MACDHist: 1, RSI: 60})
	assert.Equal(t, MomentumWeak, rec.MomentumState)
}

func TestClassify_MomentumRequiresMajorityAgreement(t *testing.T) {
	c := New(10)
	rec := c.Classify(Row{ROC: 1, MACDHist: -1, RSI: 50})
	assert.Equal(t, MomentumWeak, rec.MomentumState)
}

func TestClassify_RangeRegimeIsNeutralTrendLowVolatility(t *testing.T) {
	c := New(10)
	var rec Record
	for i := 0; i < 3; i++ {
		rec = c.Classify(Row{
			Close: 100, ADX: 10, SMA20: 100, SMA50: 100,
			ATR: 0.1, BollUpper: 101, BollLower: 99, BollMiddle: 100,
			ROC: 0, MACDHist: 0, RSI: 50,
		})
	}
	assert.Equal(t, SimplifiedRange, rec.SimplifiedRegime)
}

func TestClassify_FullRegimeStringIsUppercaseJoined(t *testing.T) {
	c := New(10)
	rec := c.Classify(Row{Close: 100, ADX: core.Undefined})
	assert.Contains(t, rec.FullRegime, "NEUTRAL")
	assert.Contains(t, rec.FullRegime, "VOL")
	assert.Contains(t, rec.FullRegime, "MOM")
}

func TestClassify_ConfidenceClampedToUnitRange(t *testing.T) {
	c := New(10)
	rec := c.Classify(Row{
		Close: 110, ADX: 45, SMA20: 108, SMA50: 105, SMA200: 100,
		ROC: 2, MACDHist: 1, RSI: 60,
	})
	assert.GreaterOrEqual(t, rec.Confidence, 0.0)
	assert.LessOrEqual(t, rec.Confidence, 1.0)

	rec = c.Classify(Row{})
	assert.GreaterOrEqual(t, rec.Confidence, 0.0)
	assert.LessOrEqual(t, rec.Confidence, 1.0)
}

func TestClassify_ReplayingBarsIsDeterministic(t *testing.T) {
	rows := []Row{
		{Close: 100, ADX: 30, SMA20: 98, SMA50: 95, ATR: 1, BollUpper: 102, BollLower: 98, BollMiddle: 100, ROC: 1, MACDHist: 0.5, RSI: 58},
		{Close: 102, ADX: 32, SMA20: 99, SMA50: 96, ATR: 1.2, BollUpper: 104, BollLower: 97, BollMiddle: 101, ROC: 2, MACDHist: 0.6, RSI: 62},
	}

	c1 := New(10)
	var out1 []Record
	for _, r := range rows {
		out1 = append(out1, c1.Classify(r))
	}

	c2 := New(10)
	var out2 []Record
	for _, r := range rows {
		out2 = append(out2, c2.Classify(r))
	}

	assert.Equal(t, out1, out2)
}
