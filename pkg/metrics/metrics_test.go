package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/raykavin/backtestlab/pkg/portfolio"
)

func mustTime(days int) time.Time {
	return time.Unix(0, 0).AddDate(0, 0, days)
}

func TestCompute_TotalReturnAndCAGR(t *testing.T) {
	curve := []portfolio.EquityPoint{
		{Time: mustTime(0), Value: 1000},
		{Time: mustTime(365), Value: 1100},
	}
	m := Compute(curve, nil, 1000)

	assert.InDelta(t, 10.0, m.TotalReturnPct, 1e-9)
	assert.InDelta(t, 10.0, m.CAGR, 0.1)
}

func TestCompute_SharpeZeroWithFewerThanTwoReturns(t *testing.T) {
	curve := []portfolio.EquityPoint{{Time: mustTime(0), Value: 1000}}
	m := Compute(curve, nil, 1000)
	assert.Equal(t, 0.0, m.SharpeRatio)
}

func TestCompute_SharpeZeroWithZeroVariance(t *testing.T) {
	curve := []portfolio.EquityPoint{
		{Time: mustTime(0), Value: 1000},
		{Time: mustTime(1), Value: 1500}, // +50% exactly
		{Time: mustTime(2), Value: 2250}, // +50% exactly
	}
	m := Compute(curve, nil, 1000)
	assert.Equal(t, 0.0, m.SharpeRatio)
}

func TestCompute_MaxDrawdown(t *testing.T) {
	curve := []portfolio.EquityPoint{
		{Time: mustTime(0), Value: 1000},
		{Time: mustTime(1), Value: 1200},
		{Time: mustTime(2), Value: 900},
		{Time: mustTime(3), Value: 950},
		{Time: mustTime(4), Value: 1300},
	}
	m := Compute(curve, nil, 1000)

	assert.InDelta(t, -25.0, m.MaxDrawdownPct, 1e-9) // (900-1200)/1200
	assert.Equal(t, 2, m.MaxDrawdownBars)             // bars at 900 and 950
}

func TestCompute_TradeStats(t *testing.T) {
	trades := []portfolio.Trade{
		{PnL: 100, DurationHours: 2},
		{PnL: -50, DurationHours: 4},
		{PnL: 30, DurationHours: 1},
	}
	m := Compute(nil, trades, 1000)

	assert.Equal(t, 3, m.TotalTrades)
	assert.Equal(t, 2, m.WinningTrades)
	assert.Equal(t, 1, m.LosingTrades)
	assert.InDelta(t, 66.666, m.WinRatePct, 0.01)
	assert.InDelta(t, 130.0, m.TotalProfit, 1e-9)
	assert.InDelta(t, 50.0, m.TotalLoss, 1e-9)
	assert.InDelta(t, 2.6, m.ProfitFactor, 1e-9)
}

func TestCompute_ProfitFactorInfiniteWithNoLosses(t *testing.T) {
	trades := []portfolio.Trade{{PnL: 100}, {PnL: 50}}
	m := Compute(nil, trades, 1000)
	assert.True(t, math.IsInf(m.ProfitFactor, 1))
}

func TestCompute_ProfitFactorZeroWhenNoTradesAtAll(t *testing.T) {
	m := Compute(nil, nil, 1000)
	assert.Equal(t, 0.0, m.ProfitFactor)
	assert.Equal(t, 0, m.TotalTrades)
}
