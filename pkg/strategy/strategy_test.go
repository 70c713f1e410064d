package strategy

import (
	"testing"
	"time"

	"github.com/raykavin/backtestlab/pkg/core"
)

func candlesFromCloses(closes []float64) core.CandleSeries {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(core.CandleSeries, len(closes))
	for i, c := range closes {
		series[i] = core.Candle{
			Symbol: "BTCUSDT", Timeframe: core.Timeframe1h,
			OpenTime: t0.Add(time.Duration(i) * time.Hour),
			Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 100,
		}
	}
	return series
}

func marketEvent(candle core.Candle) MarketEvent {
	return MarketEvent{OpenTime: candle.OpenTime, Symbol: candle.Symbol, Candle: candle}
}
